// Package blobstore provides the storage abstraction input matrices are read from.
//
// A matrix is read in one forward pass per inspection, so the abstraction is
// built around ranged sequential reads rather than random access.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem rooted at a directory
//   - MemoryStore: in-memory blobs for tests
//   - s3.Store: Amazon S3 with ranged GETs and managed uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Matrix sources wrap a store with matrix.BlobSource(store, name), or
// matrix.BlobSources(ctx, store, prefix) for every blob under a prefix.
// ggca.PutResults writes scored results back through Put.
package blobstore
