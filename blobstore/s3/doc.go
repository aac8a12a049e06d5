// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("experiments/2024-05/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	results, err := ggca.Correlate(ctx,
//	    matrix.BlobSource(store, "mrna.tsv"),
//	    matrix.BlobSource(store, "mirna.tsv"),
//	)
//
// # Features
//
//   - Ranged GETs, so a matrix is streamed instead of downloaded whole
//   - Managed (multipart) uploads for large matrices
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
