// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. This package uses the
// official MinIO Go client, so it also works against Ceph, SeaweedFS, and
// Garage deployments that hold large expression matrices on-premise.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "matrices", "tcga/")
//	results, err := ggca.Correlate(ctx,
//	    matrix.BlobSource(store, "mrna.tsv"),
//	    matrix.BlobSource(store, "methylation.tsv"),
//	)
package minio
