// Package minio provides a MinIO implementation of the blobstore.BlobStore
// interface, for self-hosted S3-compatible object stores.
//
//	store, err := minio.New(minio.Config{
//	    Endpoint:        "localhost:9000",
//	    AccessKeyID:     "minioadmin",
//	    SecretAccessKey: "minioadmin",
//	    Bucket:          "genomes",
//	})
package minio
