// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-genomes",
//	    s3.WithPrefix("GRCh38/"),
//	    s3.WithRegion("eu-west-2"),
//	)
//
//	svc, err := refget.Open(ctx, refget.Remote(store, "manifest.json"))
//
// # Features
//
//   - HeadObject on open, ranged GETs for every read
//   - Parallel multi-part download for whole blobs (indexes, manifests)
//   - Automatic pagination for listing
//   - S3-compatible endpoints via WithEndpoint
package s3
