// Package blobstore provides read-only access to the datasets clustered by
// the kmeans command.
//
// Store is the interface for opening a named blob as a stream.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem rooted at a directory
//   - MemoryStore: In-memory blobs for tests
//   - s3.Store: Amazon S3 (package blobstore/s3)
//   - minio.Store: MinIO and other S3-compatible servers (package blobstore/minio)
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (io.ReadCloser, error)
//	}
//
// Missing blobs must be reported with an error that satisfies
// errors.Is(err, ErrNotFound).
package blobstore
