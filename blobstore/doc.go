// Package blobstore abstracts where cavity files and reports live.
//
// A BlobStore maps slash-separated names to immutable byte blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads through mmap
//   - MemoryStore: in-process map, for tests
//   - s3.Store and s3.CommitStore: Amazon S3, optionally with DynamoDB commits
//   - minio.Store: MinIO and other S3-compatible servers
//
// Names may be expanded with Glob, which accepts doublestar patterns
// such as "cavities/**/*.mol2".
package blobstore
