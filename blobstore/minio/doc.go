// Package minio provides a BlobStore over the MinIO client.
//
// It works against MinIO and other S3-compatible servers without pulling
// in AWS credentials handling.
//
//	store, err := minio.Dial(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "cavities",
//	})
package minio
