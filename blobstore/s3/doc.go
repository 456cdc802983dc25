// Package s3 stores cavities and reports in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("cavities/"),
//	    s3.WithRegion("eu-west-1"),
//	)
//
// Reads use ranged GetObject calls. Puts larger than the configured part
// size go through the multipart uploader.
//
// # Concurrent Writers
//
// S3 has no compare-and-swap, so CommitStore records every Put as a new
// object version and publishes it with a conditional DynamoDB write.
// A writer that loses the race gets ErrConcurrentModification and may
// re-read and retry.
//
// Table schema:
//   - Partition key: base_uri (string), the blob's full location
//   - Sort key: version (number), increasing per blob
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name procare-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package s3
