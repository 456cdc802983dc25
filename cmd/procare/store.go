package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/kimeguida/ProCare/blobstore"
	"github.com/kimeguida/ProCare/blobstore/minio"
	"github.com/kimeguida/ProCare/blobstore/s3"
)

// openStore builds the blob store named by cfg.Kind.
func openStore(ctx context.Context, cfg StoreConfig) (blobstore.BlobStore, error) {
	switch cfg.Kind {
	case storeLocal, "":
		return blobstore.NewLocalStore(cfg.Root), nil
	case storeS3:
		return openS3(ctx, cfg)
	case storeMinIO:
		mc := cfg.MinIO
		if mc.Endpoint == "" {
			mc.Endpoint = strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
			mc.Secure = strings.HasPrefix(cfg.Endpoint, "https://")
		}
		if mc.Bucket == "" {
			mc.Bucket = cfg.Bucket
		}
		if mc.Prefix == "" {
			mc.Prefix = cfg.Prefix
		}
		if mc.Region == "" {
			mc.Region = cfg.Region
		}
		return minio.Dial(mc)
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

func openS3(ctx context.Context, cfg StoreConfig) (blobstore.BlobStore, error) {
	opts := []s3.Option{s3.WithPrefix(cfg.Prefix)}
	if cfg.Region != "" {
		opts = append(opts, s3.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, s3.WithEndpoint(cfg.Endpoint))
	}
	store, err := s3.New(ctx, cfg.Bucket, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.DDBTable == "" {
		return store, nil
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	ddb := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return s3.NewCommitStore(store, ddb, cfg.DDBTable, baseURI(cfg)), nil
}

func baseURI(cfg StoreConfig) string {
	uri := "s3://" + cfg.Bucket
	if p := strings.Trim(cfg.Prefix, "/"); p != "" {
		uri += "/" + p
	}
	return uri
}
