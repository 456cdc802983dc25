// Command procare scores pharmacophoric cavity point clouds.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/kimeguida/ProCare"
	"github.com/kimeguida/ProCare/blobstore"
)

// env is the state shared by all commands of one invocation.
type env struct {
	cfg    Config
	store  blobstore.BlobStore
	logger *procare.Logger
	runID  string
}

const envKey = "env"

func getEnv(c *cli.Context) *env {
	return c.App.Metadata[envKey].(*env)
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "procare",
		Usage:                  "Compare pharmacophoric cavity point clouds",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML config file",
				EnvVars: []string{"PROCARE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "Blob store: local, s3 or minio",
				Value: storeLocal,
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Root directory of the local store",
				Value:   ".",
			},
			&cli.StringFlag{Name: "bucket", Usage: "Bucket of the s3 or minio store"},
			&cli.StringFlag{Name: "prefix", Usage: "Key prefix inside the bucket"},
			&cli.StringFlag{Name: "region", Usage: "AWS region"},
			&cli.StringFlag{Name: "endpoint", Usage: "Custom S3, DynamoDB or MinIO endpoint"},
			&cli.StringFlag{
				Name:  "ddb-table",
				Usage: "DynamoDB table for conditional report commits on s3",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text or json",
				Value: "text",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			scoreCommand(),
			batchCommand(),
			alignCommand(),
		},
	}
}

func setup(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if err := applyGlobalFlags(c, &cfg); err != nil {
		return err
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	var logger *procare.Logger
	if cfg.Log.Format == "json" {
		logger = procare.NewJSONLogger(level)
	} else {
		logger = procare.NewTextLogger(level)
	}

	runID := uuid.NewString()
	logger = logger.WithRunID(runID)

	store, err := openStore(c.Context, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Kind, err)
	}

	logger.DebugContext(c.Context, "store ready",
		slog.String("kind", cfg.Store.Kind),
		slog.String("root", cfg.Store.Root),
		slog.String("bucket", cfg.Store.Bucket),
	)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[envKey] = &env{
		cfg:    cfg,
		store:  store,
		logger: logger,
		runID:  runID,
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "procare:", err)
		stop()
		os.Exit(1)
	}
}
