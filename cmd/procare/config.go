package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"

	"github.com/kimeguida/ProCare/blobstore/minio"
	"github.com/kimeguida/ProCare/fingerprint"
	"github.com/kimeguida/ProCare/match"
)

// Config is the file form of the global settings. Flags override it.
type Config struct {
	Store   StoreConfig   `toml:"store"`
	Scoring ScoringConfig `toml:"scoring"`
	Log     LogConfig     `toml:"log"`
}

// StoreConfig selects where cavities and reports live.
type StoreConfig struct {
	Kind     string       `toml:"kind"`
	Root     string       `toml:"root"`
	Bucket   string       `toml:"bucket"`
	Prefix   string       `toml:"prefix"`
	Region   string       `toml:"region"`
	Endpoint string       `toml:"endpoint"`
	DDBTable string       `toml:"ddb_table"`
	MinIO    minio.Config `toml:"minio"`
}

// ScoringConfig mirrors the scorer options.
type ScoringConfig struct {
	Distance   float64          `toml:"distance"`
	Partial    bool             `toml:"partial"`
	Policies   []match.Policy   `toml:"policies"`
	Rule       fingerprint.Rule `toml:"rule"`
	NoFP       bool             `toml:"no_fingerprint"`
	Workers    int              `toml:"workers"`
	CacheBytes int64            `toml:"cache_bytes"`
	IOLimit    int64            `toml:"io_bytes_per_sec"`
	ParamID    string           `toml:"param_id"`
	Class      string           `toml:"class"`
}

// LogConfig configures the run logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

const (
	storeLocal = "local"
	storeS3    = "s3"
	storeMinIO = "minio"
)

func defaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Kind: storeLocal,
			Root: ".",
		},
		Scoring: ScoringConfig{
			Distance:   match.DefaultThreshold,
			Rule:       fingerprint.RuleAll,
			CacheBytes: 64 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := parseConfig(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parseConfig(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	return cfg.validate()
}

func (c Config) validate() error {
	switch c.Store.Kind {
	case storeLocal:
	case storeS3, storeMinIO:
		if c.Store.Bucket == "" && c.Store.MinIO.Bucket == "" {
			return fmt.Errorf("store %s requires a bucket", c.Store.Kind)
		}
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// applyGlobalFlags overrides cfg with the global flags that were set.
func applyGlobalFlags(c *cli.Context, cfg *Config) error {
	if c.IsSet("store") {
		cfg.Store.Kind = c.String("store")
	}
	if c.IsSet("root") {
		cfg.Store.Root = c.String("root")
	}
	if c.IsSet("bucket") {
		cfg.Store.Bucket = c.String("bucket")
	}
	if c.IsSet("prefix") {
		cfg.Store.Prefix = c.String("prefix")
	}
	if c.IsSet("region") {
		cfg.Store.Region = c.String("region")
	}
	if c.IsSet("endpoint") {
		cfg.Store.Endpoint = c.String("endpoint")
	}
	if c.IsSet("ddb-table") {
		cfg.Store.DDBTable = c.String("ddb-table")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	return cfg.validate()
}

// applyScoringFlags overrides the scoring section with command flags.
func applyScoringFlags(c *cli.Context, sc *ScoringConfig) error {
	if c.IsSet("distance") {
		sc.Distance = c.Float64("distance")
	}
	if c.IsSet("partial") {
		sc.Partial = c.Bool("partial")
	}
	if c.IsSet("rule") {
		r, err := fingerprint.ParseRule(c.String("rule"))
		if err != nil {
			return err
		}
		sc.Rule = r
	}
	if c.IsSet("no-fingerprint") {
		sc.NoFP = c.Bool("no-fingerprint")
	}
	if c.IsSet("policy") {
		sc.Policies = sc.Policies[:0]
		for _, name := range c.StringSlice("policy") {
			for _, part := range strings.Split(name, ",") {
				p, err := match.ParsePolicy(part)
				if err != nil {
					return err
				}
				sc.Policies = append(sc.Policies, p)
			}
		}
	}
	if c.IsSet("workers") {
		sc.Workers = c.Int("workers")
	}
	if c.IsSet("param-id") {
		sc.ParamID = c.String("param-id")
	}
	if c.IsSet("class") {
		sc.Class = c.String("class")
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}
