// Package config loads pipeline settings from flags, environment variables,
// .env files and an optional config file.
package config

import (
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/mif/internal/group"
	"github.com/beetlebugorg/mif/internal/index"
	"github.com/beetlebugorg/mif/internal/report"
)

// EnvPrefix is prepended to environment variable names, so "output-dir" is
// read from MIFREGION_OUTPUT_DIR.
const EnvPrefix = "MIFREGION"

// Config holds every pipeline setting
type Config struct {
	Input              string   `mapstructure:"input"`
	OutputDir          string   `mapstructure:"output-dir"`
	Extension          string   `mapstructure:"extension"`
	KeyField           string   `mapstructure:"key-field"`
	Group              bool     `mapstructure:"group"`
	MergeMode          string   `mapstructure:"merge-mode"`
	Columns            []string `mapstructure:"columns"`
	HTML               string   `mapstructure:"html"`
	Parquet            string   `mapstructure:"parquet"`
	ParquetCompression string   `mapstructure:"parquet-compression"`
	Metrics            string   `mapstructure:"metrics"`
	WriteMID           bool     `mapstructure:"write-mid"`
	Workers            int      `mapstructure:"workers"`
	BBox               string   `mapstructure:"bbox"`
	SkipErrors         bool     `mapstructure:"skip-errors"`
	S3Bucket           string   `mapstructure:"s3-bucket"`
	S3Prefix           string   `mapstructure:"s3-prefix"`
	S3Region           string   `mapstructure:"s3-region"`
	LogLevel           string   `mapstructure:"log-level"`
	LogFormat          string   `mapstructure:"log-format"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		OutputDir:          "./new",
		Extension:          ".mif",
		KeyField:           "MARKING",
		Group:              true,
		MergeMode:          string(group.MergeConcat),
		HTML:               "table.html",
		ParquetCompression: "snappy",
		Workers:            runtime.NumCPU(),
		SkipErrors:         true,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// SetDefaults registers Default() values on v so that unset keys fall back
// to them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("output-dir", d.OutputDir)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("key-field", d.KeyField)
	v.SetDefault("group", d.Group)
	v.SetDefault("merge-mode", d.MergeMode)
	v.SetDefault("html", d.HTML)
	v.SetDefault("parquet-compression", d.ParquetCompression)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("skip-errors", d.SkipErrors)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
}

// NewViper returns a viper instance reading MIFREGION_* environment
// variables, after loading envFiles into the process environment. Missing
// .env files are ignored.
func NewViper(envFiles ...string) *viper.Viper {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // environment variables override config file values
	return v
}

// ReadFile merges a YAML, JSON or TOML config file into v.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "error reading config file %q", path)
	}
	return nil
}

// Load reads a Config from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	c := Config{
		Input:              v.GetString("input"),
		OutputDir:          v.GetString("output-dir"),
		Extension:          v.GetString("extension"),
		KeyField:           v.GetString("key-field"),
		Group:              v.GetBool("group"),
		MergeMode:          v.GetString("merge-mode"),
		Columns:            splitList(v.GetStringSlice("columns")),
		HTML:               v.GetString("html"),
		Parquet:            v.GetString("parquet"),
		ParquetCompression: v.GetString("parquet-compression"),
		Metrics:            v.GetString("metrics"),
		WriteMID:           v.GetBool("write-mid"),
		Workers:            v.GetInt("workers"),
		BBox:               v.GetString("bbox"),
		SkipErrors:         v.GetBool("skip-errors"),
		S3Bucket:           v.GetString("s3-bucket"),
		S3Prefix:           v.GetString("s3-prefix"),
		S3Region:           v.GetString("s3-region"),
		LogLevel:           v.GetString("log-level"),
		LogFormat:          v.GetString("log-format"),
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks settings that can be rejected before any input is read.
func (c Config) Validate() error {
	if strings.TrimSpace(c.KeyField) == "" {
		return errors.New("key-field is required")
	}
	if _, err := group.ParseMergeMode(c.MergeMode); err != nil {
		return errors.Wrap(err, "invalid merge-mode")
	}
	if err := report.ValidateCompression(c.ParquetCompression); err != nil {
		return errors.Wrap(err, "invalid parquet-compression")
	}
	if c.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.BBox != "" {
		if _, err := index.ParseBounds(c.BBox); err != nil {
			return errors.Wrap(err, "invalid bbox")
		}
	}
	if c.S3Bucket == "" && strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output-dir or s3-bucket is required")
	}
	return nil
}

// HasBBox reports whether a bounding-box filter is configured.
func (c Config) HasBBox() bool {
	return c.BBox != ""
}

// UseS3 reports whether output goes to S3 instead of a local directory.
func (c Config) UseS3() bool {
	return c.S3Bucket != ""
}

// splitList accepts both repeated values and comma-separated strings, as
// environment variables arrive as a single string.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
