package mif

import (
	"log/slog"

	"github.com/beetlebugorg/mif/internal/config"
	"github.com/beetlebugorg/mif/internal/emit"
	"github.com/beetlebugorg/mif/internal/parser"
)

// Config holds the pipeline settings read from flags, environment and files.
type Config = config.Config

// Sink receives output objects by name.
type Sink = emit.Sink

// WriteRequest is one object handed to a Sink.
type WriteRequest = emit.WriteRequest

// ParseOptions configures the MIF reader.
type ParseOptions = parser.ParseOptions

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() Config {
	return config.Default()
}

// RunOptions controls pipeline behavior beyond the configuration values.
type RunOptions struct {
	// Sink receives every output object. If nil, a directory or S3 sink is
	// built from the configuration.
	Sink Sink

	// Parse configures the MIF reader.
	// Default: parser.DefaultParseOptions()
	Parse ParseOptions

	// Progress is an optional callback for tracking encoding progress.
	// Called after each record is encoded with (encoded, total). It may be
	// called from several goroutines, but never concurrently.
	Progress func(encoded, total int)

	// Logger receives pipeline events. nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultRunOptions returns run options with defaults.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		Sink:     nil,
		Parse:    parser.DefaultParseOptions(),
		Progress: nil,
		Logger:   nil,
	}
}
