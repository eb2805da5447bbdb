package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// GroupRow is one row of the grouped output table
type GroupRow struct {
	Index  int64   `parquet:"index"`
	Origin string  `parquet:"origin"`
	Region *string `parquet:"region,optional"`
	Count  int64   `parquet:"count"`
	File   string  `parquet:"file"`
}

// RecordRow is one source record with its derived fields
type RecordRow struct {
	Index  int64    `parquet:"index"`
	Kind   string   `parquet:"kind"`
	Origin string   `parquet:"origin"`
	Region *string  `parquet:"region,optional"`
	Values []string `parquet:"values,list"`
	File   string   `parquet:"file"`
}

// parquetOptions maps a compression name ("", snappy, gzip, zstd) to writer
// options.
func parquetOptions(compression string) ([]parquet.WriterOption, error) {
	options := make([]parquet.WriterOption, 0, 1)

	switch strings.ToLower(strings.TrimSpace(compression)) {
	case "", "none":
		// no compression
	case "snappy":
		options = append(options, parquet.Compression(&parquet.Snappy))
	case "gzip":
		options = append(options, parquet.Compression(&parquet.Gzip))
	case "zstd":
		options = append(options, parquet.Compression(&parquet.Zstd))
	default:
		return nil, fmt.Errorf("unsupported parquet compression: %q", compression)
	}
	return options, nil
}

// ValidateCompression reports whether compression names a supported codec.
func ValidateCompression(compression string) error {
	_, err := parquetOptions(compression)
	return err
}

// WriteParquet writes rows as a single Parquet file.
func WriteParquet[T GroupRow | RecordRow](w io.Writer, rows []T, compression string) error {
	options, err := parquetOptions(compression)
	if err != nil {
		return err
	}

	pw := parquet.NewGenericWriter[T](w, options...)
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// OptionalText returns a pointer to text when ok, nil otherwise.
func OptionalText(text string, ok bool) *string {
	if !ok {
		return nil
	}
	return &text
}
