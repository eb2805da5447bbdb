package mif

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/twpayne/go-geom"

	"github.com/beetlebugorg/mif/internal/config"
	"github.com/beetlebugorg/mif/internal/emit"
	"github.com/beetlebugorg/mif/internal/group"
	"github.com/beetlebugorg/mif/internal/index"
	"github.com/beetlebugorg/mif/internal/metrics"
	"github.com/beetlebugorg/mif/internal/parser"
	"github.com/beetlebugorg/mif/internal/report"
)

// Summary reports what a Run did
type Summary struct {
	Input       string   // Path of the MIF file read
	Columns     []string // Columns declared in output headers
	Records     int      // Objects in the source dataset
	Encoded     int      // Records with an encodable geometry
	Unsupported int      // Records whose geometry kind has no Region encoding
	Filtered    int      // Records dropped by the bounding-box filter
	Rows        int      // Output table rows (groups when grouping)
	Files       []string // MIF objects written, in row order
	Skipped     int      // Rows without any encodable geometry
	Reports     []string // HTML, Parquet and metrics objects written
	Errors      []error  // Failures skipped under skip-errors
}

// Run executes the pipeline: parse the input, derive origins and encodings,
// apply the optional bounding-box filter, group, emit one file per row, and
// write the reports.
//
// A malformed input aborts the run. Per-row failures stop the run unless
// cfg.SkipErrors is set, in which case they are collected in Summary.Errors.
func Run(ctx context.Context, cfg Config, opts RunOptions) (*Summary, error) {
	if cfg.Input == "" {
		return nil, errors.New("input is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := group.ParseMergeMode(cfg.MergeMode)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	m := metrics.New()

	// 1. Parse
	ds, err := parser.NewParser().ParseWithOptions(cfg.Input, opts.Parse)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	logger.Info("dataset_parsed", "file", cfg.Input, "objects", ds.FeatureCount(),
		"columns", len(ds.Header.Columns), "coordsys", ds.CoordSys())

	keyColumn := ds.ColumnIndex(cfg.KeyField)
	if keyColumn < 0 {
		return nil, fmt.Errorf("key field %q is not a column of %s (columns: %v)",
			cfg.KeyField, cfg.Input, ds.ColumnNames())
	}

	proj, err := resolveColumns(ds, cfg.Columns)
	if err != nil {
		return nil, err
	}
	columns := proj.names

	summary := &Summary{Input: cfg.Input, Columns: columns, Records: ds.FeatureCount()}
	for kind, n := range ds.KindCounts() {
		m.RecordsTotal.WithLabelValues(kind.String()).Add(float64(n))
	}

	// 2. Annotate
	records := make([]group.Record, len(ds.Features))
	for i, f := range ds.Features {
		records[i] = group.NewRecord(f.Index, f.Values, f.Geometry)
	}
	records, err = annotateRecords(ctx, records, keyColumn, cfg.Workers, opts.Progress)
	if err != nil {
		return summary, err
	}
	for _, r := range records {
		if _, ok := r.Encoded(); ok {
			summary.Encoded++
		} else {
			summary.Unsupported++
		}
	}

	// 3. Filter
	if cfg.HasBBox() {
		bounds, err := index.ParseBounds(cfg.BBox)
		if err != nil {
			return summary, err
		}
		kept := filterRecords(records, bounds)
		summary.Filtered = len(records) - len(kept)
		records = kept
		logger.Info("bbox_applied", "bbox", bounds.String(), "kept", len(records), "dropped", summary.Filtered)
	}

	// 4. Rows
	var rows []emit.Row
	if cfg.Group {
		var missing []error
		rows, missing = groupRows(records, mode, proj)
		for _, err := range missing {
			if !cfg.SkipErrors {
				return summary, err
			}
			logger.Warn("record_failed", "error", err)
			summary.Errors = append(summary.Errors, err)
		}
	} else {
		rows = recordRows(records, proj)
	}
	summary.Rows = len(rows)

	// 5. Emit
	target, err := resolveSink(ctx, cfg, opts)
	if err != nil {
		return summary, err
	}
	sink := &countingSink{Sink: target}
	emitter := emit.New(sink, emit.Options{
		Columns:    columns,
		Extension:  cfg.Extension,
		WriteMID:   cfg.WriteMID,
		SkipErrors: cfg.SkipErrors,
		Logger:     logger,
	})
	result, err := emitter.Emit(ctx, rows)
	if result != nil {
		summary.Files = result.Written
		summary.Skipped = result.Skipped
		summary.Errors = append(summary.Errors, result.Errors...)
	}
	if err != nil {
		return summary, fmt.Errorf("emit: %w", err)
	}

	// 6. Reports
	if err := writeReports(ctx, sink, cfg, ds, rows, records, proj, summary); err != nil {
		return summary, err
	}

	if cfg.Metrics != "" {
		recordMetrics(m, summary, sink.Bytes())
		m.Finish(start, time.Now())
		if err := writeMetrics(ctx, sink, cfg.Metrics, m); err != nil {
			return summary, err
		}
		summary.Reports = append(summary.Reports, cfg.Metrics)
	}

	logger.Info("run_complete", "records", summary.Records, "rows", summary.Rows,
		"files", len(summary.Files), "skipped", summary.Skipped, "errors", len(summary.Errors))
	return summary, nil
}

// countingSink tallies the bytes written through it
type countingSink struct {
	emit.Sink
	bytes atomic.Int64
}

func (s *countingSink) Write(ctx context.Context, req emit.WriteRequest) error {
	if err := s.Sink.Write(ctx, req); err != nil {
		return err
	}
	s.bytes.Add(int64(len(req.Data)))
	return nil
}

// Bytes returns the total size of successful writes.
func (s *countingSink) Bytes() int64 {
	return s.bytes.Load()
}

func recordMetrics(m *metrics.Metrics, summary *Summary, written int64) {
	m.EncodedTotal.Add(float64(summary.Encoded))
	m.FilteredTotal.Add(float64(summary.Filtered))
	m.RowsTotal.Add(float64(summary.Rows))
	m.FilesTotal.Add(float64(len(summary.Files)))
	m.SkippedTotal.Add(float64(summary.Skipped))
	m.ErrorsTotal.Add(float64(len(summary.Errors)))
	m.BytesTotal.Add(float64(written))
}

func writeMetrics(ctx context.Context, sink emit.Sink, name string, m *metrics.Metrics) error {
	var buf bytes.Buffer
	if err := m.WriteText(&buf); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return sink.Write(ctx, emit.WriteRequest{Name: name, Data: buf.Bytes(), ContentType: emit.ContentTypeMetrics})
}

// filterRecords keeps records whose geometry extent intersects bounds,
// in source order.
func filterRecords(records []group.Record, bounds index.Bounds) []group.Record {
	geometries := make([]geom.T, len(records))
	for i, r := range records {
		geometries[i] = r.Geometry
	}

	hits := index.New(geometries).Query(bounds)
	kept := make([]group.Record, 0, len(hits))
	for _, i := range hits {
		kept = append(kept, records[i])
	}
	return kept
}

// groupRows aggregates records into one row per origin.
func groupRows(records []group.Record, mode group.MergeMode, proj projection) ([]emit.Row, []error) {
	groups, missing := group.Aggregate(records)

	rows := make([]emit.Row, len(groups))
	for i, g := range groups {
		text, ok := g.Text(mode)
		rows[i] = emit.Row{
			Key:     g.Key,
			Text:    text,
			HasText: ok,
			Values:  proj.project(g.Values()),
			Count:   g.Count,
		}
	}
	return rows, missing
}

// recordRows makes one row per record.
func recordRows(records []group.Record, proj projection) []emit.Row {
	rows := make([]emit.Row, len(records))
	for i, r := range records {
		text, ok := r.Encoded()
		rows[i] = emit.Row{
			Key:     r.Origin,
			Text:    text,
			HasText: ok,
			Values:  proj.project(r.Values),
			Count:   1,
		}
	}
	return rows
}

func resolveSink(ctx context.Context, cfg config.Config, opts RunOptions) (emit.Sink, error) {
	if opts.Sink != nil {
		return opts.Sink, nil
	}
	if cfg.UseS3() {
		return emit.NewS3SinkFromEnv(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Prefix)
	}
	return emit.NewDirSink(cfg.OutputDir)
}

// rowFile returns the MIF name written for row i, or "" when none was.
func rowFile(i int, row emit.Row, ext string) string {
	if row.Key == "" || !row.HasText {
		return ""
	}
	return emit.Filename(i+1, row.Key, ext)
}

func writeReports(ctx context.Context, sink emit.Sink, cfg config.Config, ds *parser.Dataset,
	rows []emit.Row, records []group.Record, proj projection, summary *Summary) error {

	if cfg.HTML != "" {
		var buf bytes.Buffer
		if err := report.WriteHTML(&buf, htmlTable(cfg, rows, records, proj), report.DefaultHTMLOptions()); err != nil {
			return fmt.Errorf("render %s: %w", cfg.HTML, err)
		}
		req := emit.WriteRequest{Name: cfg.HTML, Data: buf.Bytes(), ContentType: emit.ContentTypeHTML}
		if err := sink.Write(ctx, req); err != nil {
			return err
		}
		summary.Reports = append(summary.Reports, cfg.HTML)
	}

	if cfg.Parquet != "" {
		var buf bytes.Buffer
		var err error
		if cfg.Group {
			err = report.WriteParquet(&buf, groupParquetRows(rows, cfg.Extension), cfg.ParquetCompression)
		} else {
			err = report.WriteParquet(&buf, recordParquetRows(ds, rows, records, proj, cfg.Extension), cfg.ParquetCompression)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", cfg.Parquet, err)
		}
		req := emit.WriteRequest{Name: cfg.Parquet, Data: buf.Bytes(), ContentType: emit.ContentTypeParquet}
		if err := sink.Write(ctx, req); err != nil {
			return err
		}
		summary.Reports = append(summary.Reports, cfg.Parquet)
	}

	return nil
}

// htmlTable builds the report table: origin, region, count per group, or the
// schema columns plus origin and region per record.
func htmlTable(cfg config.Config, rows []emit.Row, records []group.Record, proj projection) report.Table {
	if cfg.Group {
		t := report.Table{Columns: []string{"origin", "region", "count"}}
		for _, row := range rows {
			t.Rows = append(t.Rows, []string{row.Key, row.Text, strconv.Itoa(row.Count)})
		}
		return t
	}

	t := report.Table{Columns: append(append([]string{}, proj.names...), "origin", "region")}
	for _, r := range records {
		text, _ := r.Encoded()
		t.Rows = append(t.Rows, append(proj.project(r.Values), r.Origin, text))
	}
	return t
}

func groupParquetRows(rows []emit.Row, ext string) []report.GroupRow {
	out := make([]report.GroupRow, len(rows))
	for i, row := range rows {
		out[i] = report.GroupRow{
			Index:  int64(i),
			Origin: row.Key,
			Region: report.OptionalText(row.Text, row.HasText),
			Count:  int64(row.Count),
			File:   rowFile(i, row, ext),
		}
	}
	return out
}

func recordParquetRows(ds *parser.Dataset, rows []emit.Row, records []group.Record, proj projection, ext string) []report.RecordRow {
	out := make([]report.RecordRow, len(records))
	for i, r := range records {
		text, ok := r.Encoded()
		kind := ""
		if r.Index >= 0 && r.Index < len(ds.Features) {
			kind = ds.Features[r.Index].Kind.String()
		}
		out[i] = report.RecordRow{
			Index:  int64(r.Index),
			Kind:   kind,
			Origin: r.Origin,
			Region: report.OptionalText(text, ok),
			Values: proj.project(r.Values),
			File:   rowFile(i, rows[i], ext),
		}
	}
	return out
}
