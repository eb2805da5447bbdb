package emit

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/beetlebugorg/mif/internal/group"
)

// Row is one output table row: a grouping key, its Region text, and the
// attribute values written to the optional MID file.
type Row struct {
	Key     string
	Text    string
	HasText bool
	Values  []string
	Count   int // Number of source records behind the row
}

// Options configures an Emitter
type Options struct {
	// Columns are declared in every header. Usually the source schema columns.
	Columns []string

	// Extension of MIF output files
	// Default: ".mif"
	Extension string

	// WriteMID: if true, a .mid file with the row's values accompanies each MIF
	// Default: false
	WriteMID bool

	// SkipErrors: if true, rows that fail are reported and emission continues
	// Default: false (stop at the first failing row)
	SkipErrors bool

	// Logger receives per-row events. nil uses slog.Default().
	Logger *slog.Logger
}

// Result reports what an Emit call produced
type Result struct {
	Written []string // Names of MIF objects written, in row order
	Skipped int      // Rows without encodable geometry
	Errors  []error  // Row failures collected when SkipErrors is set
}

// Emitter writes rows to a Sink
type Emitter struct {
	sink    Sink
	opts    Options
	encoder *encoding.Encoder
	logger  *slog.Logger
}

// New creates an emitter writing to sink.
func New(sink Sink, opts Options) *Emitter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		sink: sink,
		opts: opts,
		// Characters outside Windows-1252 become the substitute byte
		encoder: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
		logger:  logger,
	}
}

// Emit writes one MIF file per row. Row i is named with index i+1.
//
// Rows without text are skipped. A row with an empty key fails with
// *group.ErrMissingKey; unless SkipErrors is set the first failure stops
// emission and is returned.
func (e *Emitter) Emit(ctx context.Context, rows []Row) (*Result, error) {
	result := &Result{}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name, err := e.emitRow(ctx, i, row)
		if err != nil {
			if !e.opts.SkipErrors {
				return result, err
			}
			e.logger.Warn("row_failed", "row", i+1, "key", row.Key, "error", err)
			result.Errors = append(result.Errors, err)
			continue
		}
		if name == "" {
			e.logger.Info("row_skipped", "row", i+1, "key", row.Key, "reason", "no encodable geometry")
			result.Skipped++
			continue
		}

		e.logger.Debug("file_written", "file", name, "count", row.Count)
		result.Written = append(result.Written, name)
	}

	return result, nil
}

// emitRow writes a single row and returns its MIF name, or "" when skipped.
func (e *Emitter) emitRow(ctx context.Context, i int, row Row) (string, error) {
	if row.Key == "" {
		return "", &group.ErrMissingKey{Index: i}
	}
	if !row.HasText {
		return "", nil
	}

	name := Filename(i+1, row.Key, e.opts.Extension)

	data, err := e.Render(row)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := e.sink.Write(ctx, WriteRequest{Name: name, Data: data, ContentType: ContentTypeMIF}); err != nil {
		return "", err
	}

	if e.opts.WriteMID {
		mid, err := e.encode(FormatMIDRow(row.Values, len(e.opts.Columns)))
		if err != nil {
			return "", fmt.Errorf("render %s: %w", MIDFilename(name), err)
		}
		req := WriteRequest{Name: MIDFilename(name), Data: mid, ContentType: ContentTypeMIF}
		if err := e.sink.Write(ctx, req); err != nil {
			return "", err
		}
	}

	return name, nil
}

// Render returns the Windows-1252 bytes of a row's MIF file: the header
// followed by exactly the row text.
func (e *Emitter) Render(row Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, e.opts.Columns); err != nil {
		return nil, err
	}
	buf.WriteString(row.Text)
	return e.encode(buf.String())
}

func (e *Emitter) encode(s string) ([]byte, error) {
	return e.encoder.Bytes([]byte(s))
}
