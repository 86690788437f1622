// internal/reporting/reporter.go
package reporting

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/observability"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

// ErrUnsupportedFormat is returned by New for unknown output formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formats lists the accepted output formats.
var Formats = []string{"sif", "extended", "json"}

// Reporter collects interactions and writes them when closed.
type Reporter interface {
	// Write adds interactions to the report. Interactions with equal keys
	// are merged.
	Write(is ...*sif.Interaction) error
	// Close writes the report and closes the underlying output.
	Close() error
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// Option configures a reporter.
type Option func(*options)

type options struct {
	columns []Column
	logger  *zap.Logger
}

// WithColumns replaces the extra columns of the extended format.
func WithColumns(cols ...Column) Option {
	return func(o *options) { o.columns = cols }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// EncodeFunc renders a sorted interaction list.
type EncodeFunc func(w io.Writer, is []*sif.Interaction) error

// New creates a reporter for the format writing to outputPath. An empty
// path or "stdout" writes to standard output.
func New(format, outputPath string, opts ...Option) (Reporter, error) {
	o := options{columns: DefaultColumns()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = observability.GetLogger()
	}

	var encode EncodeFunc
	switch format {
	case "sif":
		encode = WriteSIF
	case "extended":
		cols := o.columns
		encode = func(w io.Writer, is []*sif.Interaction) error { return WriteExtended(w, is, cols...) }
	case "json":
		encode = WriteJSON
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	var writer io.WriteCloser
	if outputPath == "" || outputPath == "stdout" {
		// Wrap Stdout so Close() is a no-op.
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}
	return NewWriter(format, writer, encode, o.logger), nil
}

// Writer is a Reporter over an arbitrary output.
type Writer struct {
	format string
	out    io.WriteCloser
	encode EncodeFunc
	logger *zap.Logger

	mu     sync.Mutex
	merged map[sif.Key]*sif.Interaction
	order  []*sif.Interaction
	closed bool
}

// NewWriter creates a reporter writing with encode. The writer takes
// ownership of out.
func NewWriter(format string, out io.WriteCloser, encode EncodeFunc, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		format: format,
		out:    out,
		encode: encode,
		logger: logger.Named("sif_reporter"),
		merged: make(map[sif.Key]*sif.Interaction),
	}
}

func (r *Writer) Write(is ...*sif.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errors.New("reporter is closed")
	}
	for _, i := range is {
		if i == nil {
			continue
		}
		if prev, ok := r.merged[i.Key()]; ok {
			prev.Merge(i)
			continue
		}
		// Keep a private copy so merges never touch the caller's results.
		c := sif.NewInteraction(i.SourceID, i.TargetID, i.Type, sif.Evidence{})
		c.Merge(i)
		r.merged[c.Key()] = c
		r.order = append(r.order, c)
	}
	return nil
}

func (r *Writer) Close() error {
	startTime := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	sif.Sort(r.order)
	encodeErr := r.encode(r.out, r.order)
	// Always attempt to close the writer, regardless of encoding success.
	closeErr := r.out.Close()

	if encodeErr != nil {
		r.logger.Error("Failed to write report.", zap.String("format", r.format), zap.Error(encodeErr))
		return fmt.Errorf("failed to write %s output: %w", r.format, encodeErr)
	}
	if closeErr != nil {
		r.logger.Error("Failed to close output writer.", zap.Error(closeErr))
		return fmt.Errorf("failed to close output writer: %w", closeErr)
	}

	r.logger.Info("Report written.",
		zap.String("format", r.format),
		zap.Int("interactions", len(r.order)),
		zap.Duration("duration", time.Since(startTime)))
	return nil
}
