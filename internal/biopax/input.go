// internal/biopax/input.go
package biopax

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
)

// ErrUnsupportedFormat is returned by Load for file extensions it cannot read.
var ErrUnsupportedFormat = errors.New("biopax: unsupported model format")

var (
	gzipReaderPool = sync.Pool{
		New: func() interface{} { return new(gzip.Reader) },
	}
	brotliReaderPool = sync.Pool{
		New: func() interface{} { return brotli.NewReader(nil) },
	}
	emptyReader = strings.NewReader("")
)

// closeWrapper closes the decompressor and the underlying file and hands the
// pooled reader back.
type closeWrapper struct {
	io.Reader
	underlying io.Closer
	release    func()
}

func (w *closeWrapper) Close() error {
	if w.release != nil {
		w.release()
		w.release = nil
	}
	return w.underlying.Close()
}

// Decompress wraps r according to the compression suffix of name (.gz, .br).
// Names without a known suffix are returned unchanged.
func Decompress(name string, r io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr := gzipReaderPool.Get().(*gzip.Reader)
		if err := zr.Reset(r); err != nil {
			gzipReaderPool.Put(zr)
			return nil, fmt.Errorf("biopax: opening gzip stream: %w", err)
		}
		return &closeWrapper{Reader: zr, underlying: r, release: func() {
			_ = zr.Reset(emptyReader)
			gzipReaderPool.Put(zr)
		}}, nil
	case ".br":
		br := brotliReaderPool.Get().(*brotli.Reader)
		if err := br.Reset(r); err != nil {
			brotliReaderPool.Put(br)
			return nil, fmt.Errorf("biopax: opening brotli stream: %w", err)
		}
		return &closeWrapper{Reader: br, underlying: r, release: func() {
			_ = br.Reset(emptyReader)
			brotliReaderPool.Put(br)
		}}, nil
	default:
		return r, nil
	}
}

// Load reads a model file. The format is chosen by extension once any
// compression suffix is stripped: .json for the fixture format, .owl, .rdf or
// .xml for BioPAX RDF/XML.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("biopax: opening model: %w", err)
	}
	rc, err := Decompress(path, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	defer rc.Close()

	switch formatOf(path) {
	case ".json":
		return ReadJSON(rc)
	case ".owl", ".rdf", ".xml":
		return ReadOWL(rc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

func formatOf(path string) string {
	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range []string{".gz", ".br"} {
		base = strings.TrimSuffix(base, suffix)
	}
	return filepath.Ext(base)
}
