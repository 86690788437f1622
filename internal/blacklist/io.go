// internal/blacklist/io.go
package blacklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses the flat text format, one entry per line:
//
//	<URI> TAB <score> TAB <context-or-empty>
//
// Blank lines are skipped, as are comment lines: a '#' prefix and no tab.
// URIs built from rdf:ID without xml:base start with '#' themselves.
func Read(r io.Reader) (*Blacklist, error) {
	b := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || isComment(text) {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("blacklist: line %d: expected 2 or 3 tab separated fields, got %d", line, len(fields))
		}
		if fields[0] == "" {
			return nil, fmt.Errorf("blacklist: line %d: empty URI", line)
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("blacklist: line %d: bad score: %w", line, err)
		}
		ctx := NoContext
		if len(fields) == 3 {
			if ctx, err = ParseRelType(fields[2]); err != nil {
				return nil, fmt.Errorf("blacklist: line %d: %w", line, err)
			}
		}
		b.Add(fields[0], score, ctx)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("blacklist: reading: %w", err)
	}
	return b, nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") && !strings.Contains(line, "\t")
}

// Write serializes the table sorted by URI. An empty context is written as an
// empty third field.
func (b *Blacklist) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, uri := range b.URIs() {
		e := b.entries[uri]
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%s\n", uri, e.Score, e.Context); err != nil {
			return fmt.Errorf("blacklist: writing: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("blacklist: writing: %w", err)
	}
	return nil
}

// Load reads a blacklist file.
func Load(path string) (*Blacklist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blacklist: opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Save writes the blacklist to path, replacing any existing file.
func (b *Blacklist) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("blacklist: creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("blacklist: closing %s: %w", path, cerr)
		}
	}()
	return b.Write(f)
}
