// internal/ubique/mapping.go
package ubique

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrMappingRequired signals that blacklist generation stopped because the
// name mapping needs a human to curate it.
var ErrMappingRequired = errors.New("ubique: name mapping requires curation")

// MappingRequiredError names the file waiting for curation.
type MappingRequiredError struct {
	Path    string
	Pending int
}

func (e *MappingRequiredError) Error() string {
	return fmt.Sprintf("%v: %d names written to %s, curate and re-run", ErrMappingRequired, e.Pending, e.Path)
}

func (e *MappingRequiredError) Is(target error) bool { return target == ErrMappingRequired }

// ReadMapping parses "display name<TAB>canonical name" lines. Names are
// lower-cased; blank lines and '#' comment lines without a tab are skipped.
func ReadMapping(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || (strings.HasPrefix(text, "#") && !strings.Contains(text, "\t")) {
			continue
		}
		from, to, ok := strings.Cut(text, "\t")
		if !ok || strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return nil, fmt.Errorf("mapping: line %d: expected two tab separated names", line)
		}
		out[strings.ToLower(strings.TrimSpace(from))] = strings.ToLower(strings.TrimSpace(to))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}
	return out, nil
}

// WriteMapping writes the mapping sorted by display name.
func WriteMapping(w io.Writer, m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", k, m[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func saveMapping(path string, m map[string]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mapping file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteMapping(f, m)
}

func loadMapping(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMapping(f)
}

// curate checks the proposals against the mapping file. It returns the
// curated mapping, or a *MappingRequiredError after writing what still needs
// a decision. Nothing to curate and no file means an empty mapping.
func curate(path string, proposals map[string]string) (map[string]string, error) {
	mapping, err := loadMapping(path)
	if errors.Is(err, os.ErrNotExist) {
		if len(proposals) == 0 {
			return map[string]string{}, nil
		}
		if err := saveMapping(path, proposals); err != nil {
			return nil, err
		}
		return nil, &MappingRequiredError{Path: path, Pending: len(proposals)}
	}
	if err != nil {
		return nil, err
	}

	missing := make(map[string]string)
	for name, canonical := range proposals {
		if _, ok := mapping[name]; !ok {
			missing[name] = canonical
		}
	}
	if len(missing) > 0 {
		pending := path + ".pending"
		if err := saveMapping(pending, missing); err != nil {
			return nil, err
		}
		return nil, &MappingRequiredError{Path: pending, Pending: len(missing)}
	}
	return mapping, nil
}
