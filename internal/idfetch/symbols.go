// internal/idfetch/symbols.go
package idfetch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SymbolTable maps HGNC accession numbers to approved gene symbols. Ids are
// stored without the "HGNC:" prefix. A nil table maps nothing.
type SymbolTable struct {
	symbols map[string]string
}

// NewSymbolTable builds a table from id/symbol pairs.
func NewSymbolTable(pairs map[string]string) *SymbolTable {
	t := &SymbolTable{symbols: make(map[string]string, len(pairs))}
	for id, sym := range pairs {
		t.symbols[normalizeHGNC(id)] = sym
	}
	return t
}

func normalizeHGNC(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 5 && strings.EqualFold(id[:5], "hgnc:") {
		return id[5:]
	}
	return id
}

// Symbol looks up the symbol of an id, with or without the HGNC: prefix.
func (t *SymbolTable) Symbol(id string) (string, bool) {
	if t == nil {
		return "", false
	}
	sym, ok := t.symbols[normalizeHGNC(id)]
	return sym, ok && sym != ""
}

// Len returns the number of mapped ids.
func (t *SymbolTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.symbols)
}

// ReadSymbolTable parses "id<TAB>symbol" lines. Blank lines and lines
// starting with '#' are skipped; extra columns are ignored.
func ReadSymbolTable(r io.Reader) (*SymbolTable, error) {
	t := &SymbolTable{symbols: make(map[string]string)}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 || strings.TrimSpace(fields[0]) == "" {
			return nil, fmt.Errorf("idfetch: symbol table line %d: expected id<TAB>symbol", line)
		}
		t.symbols[normalizeHGNC(fields[0])] = strings.TrimSpace(fields[1])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("idfetch: reading symbol table: %w", err)
	}
	return t, nil
}

// LoadSymbolTable reads a symbol table file.
func LoadSymbolTable(path string) (*SymbolTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("idfetch: opening symbol table: %w", err)
	}
	defer f.Close()
	return ReadSymbolTable(f)
}
