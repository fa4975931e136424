// Package storage reads and writes the ladder data directory: one index.json plus one
// ladder-{id}.json per ladder. Every write replaces the whole file.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/ladder-scraper/internal/types"
)

const (
	// IndexFile is the name of the aggregate index.
	IndexFile = "index.json"
	// LadderPattern matches the per-ladder files.
	LadderPattern = "ladder-*.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Error represents a failure reading or writing a data file.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error for %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Store is a data directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

// LadderPath returns the path of the file holding ladder id.
func (s *Store) LadderPath(id int) string {
	return filepath.Join(s.dir, LadderFileName(id))
}

// LadderFileName returns "ladder-{id}.json".
func LadderFileName(id int) string {
	return fmt.Sprintf("ladder-%d.json", id)
}

// WriteLadder writes l to its ladder file.
func (s *Store) WriteLadder(l *types.Ladder) error {
	return s.WriteLadderFile(s.LadderPath(l.ID), l)
}

// WriteLadderFile writes l to path, replacing the file.
func (s *Store) WriteLadderFile(path string, l *types.Ladder) error {
	return s.writeJSON(path, l)
}

// ReadLadder reads a ladder file from path.
func (s *Store) ReadLadder(path string) (*types.Ladder, error) {
	var l types.Ladder
	if err := readJSON(path, &l); err != nil {
		return nil, err
	}
	if l.Problems == nil {
		l.Problems = []types.Problem{}
	}
	return &l, nil
}

// ReadLadderByID reads the ladder file for id.
func (s *Store) ReadLadderByID(id int) (*types.Ladder, error) {
	return s.ReadLadder(s.LadderPath(id))
}

// ListLadderFiles returns every ladder file path, sorted by file name.
func (s *Store) ListLadderFiles() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, LadderPattern))
	if err != nil {
		return nil, &Error{Path: s.dir, Message: "failed to list ladder files", Cause: err}
	}
	sort.Strings(paths)
	return paths, nil
}

// WriteIndex sorts idx and writes it to index.json.
func (s *Store) WriteIndex(idx *types.LadderIndex) error {
	idx.Sort()
	return s.writeJSON(filepath.Join(s.dir, IndexFile), idx)
}

// ReadIndex reads index.json.
func (s *Store) ReadIndex() (*types.LadderIndex, error) {
	idx := types.NewLadderIndex()
	if err := readJSON(filepath.Join(s.dir, IndexFile), idx); err != nil {
		return nil, err
	}
	return idx, nil
}

// Marshal encodes v the way data files are written: two-space indent, non-ASCII and
// HTML characters left unescaped, trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return &Error{Path: path, Message: "failed to encode JSON", Cause: err}
	}
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return &Error{Path: s.dir, Message: "failed to create data directory", Cause: err}
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return &Error{Path: path, Message: "failed to write file", Cause: err}
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Path: path, Message: "failed to decode JSON", Cause: err}
	}
	return nil
}
