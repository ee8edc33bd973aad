package rawvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ambroisie/seer-inspect/internal/errors"
)

// Symbol is a named, typed value captured in a snapshot.
type Symbol struct {
	// Type is the fully qualified type name reported by the host,
	// e.g. "seer::board::chess_board::ChessBoard".
	Type string `json:"type"`

	Value Node `json:"value"`
}

// Snapshot is a memory dump: the values a debugger script captured from the
// inspected process, keyed by expression root name.
type Snapshot struct {
	Values map[string]Symbol `json:"values"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Values: make(map[string]Symbol)}
}

// Add records a typed value under a name, replacing any previous one.
func (s *Snapshot) Add(name, typeName string, value Node) {
	s.Values[name] = Symbol{Type: typeName, Value: value}
}

// Names returns the sorted symbol names.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.Values))
	for name := range s.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadSnapshot decodes a snapshot document.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodes a snapshot document from bytes.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "parsing snapshot")
	}
	if snap.Values == nil {
		return nil, fmt.Errorf("parsing snapshot: missing %q: %w", "values", errors.ErrFieldNotFound)
	}
	return &snap, nil
}

// ReadSnapshotFile loads a snapshot from a file.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, err
	}
	defer file.Close()

	snap, err := ReadSnapshot(file)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return snap, nil
}

// Encode returns the indented JSON document for the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the indented JSON document for the snapshot.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	data, err := s.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
