// Package audit provides audit record persistence: JSON Lines to stdout or a
// file, or rows in a SQLite database.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fn-gate/fngate/internal/domain/audit"
)

// LineStore implements audit.Store by appending one JSON object per line to
// a writer. Used for both the "stdout" and "file://" audit outputs.
type LineStore struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer // nil for stdout
}

// NewStdoutStore returns a LineStore writing to standard output.
func NewStdoutStore() *LineStore {
	return &LineStore{w: os.Stdout}
}

// NewFileStore opens (or creates) the file at path and appends records to it.
func NewFileStore(path string) (*LineStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}
	return &LineStore{w: f, closer: f}, nil
}

// Append writes each record as a JSON line.
func (s *LineStore) Append(_ context.Context, records ...audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc := json.NewEncoder(s.w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write audit record: %w", err)
		}
	}
	return nil
}

// Flush is a no-op; records are written unbuffered.
func (s *LineStore) Flush(context.Context) error { return nil }

// Close closes the underlying file, if any.
func (s *LineStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
