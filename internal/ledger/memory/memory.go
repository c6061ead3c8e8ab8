package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"agriledger/internal/ledger"
)

// Store is an in-memory Appender used in tests and when no spreadsheet is
// configured.
type Store struct {
	mu   sync.Mutex
	rows []ledger.Row
}

func New() *Store {
	return &Store{}
}

var _ ledger.Appender = (*Store)(nil)

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row ledger.Row) (string, error) {
	if row.Kind == "" {
		return "", errors.New("row kind is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []ledger.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledger.Row(nil), s.rows...)
}
