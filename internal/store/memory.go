package store

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"influence/internal/config"
	"influence/internal/game"
	"influence/internal/table"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrStoreFull     = errors.New("too many open tables")
)

const codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MemoryStore holds all tables in memory
type MemoryStore struct {
	mu         sync.RWMutex
	tables     map[string]*table.Table
	rules      game.Rules
	maxTables  int
	codeLength int
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(cfg *config.ServerConfig) *MemoryStore {
	return &MemoryStore{
		tables:     make(map[string]*table.Table),
		rules:      cfg.GameRules(),
		maxTables:  cfg.Server.MaxTables,
		codeLength: cfg.Server.TableCodeLength,
	}
}

// Rules returns the rules new tables are created with
func (s *MemoryStore) Rules() game.Rules { return s.rules }

// CreateTable opens a new table in the lobby
func (s *MemoryStore) CreateTable(opts ...game.Option) (*table.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tables) >= s.maxTables {
		return nil, fmt.Errorf("%w: limit is %d", ErrStoreFull, s.maxTables)
	}

	// Generate unique table code
	var code string
	for i := 0; i < 10; i++ { // Try up to 10 times
		code = generateTableCode(s.codeLength)
		if _, exists := s.tables[code]; !exists {
			break
		}
	}
	if _, exists := s.tables[code]; exists {
		return nil, fmt.Errorf("could not allocate a table code")
	}

	t := table.New(code, s.rules, opts...)
	s.tables[code] = t
	return t, nil
}

// GetTable retrieves a table by code
func (s *MemoryStore) GetTable(code string) (*table.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tables[strings.ToUpper(code)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, code)
	}
	return t, nil
}

// DeleteTable closes and removes a table
func (s *MemoryStore) DeleteTable(code string) error {
	s.mu.Lock()
	code = strings.ToUpper(code)
	t, exists := s.tables[code]
	delete(s.tables, code)
	s.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrTableNotFound, code)
	}
	t.Close()
	return nil
}

// List returns the codes of all open tables, sorted
func (s *MemoryStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]string, 0, len(s.tables))
	for code := range s.tables {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Len returns the number of open tables
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

// Sweep removes tables that have seen no command for longer than idle
func (s *MemoryStore) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	s.mu.Lock()
	var stale []*table.Table
	for code, t := range s.tables {
		if t.LastActive().Before(cutoff) {
			stale = append(stale, t)
			delete(s.tables, code)
		}
	}
	s.mu.Unlock()

	for _, t := range stale {
		t.Close()
	}
	return len(stale)
}

// RunJanitor sweeps idle tables every interval until ctx is cancelled
func (s *MemoryStore) RunJanitor(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 || idle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(idle); n > 0 {
				log.Printf("🧹 Removed %d idle tables, %d open", n, s.Len())
			}
		}
	}
}

// generateTableCode generates an alphanumeric code of length n
func generateTableCode(n int) string {
	b := make([]byte, n)
	rand.Read(b)

	for i := range b {
		b[i] = codeChars[b[i]%byte(len(codeChars))]
	}

	return string(b)
}
