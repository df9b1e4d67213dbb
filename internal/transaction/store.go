package transaction

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=transaction

// Persister loads and saves the full collection of user records.
type Persister interface {
	Load(ctx context.Context) ([]UserRecord, error)
	Save(ctx context.Context, records []UserRecord) error
}

// Reporter turns a date-sorted transaction list into report weeks.
type Reporter interface {
	Build(txs []Transaction) []Week
}

// Store keeps every user record in memory, in the order users were first seen,
// together with an index from user id to position in that sequence.
//
// A Store is created once per process, loaded with Open and flushed with Persist.
// Mutations are never written through, with the exception of Clear.
type Store struct {
	persister Persister
	reporter  Reporter
	now       func() time.Time
	newID     func() string

	saveMu  sync.Mutex
	mu      sync.RWMutex
	loaded  bool
	records []UserRecord
	index   map[string]int
}

type Option func(*Store)

// WithClock overrides the time source used for transactions without a date.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the transaction id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(persister Persister, reporter Reporter, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		reporter:  reporter,
		now:       time.Now,
		newID:     uuid.NewString,
		index:     make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open loads the collection from the persister. Only the first successful call
// loads; later calls keep the in-memory state.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	records, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: loading records: %w", ErrPersistence, err)
	}

	index := make(map[string]int, len(records))
	for i := range records {
		records[i].UserID = normalizeUserID(records[i].UserID)
		index[records[i].UserID] = i
	}

	s.records = records
	s.index = index
	s.loaded = true

	return nil
}

// Add records a new transaction for the user, creating the user record on first use.
func (s *Store) Add(userID string, params AddParams) (Transaction, error) {
	userID = normalizeUserID(userID)
	if userID == "" {
		return Transaction{}, fmt.Errorf("%w: a transaction must have a user id", ErrValidation)
	}

	tx := Transaction{
		ID:          s.newID(),
		Amount:      params.Amount,
		Description: params.Description,
		Date:        params.Date,
	}
	if tx.Date.IsZero() {
		tx.Date = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if pos, ok := s.index[userID]; ok {
		s.records[pos].Transactions = append(s.records[pos].Transactions, tx)
		return tx, nil
	}

	s.records = append(s.records, UserRecord{
		UserID:       userID,
		Transactions: []Transaction{tx},
	})
	s.index[userID] = len(s.records) - 1

	return tx, nil
}

// Find returns ErrNotFound when either the user or the transaction is unknown.
func (s *Store) Find(userID, transactionID string) (Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[normalizeUserID(userID)]
	if !ok {
		return Transaction{}, ErrNotFound
	}

	for _, tx := range s.records[pos].Transactions {
		if tx.ID == transactionID {
			return tx, nil
		}
	}

	return Transaction{}, ErrNotFound
}

// GetByUserID returns the user's transactions sorted by date. Transactions sharing
// a timestamp keep their insertion order. Unknown users yield an empty slice.
func (s *Store) GetByUserID(userID string) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[normalizeUserID(userID)]
	if !ok {
		return []Transaction{}
	}

	txs := slices.Clone(s.records[pos].Transactions)
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})

	return txs
}

// GetSumByUserID returns zero for unknown users.
func (s *Store) GetSumByUserID(userID string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := decimal.Zero

	pos, ok := s.index[normalizeUserID(userID)]
	if !ok {
		return sum
	}

	for _, tx := range s.records[pos].Transactions {
		sum = sum.Add(tx.Amount)
	}

	return sum
}

func (s *Store) GetReportByUserID(userID string) []Week {
	txs := s.GetByUserID(userID)
	if len(txs) == 0 {
		return []Week{}
	}

	return s.reporter.Build(txs)
}

// Data returns a copy of every user record in sequence order.
func (s *Store) Data() []UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]UserRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.clone()
	}

	return out
}

// Index returns a copy of the user id to position mapping.
func (s *Store) Index() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.index)
}

// Persist writes the full collection through the persister.
func (s *Store) Persist(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := s.persister.Save(ctx, s.Data()); err != nil {
		return fmt.Errorf("%w: saving records: %w", ErrPersistence, err)
	}

	return nil
}

// Clear saves an empty collection and then drops the in-memory state.
// The in-memory state is left untouched when the save fails.
func (s *Store) Clear(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Save(ctx, []UserRecord{}); err != nil {
		return fmt.Errorf("%w: clearing records: %w", ErrPersistence, err)
	}

	s.records = []UserRecord{}
	s.index = make(map[string]int)
	s.loaded = true

	return nil
}

func normalizeUserID(id string) string {
	return strings.TrimSpace(id)
}
