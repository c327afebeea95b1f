package memengine

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

const (
	logMsgTransactionCommitted  = "memengine: transaction committed"
	logMsgTransactionRolledBack = "memengine: transaction rolled back"
	logAttrError                = "error"
	logAttrReadOnly             = "read_only"
)

// CatalogStore is an in-memory catalogstore.Store.
type CatalogStore struct {
	mu     sync.RWMutex
	state  state
	logger catalogstore.Logger
}

// Option defines a functional option for configuring CatalogStore.
type Option func(*CatalogStore) error

// WithLogger sets the logger for the CatalogStore. Committed and rolled back transactions are logged at debug level.
func WithLogger(logger catalogstore.Logger) Option {
	return func(s *CatalogStore) error {
		s.logger = logger
		return nil
	}
}

var _ catalogstore.Store = (*CatalogStore)(nil)

// NewCatalogStore creates an empty in-memory catalog.
func NewCatalogStore(options ...Option) (*CatalogStore, error) {
	s := &CatalogStore{state: newState()}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// RunInTransaction executes fn on a private copy of the catalog and publishes the copy if fn succeeds.
func (s *CatalogStore) RunInTransaction(ctx context.Context, fn catalogstore.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{state: s.state.clone()}
	if err := fn(ctx, tx); err != nil {
		s.logDebug(logMsgTransactionRolledBack, logAttrError, err.Error(), logAttrReadOnly, false)
		return err
	}

	s.state = tx.state
	s.logDebug(logMsgTransactionCommitted, logAttrReadOnly, false)

	return nil
}

// View executes fn on a copy of the catalog. Any write fails with catalogstore.ErrReadOnlyTransaction.
func (s *CatalogStore) View(ctx context.Context, fn catalogstore.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	return fn(ctx, &transaction{state: snapshot, readOnly: true})
}

func (s *CatalogStore) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

type state struct {
	books         map[string]catalogstore.BookRecord
	bookOrder     []string
	borrowers     map[catalogstore.BorrowerKind]map[string]catalogstore.BorrowerRecord
	borrowerOrder map[catalogstore.BorrowerKind][]string
}

func newState() state {
	s := state{
		books:         make(map[string]catalogstore.BookRecord),
		bookOrder:     make([]string, 0),
		borrowers:     make(map[catalogstore.BorrowerKind]map[string]catalogstore.BorrowerRecord),
		borrowerOrder: make(map[catalogstore.BorrowerKind][]string),
	}

	for _, kind := range catalogstore.BorrowerKinds() {
		s.borrowers[kind] = make(map[string]catalogstore.BorrowerRecord)
		s.borrowerOrder[kind] = make([]string, 0)
	}

	return s
}

func (s state) clone() state {
	c := state{
		books:         make(map[string]catalogstore.BookRecord, len(s.books)),
		bookOrder:     slices.Clone(s.bookOrder),
		borrowers:     make(map[catalogstore.BorrowerKind]map[string]catalogstore.BorrowerRecord, len(s.borrowers)),
		borrowerOrder: make(map[catalogstore.BorrowerKind][]string, len(s.borrowerOrder)),
	}

	for isbn, book := range s.books {
		c.books[isbn] = book
	}

	for kind, byID := range s.borrowers {
		c.borrowers[kind] = make(map[string]catalogstore.BorrowerRecord, len(byID))
		for userID, borrower := range byID {
			c.borrowers[kind][userID] = cloneBorrower(borrower)
		}
		c.borrowerOrder[kind] = slices.Clone(s.borrowerOrder[kind])
	}

	return c
}

func cloneBorrower(b catalogstore.BorrowerRecord) catalogstore.BorrowerRecord {
	b.BorrowedISBNs = slices.Clone(b.BorrowedISBNs)
	if b.BorrowedISBNs == nil {
		b.BorrowedISBNs = []string{}
	}

	return b
}
