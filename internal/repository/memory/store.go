// Package memory keeps every repository in process memory. It backs the test
// suite and the STORAGE_DRIVER=memory demo mode; PostgreSQL is the production store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type balanceKey struct {
	userID string
	year   int
}

// Store holds the tables shared by the repositories built from it.
type Store struct {
	mu       sync.RWMutex
	requests map[string]leave.LeaveRequest
	replies  map[string][]leave.Reply
	balances map[balanceKey]leave.LeaveBalance
	users    map[string]user.User

	// serializes transactions so undo logs never interleave
	txMu sync.Mutex
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		requests: make(map[string]leave.LeaveRequest),
		replies:  make(map[string][]leave.Reply),
		balances: make(map[balanceKey]leave.LeaveBalance),
		users:    make(map[string]user.User),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type txKey struct{}

type memTx struct {
	undo []func()
}

type transactor struct {
	store *Store
}

func NewTransactor(store *Store) leave.Transactor {
	return &transactor{store: store}
}

// WithTransaction runs fn and replays the undo log in reverse when fn fails.
// A ctx that already carries a transaction joins it.
func (t *transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*memTx); ok {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	tx := &memTx{}
	defer func() {
		if p := recover(); p != nil {
			t.store.rollback(tx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		t.store.rollback(tx)
		return err
	}

	return nil
}

func (s *Store) rollback(tx *memTx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

// recordUndo must be called with s.mu held.
func (s *Store) recordUndo(ctx context.Context, fn func()) {
	if tx, ok := ctx.Value(txKey{}).(*memTx); ok {
		tx.undo = append(tx.undo, fn)
	}
}
