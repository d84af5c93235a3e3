package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/notify"
	"github.com/housetab/housetab/internal/storage"
	"github.com/housetab/housetab/internal/storage/sqlite"
)

// recordingNotifier captures notification attempts and signals each one
// so tests can wait for the background dispatch. Setting err makes
// every delivery fail.
type recordingNotifier struct {
	mu        sync.Mutex
	delivered []notify.Notification
	err       error
	ch        chan notify.Notification
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan notify.Notification, 8)}
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	r.delivered = append(r.delivered, n)
	err := r.err
	r.mu.Unlock()
	r.ch <- n
	return err
}

func (r *recordingNotifier) failWith(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

// newTestEnv builds a store over a throwaway database with three users
// in one house, plus the services under test.
type testEnv struct {
	store       storage.Store
	houseID     string
	expenses    *ExpenseService
	balances    *BalanceService
	settlements *SettlementService
	notifier    *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, u := range []struct{ id, name string }{
		{"alice", "Alice"}, {"bob", "Bob"}, {"carol", "Carol"},
	} {
		require.NoError(t, store.CreateUser(ctx, &models.User{
			ID:          u.id,
			Email:       u.id + "@example.com",
			DisplayName: u.name,
		}))
	}

	house := &models.House{Name: "Elm St"}
	require.NoError(t, store.CreateHouse(ctx, house))
	for _, id := range []string{"alice", "bob", "carol"} {
		require.NoError(t, store.AddMember(ctx, house.ID, id))
	}

	notifier := newRecordingNotifier()
	return &testEnv{
		store:       store,
		houseID:     house.ID,
		expenses:    NewExpenseService(store),
		balances:    NewBalanceService(store),
		settlements: NewSettlementService(store, notifier),
		notifier:    notifier,
	}
}

func groceriesInput(amount float64) ExpenseInput {
	return ExpenseInput{
		Title:    "Groceries",
		Amount:   amount,
		Category: models.CategoryGroceries,
		Date:     "2026-03-01",
	}
}
