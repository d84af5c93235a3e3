package service

import (
	"context"

	"github.com/housetab/housetab/internal/balance"
	"github.com/housetab/housetab/internal/storage"
)

// BalanceService wraps the pure balance engine with data access: it
// snapshots the house ledger and roster, then hands both to the engine.
// No derived balance is ever written back.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a BalanceService over the given store.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// Balances derives userID's net position against every other house
// member from the current unsettled splits.
func (s *BalanceService) Balances(ctx context.Context, houseID, userID string) (*balance.Sheet, error) {
	expenses, err := s.store.ListExpenses(ctx, houseID, storage.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	roster, err := s.store.ListMembers(ctx, houseID)
	if err != nil {
		return nil, err
	}
	return balance.Compute(expenses, roster, userID), nil
}

// Breakdown itemizes the bidirectional debt history between two users,
// settled items included.
func (s *BalanceService) Breakdown(ctx context.Context, houseID, userA, userB string) (*balance.Breakdown, error) {
	expenses, err := s.store.ListExpenses(ctx, houseID, storage.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	return balance.ComputeBreakdown(expenses, userA, userB), nil
}
