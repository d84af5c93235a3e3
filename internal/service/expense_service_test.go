package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housetab/housetab/internal/storage"
)

func TestCreateExpense(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Alice pays $90; the submitted splits include her own share, which
	// must not become a row.
	expense, err := env.expenses.Create(ctx, env.houseID, "alice", "alice", groceriesInput(90), []SplitInput{
		{UserID: "alice", Amount: 30},
		{UserID: "bob", Amount: 30},
		{UserID: "carol", Amount: 30},
	})
	require.NoError(t, err)

	require.Len(t, expense.Splits, 2)
	assert.Equal(t, 30.0, expense.PayerShare())
	for _, s := range expense.Splits {
		assert.NotEqual(t, "alice", s.UserID)
		assert.False(t, s.Settled)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		in     ExpenseInput
		splits []SplitInput
	}{
		{
			name:   "missing title",
			in:     ExpenseInput{Amount: 10, Category: "groceries", Date: "2026-03-01"},
			splits: []SplitInput{{UserID: "bob", Amount: 10}},
		},
		{
			name:   "non-positive amount",
			in:     ExpenseInput{Title: "x", Amount: 0, Category: "groceries", Date: "2026-03-01"},
			splits: []SplitInput{},
		},
		{
			name:   "unknown category",
			in:     ExpenseInput{Title: "x", Amount: 10, Category: "gambling", Date: "2026-03-01"},
			splits: []SplitInput{{UserID: "bob", Amount: 10}},
		},
		{
			name:   "bad date",
			in:     ExpenseInput{Title: "x", Amount: 10, Category: "groceries", Date: "03/01/2026"},
			splits: []SplitInput{{UserID: "bob", Amount: 10}},
		},
		{
			name:   "missing debtor",
			in:     groceriesInput(10),
			splits: []SplitInput{{UserID: "", Amount: 10}},
		},
		{
			name:   "negative split",
			in:     groceriesInput(10),
			splits: []SplitInput{{UserID: "bob", Amount: 20}, {UserID: "carol", Amount: -10}},
		},
		{
			name:   "sum mismatch",
			in:     groceriesInput(90),
			splits: []SplitInput{{UserID: "bob", Amount: 30}, {UserID: "carol", Amount: 30}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.expenses.Create(ctx, env.houseID, "alice", "alice", tt.in, tt.splits)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}

	// None of the rejected creates left anything behind.
	expenses, err := env.expenses.List(ctx, env.houseID, storage.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestCreateExpenseSumToleratesCentDrift(t *testing.T) {
	env := newTestEnv(t)

	// 33.33 + 33.33 + 33.33 = 99.99 against a 100.00 amount: within the
	// one-cent tolerance.
	_, err := env.expenses.Create(context.Background(), env.houseID, "alice", "alice", groceriesInput(100), []SplitInput{
		{UserID: "alice", Amount: 33.33},
		{UserID: "bob", Amount: 33.33},
		{UserID: "carol", Amount: 33.33},
	})
	require.NoError(t, err)
}

func TestUpdateExpenseReplacesSplits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	expense, err := env.expenses.Create(ctx, env.houseID, "alice", "alice", groceriesInput(90), []SplitInput{
		{UserID: "bob", Amount: 45},
		{UserID: "carol", Amount: 45},
	})
	require.NoError(t, err)

	// Bob pays up, then the expense gets edited with new splits.
	require.NoError(t, env.settlements.SettleSplit(ctx, expense.Splits[0].ID, "alice"))

	in := groceriesInput(60)
	in.Title = "Groceries (corrected)"
	updated, err := env.expenses.Update(ctx, expense.ID, in, []SplitInput{
		{UserID: "bob", Amount: 30},
		{UserID: "carol", Amount: 30},
	})
	require.NoError(t, err)

	assert.Equal(t, "Groceries (corrected)", updated.Title)
	assert.Equal(t, 60.0, updated.Amount)
	require.Len(t, updated.Splits, 2)
	for _, s := range updated.Splits {
		// The edit reopened Bob's debt along with everyone else's.
		assert.False(t, s.Settled)
	}
}

func TestUpdateExpenseScalarOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	expense, err := env.expenses.Create(ctx, env.houseID, "alice", "alice", groceriesInput(90), []SplitInput{
		{UserID: "bob", Amount: 45},
		{UserID: "carol", Amount: 45},
	})
	require.NoError(t, err)
	require.NoError(t, env.settlements.SettleSplit(ctx, expense.Splits[0].ID, "alice"))

	in := groceriesInput(90)
	in.Description = "receipt attached"
	updated, err := env.expenses.Update(ctx, expense.ID, in, nil)
	require.NoError(t, err)

	assert.Equal(t, "receipt attached", updated.Description)
	require.Len(t, updated.Splits, 2)

	settled := 0
	for _, s := range updated.Splits {
		if s.Settled {
			settled++
		}
	}
	assert.Equal(t, 1, settled)
}

func TestUpdateExpenseNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.expenses.Update(context.Background(), "nope", groceriesInput(10), nil)
	var nf *storage.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDeleteExpense(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	expense, err := env.expenses.Create(ctx, env.houseID, "alice", "alice", groceriesInput(90), []SplitInput{
		{UserID: "bob", Amount: 90},
	})
	require.NoError(t, err)

	require.NoError(t, env.expenses.Delete(ctx, expense.ID))

	_, err = env.expenses.Get(ctx, expense.ID)
	var nf *storage.NotFoundError
	require.ErrorAs(t, err, &nf)

	// Bob's side of the balance sheet is clean again.
	sheet, err := env.balances.Balances(ctx, env.houseID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 0.0, sheet.Summary.TotalIOwe)
}

func TestListExpensesRejectsBadCategoryFilter(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.expenses.List(context.Background(), env.houseID, storage.ExpenseFilter{Category: "gambling"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestBalancesEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.expenses.Create(ctx, env.houseID, "alice", "alice", groceriesInput(90), []SplitInput{
		{UserID: "alice", Amount: 30},
		{UserID: "bob", Amount: 30},
		{UserID: "carol", Amount: 30},
	})
	require.NoError(t, err)

	sheet, err := env.balances.Balances(ctx, env.houseID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 60.0, sheet.Summary.TotalOwedToMe)
	assert.Equal(t, 0.0, sheet.Summary.TotalIOwe)
	require.Len(t, sheet.Entries, 2)

	bobSheet, err := env.balances.Balances(ctx, env.houseID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 30.0, bobSheet.Summary.TotalIOwe)
	assert.Equal(t, -30.0, bobSheet.Summary.NetBalance)
}

func TestBreakdownEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.expenses.Create(ctx, env.houseID, "alice", "alice", groceriesInput(50), []SplitInput{
		{UserID: "bob", Amount: 50},
	})
	require.NoError(t, err)

	in := groceriesInput(20)
	in.Title = "Takeout"
	_, err = env.expenses.Create(ctx, env.houseID, "bob", "bob", in, []SplitInput{
		{UserID: "alice", Amount: 20},
	})
	require.NoError(t, err)

	bd, err := env.balances.Breakdown(ctx, env.houseID, "alice", "bob")
	require.NoError(t, err)
	require.Len(t, bd.ItemsBOwesA, 1)
	require.Len(t, bd.ItemsAOwesB, 1)
	assert.Equal(t, 50.0, bd.TotalBOwesA)
	assert.Equal(t, 20.0, bd.TotalAOwesB)
	assert.Equal(t, 30.0, bd.NetBalance)
}

// waitForNotification blocks until the background dispatch lands or the
// test times out.
func waitForNotification(t *testing.T, env *testEnv) {
	t.Helper()
	select {
	case <-env.notifier.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never arrived")
	}
}
