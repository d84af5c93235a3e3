package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/storage"
)

// seedMutualDebt creates the canonical two-way position: Bob owes Alice
// $50 from groceries, Alice owes Bob $20 from takeout.
func seedMutualDebt(t *testing.T, env *testEnv) (aliceExpense, bobExpense *models.Expense) {
	t.Helper()
	ctx := context.Background()

	aliceExpense, err := env.expenses.Create(ctx, env.houseID, "alice", "alice", groceriesInput(50), []SplitInput{
		{UserID: "bob", Amount: 50},
	})
	require.NoError(t, err)

	in := groceriesInput(20)
	in.Title = "Takeout"
	bobExpense, err = env.expenses.Create(ctx, env.houseID, "bob", "bob", in, []SplitInput{
		{UserID: "alice", Amount: 20},
	})
	require.NoError(t, err)

	return aliceExpense, bobExpense
}

func TestSettleAndUnsettleSplit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	aliceExpense, _ := seedMutualDebt(t, env)
	splitID := aliceExpense.Splits[0].ID

	require.NoError(t, env.settlements.SettleSplit(ctx, splitID, "alice"))

	split, err := env.settlements.GetSplit(ctx, splitID)
	require.NoError(t, err)
	assert.True(t, split.Settled)
	assert.Equal(t, "alice", split.SettledBy)
	require.NotNil(t, split.SettledAt)

	require.NoError(t, env.settlements.UnsettleSplit(ctx, splitID))

	split, err = env.settlements.GetSplit(ctx, splitID)
	require.NoError(t, err)
	assert.False(t, split.Settled)
	assert.Nil(t, split.SettledAt)
}

func TestSettleSplitNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.settlements.SettleSplit(context.Background(), "nope", "alice")
	var nf *storage.NotFoundError
	require.ErrorAs(t, err, &nf)

	err = env.settlements.UnsettleSplit(context.Background(), "nope")
	require.ErrorAs(t, err, &nf)
}

func TestSettleAllWithUserIsOneDirectional(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedMutualDebt(t, env)

	// Alice collects from Bob. Her own $20 debt to him must survive.
	result, err := env.settlements.SettleAllWithUser(ctx, env.houseID, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, result.SettledCount)
	assert.Equal(t, 50.0, result.Amount)

	sheet, err := env.balances.Balances(ctx, env.houseID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0.0, sheet.Summary.TotalOwedToMe)
	assert.Equal(t, 20.0, sheet.Summary.TotalIOwe)
}

func TestSettleUp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedMutualDebt(t, env)

	result, err := env.settlements.SettleUp(ctx, env.houseID, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, result.SettledCount)
	// Gross across both directions: 50 + 20.
	assert.Equal(t, 70.0, result.Amount)

	// Both positions are now flat.
	for _, user := range []string{"alice", "bob"} {
		sheet, err := env.balances.Balances(ctx, env.houseID, user)
		require.NoError(t, err)
		assert.Zero(t, sheet.Summary.TotalOwedToMe, user)
		assert.Zero(t, sheet.Summary.TotalIOwe, user)
	}

	// Both legs carry the initiator's stamp.
	bd, err := env.balances.Breakdown(ctx, env.houseID, "alice", "bob")
	require.NoError(t, err)
	for _, item := range append(bd.ItemsAOwesB, bd.ItemsBOwesA...) {
		assert.True(t, item.Settled)
		assert.Equal(t, "alice", item.SettledBy)
	}

	waitForNotification(t, env)
	require.Len(t, env.notifier.delivered, 1)
	n := env.notifier.delivered[0]
	assert.Equal(t, "bob", n.RecipientID)
	assert.Contains(t, n.Body, "70.00")
}

func TestSettleUpSwallowsNotifierFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedMutualDebt(t, env)
	env.notifier.failWith(errors.New("smtp unreachable"))

	// The settlement already committed; a dead notifier must not
	// surface to the caller or touch the outcome.
	result, err := env.settlements.SettleUp(ctx, env.houseID, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, result.SettledCount)
	assert.Equal(t, 70.0, result.Amount)

	for _, user := range []string{"alice", "bob"} {
		sheet, err := env.balances.Balances(ctx, env.houseID, user)
		require.NoError(t, err)
		assert.Zero(t, sheet.Summary.TotalOwedToMe, user)
		assert.Zero(t, sheet.Summary.TotalIOwe, user)
	}

	// The attempt was made and its failure swallowed in the background.
	waitForNotification(t, env)
	require.Len(t, env.notifier.delivered, 1)
}

func TestSettleUpCleanPair(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.settlements.SettleUp(ctx, env.houseID, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, result.SettledCount)
	assert.Equal(t, 0.0, result.Amount)

	// Nothing moved, so nobody gets mail.
	assert.Empty(t, env.notifier.delivered)
}

func TestSettleUpIgnoresAlreadySettled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	aliceExpense, _ := seedMutualDebt(t, env)
	require.NoError(t, env.settlements.SettleSplit(ctx, aliceExpense.Splits[0].ID, "alice"))

	result, err := env.settlements.SettleUp(ctx, env.houseID, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, result.SettledCount)
	assert.Equal(t, 20.0, result.Amount)
}

func TestSettleUpLeavesThirdPartiesAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedMutualDebt(t, env)

	in := groceriesInput(15)
	in.Title = "Cleaning supplies"
	in.Category = models.CategorySupplies
	_, err := env.expenses.Create(ctx, env.houseID, "alice", "alice", in, []SplitInput{
		{UserID: "carol", Amount: 15},
	})
	require.NoError(t, err)

	_, err = env.settlements.SettleUp(ctx, env.houseID, "alice", "bob")
	require.NoError(t, err)

	// Carol's debt to Alice is untouched.
	sheet, err := env.balances.Balances(ctx, env.houseID, "carol")
	require.NoError(t, err)
	assert.Equal(t, 15.0, sheet.Summary.TotalIOwe)
}
