package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/housetab/housetab/internal/metrics"
	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/money"
	"github.com/housetab/housetab/internal/notify"
	"github.com/housetab/housetab/internal/storage"
)

// SettleResult reports what a bulk settlement actually did.
type SettleResult struct {
	// SettledCount is the number of splits flipped to settled.
	SettledCount int

	// Amount is the gross unsettled amount that was closed out, summed
	// across both directions for a settle-up.
	Amount float64
}

// SettlementService is the only mutating path over derived balances: it
// converts live debt into history by stamping splits settled, and
// dispatches best-effort notifications afterwards.
type SettlementService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewSettlementService creates a SettlementService over the given store
// and notification sink.
func NewSettlementService(store storage.Store, notifier notify.Notifier) *SettlementService {
	return &SettlementService{store: store, notifier: notifier}
}

// GetSplit retrieves one split by ID.
func (s *SettlementService) GetSplit(ctx context.Context, splitID string) (*models.ExpenseSplit, error) {
	return s.store.GetSplit(ctx, splitID)
}

// SettleSplit marks one split as settled. Settling an already-settled
// split just re-stamps the timestamp and settler.
func (s *SettlementService) SettleSplit(ctx context.Context, splitID, settledBy string) error {
	if _, err := s.store.GetSplit(ctx, splitID); err != nil {
		return err
	}
	if err := s.store.SettleSplit(ctx, splitID, settledBy, time.Now().Unix()); err != nil {
		slog.Error("SettleSplit failed", "split_id", splitID, "error", err)
		return err
	}
	metrics.SettlementsPerformed.WithLabelValues("settle").Inc()
	metrics.SplitsSettled.Inc()
	return nil
}

// UnsettleSplit clears a split's settlement fields, reopening the debt.
// Used to correct mistaken settlements.
func (s *SettlementService) UnsettleSplit(ctx context.Context, splitID string) error {
	if _, err := s.store.GetSplit(ctx, splitID); err != nil {
		return err
	}
	if err := s.store.UnsettleSplit(ctx, splitID); err != nil {
		slog.Error("UnsettleSplit failed", "split_id", splitID, "error", err)
		return err
	}
	metrics.SettlementsPerformed.WithLabelValues("unsettle").Inc()
	return nil
}

// SettleAllWithUser settles every unsettled split where counterparty
// owes initiator. The reverse direction is untouched: this is "mark
// everything they owe me as paid", not a netting.
func (s *SettlementService) SettleAllWithUser(ctx context.Context, houseID, initiatorID, counterpartyID string) (*SettleResult, error) {
	splits, err := s.store.ListUnsettledSplitsOwedTo(ctx, houseID, initiatorID, counterpartyID)
	if err != nil {
		return nil, err
	}

	result := sumSplits(splits)
	if result.SettledCount == 0 {
		return result, nil
	}

	if err := s.store.SettleSplits(ctx, splitIDs(splits), initiatorID, time.Now().Unix()); err != nil {
		slog.Error("SettleAllWithUser failed", "house_id", houseID, "error", err)
		return nil, err
	}
	metrics.SettlementsPerformed.WithLabelValues("settle_all").Inc()
	metrics.SplitsSettled.Add(float64(result.SettledCount))

	return result, nil
}

// SettleUp performs the bidirectional netting action between initiator
// and counterparty: every unsettled split in either direction is
// settled in one transaction, stamped with the initiator as settler on
// both legs. On success the counterparty is notified asynchronously;
// a failed notification never fails the settlement.
func (s *SettlementService) SettleUp(ctx context.Context, houseID, initiatorID, counterpartyID string) (*SettleResult, error) {
	theyOweMe, err := s.store.ListUnsettledSplitsOwedTo(ctx, houseID, initiatorID, counterpartyID)
	if err != nil {
		return nil, err
	}
	iOweThem, err := s.store.ListUnsettledSplitsOwedTo(ctx, houseID, counterpartyID, initiatorID)
	if err != nil {
		return nil, err
	}

	// Snapshot the moving amount before mutating anything; the
	// notification payload comes from this pre-settlement view.
	all := append(append([]*models.ExpenseSplit{}, theyOweMe...), iOweThem...)
	result := sumSplits(all)
	if result.SettledCount == 0 {
		return result, nil
	}

	if err := s.store.SettleSplits(ctx, splitIDs(all), initiatorID, time.Now().Unix()); err != nil {
		slog.Error("SettleUp failed", "house_id", houseID, "error", err)
		return nil, err
	}
	metrics.SettlementsPerformed.WithLabelValues("settle_up").Inc()
	metrics.SplitsSettled.Add(float64(result.SettledCount))

	s.dispatchNotification(counterpartyID, result)

	return result, nil
}

// dispatchNotification sends the settle-up summary in the background.
// Failures are counted and logged, never surfaced.
func (s *SettlementService) dispatchNotification(recipientID string, result *SettleResult) {
	n := notify.Notification{
		RecipientID: recipientID,
		Subject:     "Settled up",
		Body: fmt.Sprintf("%d shared expense(s) totaling %.2f were settled between you two.",
			result.SettledCount, result.Amount),
	}

	go func() {
		// Detached from the request: the settlement already committed.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.notifier.Notify(ctx, n); err != nil {
			metrics.NotificationFailures.Inc()
			slog.Warn("settlement notification failed",
				"recipient", n.RecipientID, "error", err)
		}
	}()
}

func sumSplits(splits []*models.ExpenseSplit) *SettleResult {
	amounts := make([]float64, len(splits))
	for i, sp := range splits {
		amounts[i] = sp.Amount
	}
	return &SettleResult{
		SettledCount: len(splits),
		Amount:       money.Round2(money.Sum(amounts...)),
	}
}

func splitIDs(splits []*models.ExpenseSplit) []string {
	ids := make([]string, len(splits))
	for i, sp := range splits {
		ids[i] = sp.ID
	}
	return ids
}
