package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/housetab/housetab/internal/metrics"
	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/money"
	"github.com/housetab/housetab/internal/storage"
)

// ExpenseInput carries the caller-supplied scalar fields of an expense.
// Edits re-issue the full set; there are no partial patches.
type ExpenseInput struct {
	Title       string
	Description string
	Amount      float64
	Category    models.Category
	Date        string // YYYY-MM-DD
	ReceiptURL  string
}

// SplitInput is one debtor's share as submitted by the caller.
type SplitInput struct {
	UserID string
	Amount float64
}

// ExpenseService implements the ledger operations over expenses:
// validation in front, the store behind. All split-sum and amount
// invariants are enforced here, before anything is written.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService over the given store.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// validateFields checks the scalar fields of an expense.
func validateFields(in ExpenseInput) error {
	if in.Title == "" {
		return validationErrorf("title is required")
	}
	if in.Amount <= 0 {
		return validationErrorf("amount must be positive, got %.2f", in.Amount)
	}
	if !in.Category.Valid() {
		return validationErrorf("unknown category %q", in.Category)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return validationErrorf("date must be YYYY-MM-DD, got %q", in.Date)
	}
	return nil
}

// validateExpense checks the scalar fields and the split-sum invariant.
// The submitted splits must sum to the expense amount within
// money.SumTolerance; the payer's own share may be submitted as a split
// and is dropped before persistence (see buildSplits).
func validateExpense(in ExpenseInput, splits []SplitInput) error {
	if err := validateFields(in); err != nil {
		return err
	}

	amounts := make([]float64, 0, len(splits))
	for _, s := range splits {
		if s.UserID == "" {
			return validationErrorf("split debtor is required")
		}
		if s.Amount < 0 {
			return validationErrorf("split amount must be non-negative, got %.2f", s.Amount)
		}
		amounts = append(amounts, s.Amount)
	}
	if sum := money.Sum(amounts...); !money.Equal(sum, in.Amount) {
		return validationErrorf("split amounts sum to %.2f, expense amount is %.2f", sum, in.Amount)
	}

	return nil
}

// buildSplits converts inputs to model splits, omitting the payer's own
// share: it stays implicit (Expense.PayerShare) rather than becoming a
// row.
func buildSplits(splits []SplitInput, payerID string) []models.ExpenseSplit {
	out := make([]models.ExpenseSplit, 0, len(splits))
	for _, s := range splits {
		if s.UserID == payerID {
			continue
		}
		out = append(out, models.ExpenseSplit{
			UserID: s.UserID,
			Amount: money.Round2(s.Amount),
		})
	}
	return out
}

// Create validates and persists a new expense with its splits as one
// unit: a validation failure writes nothing, and a storage failure
// rolls the whole batch back.
func (s *ExpenseService) Create(ctx context.Context, houseID, payerID, creatorID string, in ExpenseInput, splits []SplitInput) (*models.Expense, error) {
	if err := validateExpense(in, splits); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		HouseID:     houseID,
		Title:       in.Title,
		Description: in.Description,
		Amount:      money.Round2(in.Amount),
		Category:    in.Category,
		Date:        in.Date,
		PaidBy:      payerID,
		CreatedBy:   creatorID,
		ReceiptURL:  in.ReceiptURL,
		Splits:      buildSplits(splits, payerID),
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "house_id", houseID, "error", err)
		return nil, err
	}
	metrics.ExpensesWritten.WithLabelValues("create").Inc()

	return s.store.GetExpense(ctx, expense.ID)
}

// Update re-issues an expense's full field set. When splits is non-nil
// the existing splits are deleted and replaced wholesale, which
// discards any settlement state on the old rows: a settled debtor
// re-submitted in the new set comes back unsettled. Passing nil leaves
// the split set (and its settlement state) untouched.
func (s *ExpenseService) Update(ctx context.Context, expenseID string, in ExpenseInput, splits []SplitInput) (*models.Expense, error) {
	existing, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	// The sum invariant is only enforced when splits are re-supplied;
	// a scalar-only edit checks fields alone.
	if splits != nil {
		if err := validateExpense(in, splits); err != nil {
			return nil, err
		}
	} else if err := validateFields(in); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:          expenseID,
		HouseID:     existing.HouseID,
		Title:       in.Title,
		Description: in.Description,
		Amount:      money.Round2(in.Amount),
		Category:    in.Category,
		Date:        in.Date,
		PaidBy:      existing.PaidBy,
		CreatedBy:   existing.CreatedBy,
		ReceiptURL:  in.ReceiptURL,
	}
	if splits != nil {
		expense.Splits = buildSplits(splits, existing.PaidBy)
	}

	if err := s.store.UpdateExpense(ctx, expense, splits != nil); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}
	metrics.ExpensesWritten.WithLabelValues("update").Inc()

	return s.store.GetExpense(ctx, expenseID)
}

// Delete removes an expense; its splits go with it.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}
	metrics.ExpensesWritten.WithLabelValues("delete").Inc()
	return nil
}

// Get retrieves one expense with splits and display names.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// List returns a house's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, houseID string, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, validationErrorf("unknown category %q", filter.Category)
	}
	return s.store.ListExpenses(ctx, houseID, filter)
}
