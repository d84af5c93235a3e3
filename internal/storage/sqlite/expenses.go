package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/storage"
)

// CreateExpense persists a new expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &storage.StorageError{Op: "create expense", Err: err}
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, house_id, title, description, amount, category, expense_date, paid_by, created_by, receipt_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.HouseID, expense.Title, expense.Description, expense.Amount,
		string(expense.Category), expense.Date, expense.PaidBy, expense.CreatedBy,
		nullableString(expense.ReceiptURL), expense.CreatedAt,
	)
	if err != nil {
		return &storage.StorageError{Op: "insert expense", Err: err}
	}

	if err := insertSplits(ctx, tx, expense.ID, expense.Splits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &storage.StorageError{Op: "commit create expense", Err: err}
	}
	return nil
}

// insertSplits writes a batch of splits for an expense inside tx,
// generating IDs as needed.
func insertSplits(ctx context.Context, tx *sql.Tx, expenseID string, splits []models.ExpenseSplit) error {
	for i := range splits {
		split := &splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expenseID

		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_splits (id, expense_id, user_id, amount, settled, settled_at, settled_by)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			split.ID, expenseID, split.UserID, split.Amount,
			boolToInt(split.Settled), split.SettledAt, nullableString(split.SettledBy),
		)
		if err != nil {
			return &storage.StorageError{Op: "insert split", Err: err}
		}
	}
	return nil
}

// GetExpense retrieves an expense by ID, splits and display names included.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var category string
	var receiptURL sql.NullString
	var payerName, creatorName sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT e.id, e.house_id, e.title, e.description, e.amount, e.category, e.expense_date,
		        e.paid_by, payer.display_name, e.created_by, creator.display_name,
		        e.receipt_url, e.created_at
		 FROM expenses e
		 LEFT JOIN users payer ON payer.id = e.paid_by
		 LEFT JOIN users creator ON creator.id = e.created_by
		 WHERE e.id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.HouseID, &expense.Title, &expense.Description, &expense.Amount,
		&category, &expense.Date, &expense.PaidBy, &payerName, &expense.CreatedBy, &creatorName,
		&receiptURL, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &storage.NotFoundError{Kind: "expense", ID: expenseID}
	}
	if err != nil {
		return nil, &storage.StorageError{Op: "get expense", Err: err}
	}

	expense.Category = models.Category(category)
	expense.ReceiptURL = receiptURL.String
	expense.PaidByName = payerName.String
	expense.CreatedByName = creatorName.String

	splits, err := s.querySplits(ctx, "s.expense_id = ?", expenseID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits

	return expense, nil
}

// ListExpenses returns the expenses of a house ordered by date
// descending then creation time descending.
func (s *SQLiteStore) ListExpenses(ctx context.Context, houseID string, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	query := `SELECT e.id, e.house_id, e.title, e.description, e.amount, e.category, e.expense_date,
	                 e.paid_by, payer.display_name, e.created_by, creator.display_name,
	                 e.receipt_url, e.created_at
	          FROM expenses e
	          LEFT JOIN users payer ON payer.id = e.paid_by
	          LEFT JOIN users creator ON creator.id = e.created_by
	          WHERE e.house_id = ?`
	args := []any{houseID}

	if filter.Category != "" {
		query += " AND e.category = ?"
		args = append(args, string(filter.Category))
	}
	if filter.DateFrom != "" {
		query += " AND e.expense_date >= ?"
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		query += " AND e.expense_date <= ?"
		args = append(args, filter.DateTo)
	}
	query += " ORDER BY e.expense_date DESC, e.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &storage.StorageError{Op: "list expenses", Err: err}
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var category string
		var receiptURL sql.NullString
		var payerName, creatorName sql.NullString

		if err := rows.Scan(&expense.ID, &expense.HouseID, &expense.Title, &expense.Description,
			&expense.Amount, &category, &expense.Date, &expense.PaidBy, &payerName,
			&expense.CreatedBy, &creatorName, &receiptURL, &expense.CreatedAt); err != nil {
			return nil, &storage.StorageError{Op: "scan expense", Err: err}
		}
		expense.Category = models.Category(category)
		expense.ReceiptURL = receiptURL.String
		expense.PaidByName = payerName.String
		expense.CreatedByName = creatorName.String

		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, &storage.StorageError{Op: "iterate expenses", Err: err}
	}

	// Attach splits after the expense cursor is closed; nested queries
	// on the same connection deadlock some drivers.
	for _, expense := range expenses {
		splits, err := s.querySplits(ctx, "s.expense_id = ?", expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}

	return expenses, nil
}

// UpdateExpense rewrites an expense's fields and optionally replaces
// its full split set, all in one transaction.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense, replaceSplits bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &storage.StorageError{Op: "update expense", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET title = ?, description = ?, amount = ?, category = ?, expense_date = ?, receipt_url = ?
		 WHERE id = ?`,
		expense.Title, expense.Description, expense.Amount, string(expense.Category),
		expense.Date, nullableString(expense.ReceiptURL), expense.ID,
	)
	if err != nil {
		return &storage.StorageError{Op: "update expense", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &storage.StorageError{Op: "update expense", Err: err}
	}
	if affected == 0 {
		return &storage.NotFoundError{Kind: "expense", ID: expense.ID}
	}

	if replaceSplits {
		// Full replacement: old rows go, settlement state and all.
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM expense_splits WHERE expense_id = ?", expense.ID,
		); err != nil {
			return &storage.StorageError{Op: "delete splits", Err: err}
		}
		if err := insertSplits(ctx, tx, expense.ID, expense.Splits); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return &storage.StorageError{Op: "commit update expense", Err: err}
	}
	return nil
}

// DeleteExpense removes an expense; splits are removed via cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return &storage.StorageError{Op: "delete expense", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &storage.StorageError{Op: "delete expense", Err: err}
	}
	if affected == 0 {
		return &storage.NotFoundError{Kind: "expense", ID: expenseID}
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
