package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/storage"
)

// querySplits fetches splits matching the given WHERE clause, with the
// debtor's display name joined in.
func (s *SQLiteStore) querySplits(ctx context.Context, where string, args ...any) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.expense_id, s.user_id, u.display_name, s.amount, s.settled, s.settled_at, s.settled_by
		 FROM expense_splits s
		 LEFT JOIN users u ON u.id = s.user_id
		 WHERE `+where+`
		 ORDER BY s.amount DESC, s.user_id`,
		args...,
	)
	if err != nil {
		return nil, &storage.StorageError{Op: "query splits", Err: err}
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		split, err := scanSplit(rows.Scan)
		if err != nil {
			return nil, err
		}
		splits = append(splits, *split)
	}
	if err := rows.Err(); err != nil {
		return nil, &storage.StorageError{Op: "iterate splits", Err: err}
	}

	return splits, nil
}

// scanSplit reads one split row from any Scan-shaped source.
func scanSplit(scan func(dest ...any) error) (*models.ExpenseSplit, error) {
	split := &models.ExpenseSplit{}
	var userName sql.NullString
	var settled int
	var settledAt sql.NullInt64
	var settledBy sql.NullString

	if err := scan(&split.ID, &split.ExpenseID, &split.UserID, &userName,
		&split.Amount, &settled, &settledAt, &settledBy); err != nil {
		return nil, &storage.StorageError{Op: "scan split", Err: err}
	}

	split.UserName = userName.String
	split.Settled = settled != 0
	if settledAt.Valid {
		at := settledAt.Int64
		split.SettledAt = &at
	}
	split.SettledBy = settledBy.String

	return split, nil
}

// GetSplit retrieves a single split by ID.
func (s *SQLiteStore) GetSplit(ctx context.Context, splitID string) (*models.ExpenseSplit, error) {
	split := &models.ExpenseSplit{}
	var userName sql.NullString
	var settled int
	var settledAt sql.NullInt64
	var settledBy sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.expense_id, s.user_id, u.display_name, s.amount, s.settled, s.settled_at, s.settled_by
		 FROM expense_splits s
		 LEFT JOIN users u ON u.id = s.user_id
		 WHERE s.id = ?`,
		splitID,
	).Scan(&split.ID, &split.ExpenseID, &split.UserID, &userName,
		&split.Amount, &settled, &settledAt, &settledBy)
	if err == sql.ErrNoRows {
		return nil, &storage.NotFoundError{Kind: "split", ID: splitID}
	}
	if err != nil {
		return nil, &storage.StorageError{Op: "get split", Err: err}
	}

	split.UserName = userName.String
	split.Settled = settled != 0
	if settledAt.Valid {
		at := settledAt.Int64
		split.SettledAt = &at
	}
	split.SettledBy = settledBy.String

	return split, nil
}

// SettleSplit stamps one split as settled. An already-settled split is
// simply re-stamped.
func (s *SQLiteStore) SettleSplit(ctx context.Context, splitID, settledBy string, settledAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expense_splits SET settled = 1, settled_at = ?, settled_by = ? WHERE id = ?",
		settledAt, settledBy, splitID,
	)
	if err != nil {
		return &storage.StorageError{Op: "settle split", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &storage.StorageError{Op: "settle split", Err: err}
	}
	if affected == 0 {
		return &storage.NotFoundError{Kind: "split", ID: splitID}
	}
	return nil
}

// UnsettleSplit clears a split's settlement fields.
func (s *SQLiteStore) UnsettleSplit(ctx context.Context, splitID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expense_splits SET settled = 0, settled_at = NULL, settled_by = NULL WHERE id = ?",
		splitID,
	)
	if err != nil {
		return &storage.StorageError{Op: "unsettle split", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &storage.StorageError{Op: "unsettle split", Err: err}
	}
	if affected == 0 {
		return &storage.NotFoundError{Kind: "split", ID: splitID}
	}
	return nil
}

// ListUnsettledSplitsOwedTo returns every unsettled split in the house
// where debtorID owes on an expense paid by payerID.
func (s *SQLiteStore) ListUnsettledSplitsOwedTo(ctx context.Context, houseID, payerID, debtorID string) ([]*models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.expense_id, s.user_id, u.display_name, s.amount, s.settled, s.settled_at, s.settled_by
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 LEFT JOIN users u ON u.id = s.user_id
		 WHERE e.house_id = ? AND e.paid_by = ? AND s.user_id = ? AND s.settled = 0`,
		houseID, payerID, debtorID,
	)
	if err != nil {
		return nil, &storage.StorageError{Op: "list unsettled splits", Err: err}
	}
	defer rows.Close()

	var splits []*models.ExpenseSplit
	for rows.Next() {
		split, err := scanSplit(rows.Scan)
		if err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, &storage.StorageError{Op: "iterate unsettled splits", Err: err}
	}

	return splits, nil
}

// SettleSplits stamps every listed split as settled in one transaction.
// Both legs of a settle-up go through here together so a mid-operation
// failure can never leave one leg settled and the other live.
func (s *SQLiteStore) SettleSplits(ctx context.Context, splitIDs []string, settledBy string, settledAt int64) error {
	if len(splitIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &storage.StorageError{Op: "settle splits", Err: err}
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(splitIDs)), ", ")
	args := []any{settledAt, settledBy}
	for _, id := range splitIDs {
		args = append(args, id)
	}

	res, err := tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE expense_splits SET settled = 1, settled_at = ?, settled_by = ? WHERE id IN (%s)", placeholders),
		args...,
	)
	if err != nil {
		return &storage.StorageError{Op: "settle splits", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &storage.StorageError{Op: "settle splits", Err: err}
	}
	if affected != int64(len(splitIDs)) {
		// A split vanished between snapshot and settle; roll back so
		// the caller can re-read and retry.
		return &storage.StorageError{
			Op:  "settle splits",
			Err: fmt.Errorf("expected %d rows, updated %d", len(splitIDs), affected),
		}
	}

	if err := tx.Commit(); err != nil {
		return &storage.StorageError{Op: "commit settle splits", Err: err}
	}
	return nil
}
