// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"github.com/housetab/housetab/internal/models"
)

// ExpenseFilter narrows a ListExpenses call. Zero values mean "no
// filter". Dates are YYYY-MM-DD and inclusive.
type ExpenseFilter struct {
	Category models.Category
	DateFrom string
	DateTo   string
}

// ExpenseStore defines the durable ledger operations over expenses and
// their splits. Implementations must keep the composition invariant: a
// split always belongs to exactly one expense, and multi-row writes
// (expense + split batch, split replacement, bulk settlement) happen
// inside a single transaction.
type ExpenseStore interface {
	// CreateExpense persists a new expense and all of its splits in one
	// transaction. The ID and CreatedAt fields are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits and joined
	// display names. Returns a NotFoundError if the ID is unknown.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns the expenses of a house, splits and display
	// names included, ordered by date descending then creation time
	// descending.
	ListExpenses(ctx context.Context, houseID string, filter ExpenseFilter) ([]*models.Expense, error)

	// UpdateExpense rewrites the expense's scalar fields. When
	// replaceSplits is true, every existing split is deleted and the
	// supplied splits inserted fresh, all in one transaction; any prior
	// settlement state on the old rows is discarded with them.
	UpdateExpense(ctx context.Context, expense *models.Expense, replaceSplits bool) error

	// DeleteExpense removes the expense; splits go with it via cascade.
	DeleteExpense(ctx context.Context, expenseID string) error

	// GetSplit retrieves a single split by ID.
	GetSplit(ctx context.Context, splitID string) (*models.ExpenseSplit, error)

	// SettleSplit stamps one split as settled. Calling it on an
	// already-settled split re-stamps the timestamp and settler.
	SettleSplit(ctx context.Context, splitID, settledBy string, settledAt int64) error

	// UnsettleSplit clears the settled flag, timestamp and settler.
	UnsettleSplit(ctx context.Context, splitID string) error

	// ListUnsettledSplitsOwedTo returns every unsettled split in the
	// house where debtorID owes on an expense paid by payerID.
	ListUnsettledSplitsOwedTo(ctx context.Context, houseID, payerID, debtorID string) ([]*models.ExpenseSplit, error)

	// SettleSplits stamps every listed split as settled in a single
	// transaction: either all of them commit or none do.
	SettleSplits(ctx context.Context, splitIDs []string, settledBy string, settledAt int64) error
}

// HouseStore defines house and roster persistence. The roster backs the
// house-roster provider the balance engine consumes.
type HouseStore interface {
	// CreateHouse persists a new house. ID and CreatedAt are populated
	// by the store.
	CreateHouse(ctx context.Context, house *models.House) error

	// GetHouse retrieves a house by ID.
	GetHouse(ctx context.Context, houseID string) (*models.House, error)

	// AddMember adds a user to a house's roster. Adding an existing
	// member is a no-op.
	AddMember(ctx context.Context, houseID, userID string) error

	// ListMembers returns the house roster with display names, ordered
	// by display name.
	ListMembers(ctx context.Context, houseID string) ([]models.Member, error)

	// IsMember reports whether the user is on the house's roster.
	IsMember(ctx context.Context, houseID, userID string) (bool, error)
}

// UserStore defines user account persistence for the identity layer.
type UserStore interface {
	// CreateUser persists a new user. ID and CreatedAt are populated by
	// the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when
	// no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when no
	// such user exists.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// Store is the full persistence surface. This abstraction allows
// swapping storage backends (SQLite, PostgreSQL, ...) without changing
// the service layer.
type Store interface {
	ExpenseStore
	HouseStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
