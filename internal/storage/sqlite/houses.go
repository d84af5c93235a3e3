package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/storage"
)

// CreateHouse persists a new house.
func (s *SQLiteStore) CreateHouse(ctx context.Context, house *models.House) error {
	if house.ID == "" {
		house.ID = uuid.New().String()
	}
	if house.CreatedAt == 0 {
		house.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO houses (id, name, created_at) VALUES (?, ?, ?)",
		house.ID, house.Name, house.CreatedAt,
	)
	if err != nil {
		return &storage.StorageError{Op: "create house", Err: err}
	}
	return nil
}

// GetHouse retrieves a house by ID.
func (s *SQLiteStore) GetHouse(ctx context.Context, houseID string) (*models.House, error) {
	house := &models.House{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM houses WHERE id = ?",
		houseID,
	).Scan(&house.ID, &house.Name, &house.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &storage.NotFoundError{Kind: "house", ID: houseID}
	}
	if err != nil {
		return nil, &storage.StorageError{Op: "get house", Err: err}
	}
	return house, nil
}

// AddMember adds a user to a house roster. Re-adding is a no-op.
func (s *SQLiteStore) AddMember(ctx context.Context, houseID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO house_members (house_id, user_id, joined_at) VALUES (?, ?, ?)",
		houseID, userID, time.Now().Unix(),
	)
	if err != nil {
		return &storage.StorageError{Op: "add member", Err: err}
	}
	return nil
}

// ListMembers returns the house roster ordered by display name.
func (s *SQLiteStore) ListMembers(ctx context.Context, houseID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.user_id, u.display_name, m.joined_at
		 FROM house_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.house_id = ?
		 ORDER BY u.display_name`,
		houseID,
	)
	if err != nil {
		return nil, &storage.StorageError{Op: "list members", Err: err}
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.UserID, &m.DisplayName, &m.JoinedAt); err != nil {
			return nil, &storage.StorageError{Op: "scan member", Err: err}
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &storage.StorageError{Op: "iterate members", Err: err}
	}

	return members, nil
}

// IsMember reports whether the user is on the house roster.
func (s *SQLiteStore) IsMember(ctx context.Context, houseID, userID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM house_members WHERE house_id = ? AND user_id = ?",
		houseID, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, &storage.StorageError{Op: "check membership", Err: err}
	}
	return true, nil
}
