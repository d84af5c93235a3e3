package service

import (
	"context"
	"log/slog"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/storage"
)

// HouseService manages houses and their rosters. The roster it serves
// is the "house-roster provider" the balance engine depends on.
type HouseService struct {
	store storage.Store
}

// NewHouseService creates a HouseService over the given store.
func NewHouseService(store storage.Store) *HouseService {
	return &HouseService{store: store}
}

// Create makes a new house and puts the creator on its roster.
func (s *HouseService) Create(ctx context.Context, name, creatorID string) (*models.House, error) {
	if name == "" {
		return nil, validationErrorf("house name is required")
	}

	house := &models.House{Name: name}
	if err := s.store.CreateHouse(ctx, house); err != nil {
		slog.Error("CreateHouse failed", "error", err)
		return nil, err
	}
	if err := s.store.AddMember(ctx, house.ID, creatorID); err != nil {
		slog.Error("CreateHouse: failed to add creator", "house_id", house.ID, "error", err)
		return nil, err
	}
	return house, nil
}

// AddMember puts a registered user on the house roster. Re-adding an
// existing member is a no-op.
func (s *HouseService) AddMember(ctx context.Context, houseID, userID string) error {
	if _, err := s.store.GetHouse(ctx, houseID); err != nil {
		return err
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return &storage.NotFoundError{Kind: "user", ID: userID}
	}
	return s.store.AddMember(ctx, houseID, userID)
}

// Roster returns the house members with display metadata.
func (s *HouseService) Roster(ctx context.Context, houseID string) ([]models.Member, error) {
	if _, err := s.store.GetHouse(ctx, houseID); err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, houseID)
}

// IsMember reports whether the user belongs to the house.
func (s *HouseService) IsMember(ctx context.Context, houseID, userID string) (bool, error) {
	return s.store.IsMember(ctx, houseID, userID)
}
