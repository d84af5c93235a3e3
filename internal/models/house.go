package models

// House is the tenant boundary: every expense, split and balance lives
// inside exactly one house.
type House struct {
	// ID is the unique identifier for the house (UUID format).
	ID string

	// Name is the display name of the house (e.g. "Elm St Apartment").
	Name string

	// CreatedAt is the Unix timestamp when the house was created.
	CreatedAt int64
}

// Member is one roster entry of a house: a user plus their display
// metadata. The balance engine consumes the roster to emit a complete
// entry set even for members with no live debt.
type Member struct {
	// UserID identifies the member.
	UserID string

	// DisplayName is the member's name as shown in balance views.
	DisplayName string

	// JoinedAt is the Unix timestamp when the user joined the house.
	JoinedAt int64
}
