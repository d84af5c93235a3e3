package models

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login and
	// settlement notifications.
	Email string

	// DisplayName is the name shown to other house members.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password. Never
	// exposed through the API.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
