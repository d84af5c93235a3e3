package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housetab/housetab/internal/models"
)

// memUserStore is a map-backed storage.UserStore for tests.
type memUserStore struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (m *memUserStore) CreateUser(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().Unix()
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func (m *memUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return m.byID[id], nil
}

func TestRegisterAndLogin(t *testing.T) {
	a := NewPasswordAuthenticator(newMemUserStore())
	ctx := context.Background()

	user, err := a.Register(ctx, "alice@example.com", "Alice", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	got, err := a.Login(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	a := NewPasswordAuthenticator(newMemUserStore())

	_, err := a.Register(context.Background(), "alice@example.com", "Alice", "short")
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	a := NewPasswordAuthenticator(newMemUserStore())
	ctx := context.Background()

	_, err := a.Register(ctx, "alice@example.com", "Alice", "correct horse")
	require.NoError(t, err)

	_, err = a.Register(ctx, "alice@example.com", "Also Alice", "battery staple")
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := NewPasswordAuthenticator(newMemUserStore())
	ctx := context.Background()

	_, err := a.Register(ctx, "alice@example.com", "Alice", "correct horse")
	require.NoError(t, err)

	_, err = a.Login(ctx, "alice@example.com", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Login(ctx, "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "u1", Email: "alice@example.com"}

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.Generate(&models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, err := issuer.Generate(&models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
