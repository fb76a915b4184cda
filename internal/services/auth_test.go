package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/domain"
)

const testTimeout = 2 * time.Second

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes email and issues token", func(t *testing.T) {
		users := &mockUserRepository{}
		svc := NewAuthService(users, &mockHasher{}, &mockIssuer{}, time.Hour, testTimeout)

		token, err := svc.Register(ctx, "  Ana@Example.COM ", "password123", " Ana ", " Lima ")
		require.NoError(t, err)
		assert.Equal(t, "token-for-user-1", token)

		require.Len(t, users.created, 1)
		created := users.created[0]
		assert.Equal(t, "ana@example.com", created.Email)
		assert.Equal(t, "Ana", created.FirstName)
		assert.Equal(t, "Lima", created.LastName)
		assert.Equal(t, "hashed:salt:password123", created.PasswordHash)
	})

	t.Run("duplicate email passes through", func(t *testing.T) {
		users := &mockUserRepository{createErr: domain.ErrDuplicateEmail}
		svc := NewAuthService(users, &mockHasher{}, &mockIssuer{}, time.Hour, testTimeout)

		_, err := svc.Register(ctx, "ana@example.com", "password123", "Ana", "Lima")
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("hasher failure surfaces", func(t *testing.T) {
		users := &mockUserRepository{}
		svc := NewAuthService(users, &mockHasher{saltErr: errors.New("no entropy")}, &mockIssuer{}, time.Hour, testTimeout)

		_, err := svc.Register(ctx, "ana@example.com", "password123", "Ana", "Lima")
		require.Error(t, err)
		assert.Empty(t, users.created)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	existing := &domain.User{
		ID:           "user-9",
		Email:        "ana@example.com",
		PasswordHash: "hashed:salt:password123",
		Salt:         "salt",
	}
	users := &mockUserRepository{usersByEmail: map[string]*domain.User{"ana@example.com": existing}}

	t.Run("success", func(t *testing.T) {
		svc := NewAuthService(users, &mockHasher{}, &mockIssuer{}, time.Hour, testTimeout)
		token, err := svc.Login(ctx, "Ana@Example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "token-for-user-9", token)
	})

	t.Run("unknown email and wrong password are the same error", func(t *testing.T) {
		svc := NewAuthService(users, &mockHasher{}, &mockIssuer{}, time.Hour, testTimeout)

		_, unknownErr := svc.Login(ctx, "nobody@example.com", "password123")
		_, wrongErr := svc.Login(ctx, "ana@example.com", "not-the-password")

		assert.ErrorIs(t, unknownErr, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, domain.ErrInvalidCredentials)
	})

	t.Run("issuer failure surfaces", func(t *testing.T) {
		svc := NewAuthService(users, &mockHasher{}, &mockIssuer{err: errors.New("keystore down")}, time.Hour, testTimeout)
		_, err := svc.Login(ctx, "ana@example.com", "password123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
