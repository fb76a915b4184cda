package domain

import (
	"context"
	"time"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, firstName, lastName, passwordHash, salt string, createdAt time.Time) *User {
	return &User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		Salt:         salt,
		Role:         RoleUser,
		CreatedAt:    createdAt,
	}
}

// UserSummary is the subset of user fields exposed alongside an event's
// creator. Never carries credentials.
// swagger:model UserSummary
type UserSummary struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed identity tokens bound to a user id.
type TokenIssuer interface {
	Issue(userID string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the bound user ID.
// Expired tokens return ErrTokenExpired; any other failure returns
// ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// AuthService defines registration and login. Both return a signed token
// for the (new) user.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
}
