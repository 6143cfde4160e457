package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is a user's access level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// ExistsByUsername reports whether a user other than excludeID has the username.
	ExistsByUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
	// ExistsByEmail reports whether a user other than excludeID has the email.
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, p Pagination) ([]User, int, error)
}

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	ImageURL     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SignUpParams carries the registration form.
type SignUpParams struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	ImageURL             string
}

// Session is the result of a successful signup or login.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
