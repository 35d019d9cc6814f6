package ports

import (
	"context"

	"github.com/simanis/notary-system/internal/core/domain"
)

// RegisterInput carries the fields for creating a user account.
type RegisterInput struct {
	Username   string
	Password   string
	Email      string
	FullName   string
	EmployeeID string
	Phone      string
	Role       string // optional; empty grants minimal access
}

// AuthService defines authentication and user administration use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// ResolveRole returns the role for a username, or the empty role when
	// the user has none or the lookup fails (fail closed, not an error).
	ResolveRole(ctx context.Context, username string) domain.Role
	ListUsers(ctx context.Context) ([]*domain.User, error)
	AssignRole(ctx context.Context, userID string, role domain.Role) error
}
