package ports

import (
	"context"

	"github.com/simanis/notary-system/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateRole replaces the user's role; an empty role revokes access
	// down to the minimal set.
	UpdateRole(ctx context.Context, id string, role domain.Role) error
}
