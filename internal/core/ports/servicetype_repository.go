package ports

import (
	"context"

	"github.com/simanis/notary-system/internal/core/domain"
)

// ServiceTypeRepository reads the administered service type templates.
type ServiceTypeRepository interface {
	FindByID(ctx context.Context, id string) (*domain.ServiceType, error)
	// List returns active service types, optionally filtered by category.
	List(ctx context.Context, category string) ([]*domain.ServiceType, error)
}

// CategoryRepository reads the administered service categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*domain.ServiceCategory, error)
	List(ctx context.Context) ([]*domain.ServiceCategory, error)
}
