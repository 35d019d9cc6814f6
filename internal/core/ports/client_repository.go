package ports

import (
	"context"

	"github.com/simanis/notary-system/internal/core/domain"
)

// ListClientsFilter carries all query parameters for listing clients.
type ListClientsFilter struct {
	ClientType string // optional: "individual" or "corporate"
	Search     string // optional: case-insensitive partial match on full_name or company name
	SortBy     string // optional comparable field; empty = created_at
	SortAsc    bool
	Page       int
	Limit      int
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, int64, error)
	Update(ctx context.Context, c *domain.Client) error
}
