package ports

import (
	"context"

	"github.com/simanis/notary-system/internal/core/domain"
)

// CreateClientInput is the tagged-union payload for creating a client.
// Exactly one of Individual/Corporate must be set, matching ClientType.
type CreateClientInput struct {
	ClientType string
	FullName   string
	Email      string
	Phone      string
	Address    string
	Individual *domain.IndividualDetails
	Corporate  *domain.CorporateDetails
	CreatedBy  string
}

// UpdateClientInput mirrors CreateClientInput for updates; the client
// type itself is immutable after creation.
type UpdateClientInput struct {
	FullName   *string
	Email      *string
	Phone      *string
	Address    *string
	Individual *domain.IndividualDetails
	Corporate  *domain.CorporateDetails
}

// ListClientsResult is returned by ListClients.
type ListClientsResult struct {
	Items      []*domain.Client
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context, filter ListClientsFilter) (*ListClientsResult, error)
	UpdateClient(ctx context.Context, id string, input UpdateClientInput) (*domain.Client, error)
}
