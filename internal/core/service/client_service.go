package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// ClientService implements ports.ClientService.
type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

// CreateClient validates the tagged union and persists the client.
// Payloads carrying the other variant's field group are rejected, not
// coerced.
func (s *ClientService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	now := time.Now().UTC()
	c := &domain.Client{
		ClientType: domain.ClientType(input.ClientType),
		FullName:   input.FullName,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		Individual: input.Individual,
		Corporate:  input.Corporate,
		CreatedBy:  input.CreatedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("client_type", input.ClientType).Msg("failed to create client")
		return nil, err
	}
	s.logger.Info().Str("client_id", c.ID).Str("client_type", input.ClientType).Msg("client created")
	return c, nil
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) ListClients(ctx context.Context, filter ports.ListClientsFilter) (*ports.ListClientsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	return &ports.ListClientsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, input ports.UpdateClientInput) (*domain.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		c.FullName = *input.FullName
	}
	if input.Email != nil {
		c.Email = *input.Email
	}
	if input.Phone != nil {
		c.Phone = *input.Phone
	}
	if input.Address != nil {
		c.Address = *input.Address
	}
	if input.Individual != nil {
		c.Individual = input.Individual
	}
	if input.Corporate != nil {
		c.Corporate = input.Corporate
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
