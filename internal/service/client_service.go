package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"conveydrive/internal/domain"
	"conveydrive/internal/repository"
)

var ErrClientNotFound = errors.New("client not found")

type ClientService struct {
	clientRepo *repository.ClientRepository
}

func NewClientService(clientRepo *repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

type ClientInput struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (s *ClientService) Create(ctx context.Context, tenantID string, input ClientInput) (*domain.Client, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	client := &domain.Client{
		UUID:     uuid.New(),
		TenantID: tenantID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ClientService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByUUID(ctx, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, tenantID string) ([]domain.Client, error) {
	return s.clientRepo.List(ctx, tenantID)
}

func (s *ClientService) Update(ctx context.Context, tenantID string, id uuid.UUID, input ClientInput) (*domain.Client, error) {
	client, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	client.Name = input.Name
	client.Email = input.Email
	client.Phone = input.Phone
	client.Address = input.Address

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return s.clientRepo.Delete(ctx, tenantID, id)
}
