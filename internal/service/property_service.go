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

var ErrPropertyNotFound = errors.New("property not found")

type PropertyService struct {
	propertyRepo *repository.PropertyRepository
}

func NewPropertyService(propertyRepo *repository.PropertyRepository) *PropertyService {
	return &PropertyService{propertyRepo: propertyRepo}
}

type PropertyInput struct {
	Address        string  `json:"address"`
	Suburb         *string `json:"suburb"`
	State          *string `json:"state"`
	Postcode       *string `json:"postcode"`
	TitleReference *string `json:"title_reference"`
}

func (s *PropertyService) Create(ctx context.Context, tenantID string, input PropertyInput) (*domain.Property, error) {
	if input.Address == "" {
		return nil, fmt.Errorf("property address is required")
	}

	property := &domain.Property{
		UUID:           uuid.New(),
		TenantID:       tenantID,
		Address:        input.Address,
		Suburb:         input.Suburb,
		State:          input.State,
		Postcode:       input.Postcode,
		TitleReference: input.TitleReference,
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	return property, nil
}

func (s *PropertyService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByUUID(ctx, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) List(ctx context.Context, tenantID string) ([]domain.Property, error) {
	return s.propertyRepo.List(ctx, tenantID)
}

func (s *PropertyService) Update(ctx context.Context, tenantID string, id uuid.UUID, input PropertyInput) (*domain.Property, error) {
	property, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	property.Address = input.Address
	property.Suburb = input.Suburb
	property.State = input.State
	property.Postcode = input.Postcode
	property.TitleReference = input.TitleReference

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}

	return property, nil
}

func (s *PropertyService) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return s.propertyRepo.Delete(ctx, tenantID, id)
}
