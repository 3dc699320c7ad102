package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"conveydrive/internal/domain"
	"conveydrive/internal/repository"
)

var ErrTodoNotFound = errors.New("todo not found")

type TodoService struct {
	todoRepo   *repository.TodoRepository
	matterRepo *repository.MatterRepository
}

func NewTodoService(todoRepo *repository.TodoRepository, matterRepo *repository.MatterRepository) *TodoService {
	return &TodoService{
		todoRepo:   todoRepo,
		matterRepo: matterRepo,
	}
}

type TodoInput struct {
	MatterID uuid.UUID  `json:"matter_id"`
	Title    string     `json:"title"`
	DueDate  *time.Time `json:"due_date"`
}

func (s *TodoService) Create(ctx context.Context, tenantID, userID string, input TodoInput) (*domain.Todo, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("todo title is required")
	}

	// Задача всегда привязана к существующему делу арендатора
	_, err := s.matterRepo.GetByUUID(ctx, tenantID, input.MatterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get matter: %w", err)
	}

	todo := &domain.Todo{
		UUID:      uuid.New(),
		TenantID:  tenantID,
		MatterID:  input.MatterID,
		Title:     input.Title,
		DueDate:   input.DueDate,
		CreatedBy: userID,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) ListByMatter(ctx context.Context, tenantID string, matterID uuid.UUID) ([]domain.Todo, error) {
	return s.todoRepo.ListByMatter(ctx, tenantID, matterID)
}

func (s *TodoService) SetCompleted(ctx context.Context, tenantID string, id uuid.UUID, completed bool) (*domain.Todo, error) {
	if err := s.todoRepo.SetCompleted(ctx, tenantID, id, completed); err != nil {
		return nil, err
	}

	todo, err := s.todoRepo.GetByUUID(ctx, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return s.todoRepo.Delete(ctx, tenantID, id)
}

// MarkOverdue помечает просроченные задачи; вызывается фоновым тикером.
func (s *TodoService) MarkOverdue(ctx context.Context) (int64, error) {
	return s.todoRepo.MarkOverdue(ctx)
}
