package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"conveydrive/internal/domain"
	"conveydrive/internal/repository"
)

// Определение пользовательских ошибок
var (
	ErrMatterNotFound   = errors.New("matter not found")
	ErrInvalidMatter    = errors.New("invalid matter")
	ErrDocumentNotFound = errors.New("document not found")
)

// MatterService представляет сервис для работы с делами
type MatterService struct {
	matterRepo *repository.MatterRepository
	auditRepo  *repository.AuditRepository
}

func NewMatterService(
	matterRepo *repository.MatterRepository,
	auditRepo *repository.AuditRepository,
) *MatterService {
	return &MatterService{
		matterRepo: matterRepo,
		auditRepo:  auditRepo,
	}
}

// MatterInput — поля дела, задаваемые при создании и обновлении.
type MatterInput struct {
	Reference      string              `json:"reference"`
	Type           domain.MatterType   `json:"type"`
	Date           *time.Time          `json:"date"`
	SettlementDate *time.Time          `json:"settlement_date"`
	Amount         *float64            `json:"amount"`
	Status         domain.MatterStatus `json:"status"`
	PropertyID     *uuid.UUID          `json:"property_id"`
	BuyerID        *uuid.UUID          `json:"buyer_id"`
	SellerID       *uuid.UUID          `json:"seller_id"`
}

func (input *MatterInput) validate() error {
	if input.Type != domain.MatterPurchase && input.Type != domain.MatterSale {
		return fmt.Errorf("%w: unknown matter type %q", ErrInvalidMatter, input.Type)
	}
	return nil
}

// CreateMatter создаёт дело и запись CREATED в журнале.
func (s *MatterService) CreateMatter(ctx context.Context, tenantID, userID string, input MatterInput) (*domain.Matter, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if input.Reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidMatter)
	}

	status := input.Status
	if status == "" {
		status = domain.MatterStatusPending
	}

	matter := &domain.Matter{
		UUID:           uuid.New(),
		TenantID:       tenantID,
		Reference:      input.Reference,
		Type:           input.Type,
		Date:           input.Date,
		SettlementDate: input.SettlementDate,
		Amount:         input.Amount,
		Status:         status,
		PropertyID:     input.PropertyID,
		BuyerID:        input.BuyerID,
		SellerID:       input.SellerID,
		CreatedBy:      userID,
	}

	if err := s.matterRepo.Create(ctx, matter); err != nil {
		return nil, err
	}

	details := domain.AuditDetails{Note: fmt.Sprintf("Matter %s created", matter.Reference)}
	if err := s.recordAudit(ctx, nil, matter, userID, domain.ActionCreated, details); err != nil {
		return nil, err
	}

	return matter, nil
}

func (s *MatterService) GetMatter(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Matter, error) {
	matter, err := s.matterRepo.GetByUUID(ctx, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get matter: %w", err)
	}
	return matter, nil
}

func (s *MatterService) ListMatters(ctx context.Context, tenantID string, includeArchived bool) ([]domain.Matter, error) {
	return s.matterRepo.List(ctx, tenantID, includeArchived)
}

// UpdateMatter обновляет дело. Снимки "до" и "после" сравниваются по
// отслеживаемым полям; непустой набор изменений пишется в журнал той же
// транзакцией, что и само обновление. Пустой набор означает, что менять в
// журнале нечего, запись не создаётся.
func (s *MatterService) UpdateMatter(ctx context.Context, tenantID, userID string, id uuid.UUID, input MatterInput) (*domain.Matter, domain.ChangeSet, error) {
	if err := input.validate(); err != nil {
		return nil, nil, err
	}

	tx, err := s.matterRepo.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.matterRepo.GetByUUIDTx(ctx, tx, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrMatterNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get matter: %w", err)
	}

	previous := existing.Snapshot()

	updated := *existing
	updated.Type = input.Type
	updated.Date = input.Date
	updated.SettlementDate = input.SettlementDate
	updated.Amount = input.Amount
	updated.Status = input.Status
	updated.PropertyID = input.PropertyID
	updated.BuyerID = input.BuyerID
	updated.SellerID = input.SellerID

	changes := domain.ComputeChanges(previous, updated.Snapshot())

	if err := s.matterRepo.Update(ctx, tx, &updated); err != nil {
		return nil, nil, err
	}

	if len(changes) > 0 {
		details := domain.AuditDetails{Changes: changes}
		if err := s.recordAudit(ctx, tx, &updated, userID, domain.ActionUpdated, details); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &updated, changes, nil
}

// SetArchived архивирует или разархивирует дело с записью в журнал.
func (s *MatterService) SetArchived(ctx context.Context, tenantID, userID string, id uuid.UUID, archived bool) error {
	matter, err := s.GetMatter(ctx, tenantID, id)
	if err != nil {
		return err
	}

	tx, err := s.matterRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matterRepo.SetArchived(ctx, tx, tenantID, id, archived); err != nil {
		return err
	}

	action := domain.ActionArchived
	note := fmt.Sprintf("Matter %s archived", matter.Reference)
	if !archived {
		action = domain.ActionUnarchived
		note = fmt.Sprintf("Matter %s unarchived", matter.Reference)
	}

	if err := s.recordAudit(ctx, tx, matter, userID, action, domain.AuditDetails{Note: note}); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteMatter удаляет дело. Запись DELETED остаётся в журнале: на
// audit_logs нет внешнего ключа, история переживает само дело.
func (s *MatterService) DeleteMatter(ctx context.Context, tenantID, userID string, id uuid.UUID) error {
	matter, err := s.GetMatter(ctx, tenantID, id)
	if err != nil {
		return err
	}

	tx, err := s.matterRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matterRepo.Delete(ctx, tx, tenantID, id); err != nil {
		return err
	}

	details := domain.AuditDetails{Note: fmt.Sprintf("Matter %s deleted", matter.Reference)}
	if err := s.recordAudit(ctx, tx, matter, userID, domain.ActionDeleted, details); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *MatterService) recordAudit(
	ctx context.Context,
	tx *sqlx.Tx,
	matter *domain.Matter,
	userID string,
	action domain.AuditAction,
	details domain.AuditDetails,
) error {
	encoded, err := details.Encode()
	if err != nil {
		return err
	}

	entry := &domain.AuditLog{
		MatterID: matter.UUID,
		TenantID: matter.TenantID,
		UserID:   userID,
		Action:   action,
		Details:  encoded,
	}

	if err := s.auditRepo.Create(ctx, tx, entry); err != nil {
		log.Printf("Failed to record audit entry for matter %s: %v", matter.UUID, err)
		return err
	}

	return nil
}
