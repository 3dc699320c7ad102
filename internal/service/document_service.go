package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"conveydrive/internal/domain"
	"conveydrive/internal/repository"
	"conveydrive/internal/service/s3"
)

const (
	maxDocumentSize = 50 * 1024 * 1024 // 50MB максимальный размер документа
)

var (
	ErrDocumentTooLarge = errors.New("document size exceeds maximum allowed size")
	ErrInvalidDocument  = errors.New("invalid document")
)

// DocumentService представляет сервис для работы с документами дела
type DocumentService struct {
	documentRepo *repository.DocumentRepository
	matterRepo   *repository.MatterRepository
	s3Client     s3.Storage
}

func NewDocumentService(
	documentRepo *repository.DocumentRepository,
	matterRepo *repository.MatterRepository,
	s3Client s3.Storage,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		matterRepo:   matterRepo,
		s3Client:     s3Client,
	}
}

// Upload сохраняет документ: новый оригинал либо очередную версию
// существующего. Номер версии выдаётся внутри транзакции, поэтому
// параллельные загрузки версий одного документа получают разные номера.
func (s *DocumentService) Upload(ctx context.Context, upload domain.DocumentUpload) (*domain.Document, error) {
	if upload.Name == "" || len(upload.Data) == 0 {
		return nil, fmt.Errorf("%w: name and content are required", ErrInvalidDocument)
	}
	if int64(len(upload.Data)) > maxDocumentSize {
		return nil, fmt.Errorf("%w: max size is %d bytes", ErrDocumentTooLarge, maxDocumentSize)
	}

	// Проверяем, что дело существует и принадлежит арендатору
	_, err := s.matterRepo.GetByUUID(ctx, upload.TenantID, upload.MatterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get matter: %w", err)
	}

	// Категория по умолчанию подставляется на границе приёма
	category := domain.NormalizeCategory(string(upload.Category))

	tx, err := s.documentRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	version := 1
	var originalID *uuid.UUID

	if upload.OriginalID != nil {
		original, err := s.documentRepo.GetByUUID(ctx, upload.TenantID, *upload.OriginalID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get original document: %w", err)
		}

		// Если клиент указал id промежуточной версии, разворачиваем до корня
		root := original.UUID
		if original.OriginalID != nil {
			root = *original.OriginalID
		}

		// Версии цепочки разделяют категорию оригинала
		category = original.Category
		originalID = &root

		version, err = s.documentRepo.NextVersion(ctx, tx, root)
		if err != nil {
			return nil, err
		}
	}

	doc := &domain.Document{
		UUID:        uuid.New(),
		MatterID:    upload.MatterID,
		TenantID:    upload.TenantID,
		OriginalID:  originalID,
		Version:     version,
		Category:    category,
		Name:        upload.Name,
		FileSize:    int64(len(upload.Data)),
		FileType:    upload.FileType,
		Description: upload.Description,
		UploadedBy:  upload.UploadedBy,
	}
	doc.S3Key = fmt.Sprintf("tenants/%s/matters/%s/documents/%s/v%d",
		upload.TenantID, upload.MatterID, doc.UUID, version)

	if err := s.s3Client.UploadBytes(doc.S3Key, upload.Data); err != nil {
		return nil, fmt.Errorf("failed to upload document content: %w", err)
	}

	if err := s.documentRepo.Create(ctx, tx, doc); err != nil {
		s.cleanupObject(doc.S3Key)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.cleanupObject(doc.S3Key)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return doc, nil
}

// ListGrouped возвращает документы дела, сгруппированные по категориям и
// цепочкам версий, плюс счётчики групп для табов.
func (s *DocumentService) ListGrouped(ctx context.Context, tenantID string, matterID uuid.UUID) (domain.GroupedDocuments, map[domain.DocumentCategory]int, error) {
	documents, err := s.documentRepo.ListByMatter(ctx, tenantID, matterID)
	if err != nil {
		return nil, nil, err
	}

	grouped := domain.GroupDocuments(documents)
	return grouped, grouped.GroupCounts(), nil
}

// Versions возвращает цепочку версий документа, новые первыми.
func (s *DocumentService) Versions(ctx context.Context, tenantID string, id uuid.UUID) ([]domain.Document, error) {
	doc, err := s.getDocument(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	root := doc.UUID
	if doc.OriginalID != nil {
		root = *doc.OriginalID
	}

	return s.documentRepo.ListChain(ctx, tenantID, root)
}

// Download отдаёт метаданные документа и его содержимое из S3.
func (s *DocumentService) Download(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Document, s3.S3Object, error) {
	doc, err := s.getDocument(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}

	object, err := s.s3Client.GetObject(ctx, doc.S3Key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get document content: %w", err)
	}

	return doc, object, nil
}

// Delete удаляет документ вместе со всей цепочкой версий: осиротевшие
// версии без оригинала в выборке группируются связно, но для удаления
// цепочка сносится целиком.
func (s *DocumentService) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	doc, err := s.getDocument(ctx, tenantID, id)
	if err != nil {
		return err
	}

	root := doc.UUID
	if doc.OriginalID != nil {
		root = *doc.OriginalID
	}

	chain, err := s.documentRepo.ListChain(ctx, tenantID, root)
	if err != nil {
		return err
	}

	tx, err := s.documentRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.documentRepo.DeleteChain(ctx, tx, tenantID, root); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Содержимое в S3 удаляется после коммита, ошибки не фатальны
	for _, member := range chain {
		s.cleanupObject(member.S3Key)
	}

	return nil
}

func (s *DocumentService) getDocument(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByUUID(ctx, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (s *DocumentService) cleanupObject(key string) {
	if err := s.s3Client.DeleteObject(key); err != nil {
		log.Printf("Failed to delete S3 object %s: %v", key, err)
	}
}
