package domain

import (
	"time"

	"github.com/google/uuid"
)

// Известные категории документов. Набор открытый: данные могут содержать
// категории, которых здесь нет, они проходят без изменений.
type DocumentCategory string

const (
	CategoryGeneral        DocumentCategory = "GENERAL"
	CategoryContract       DocumentCategory = "CONTRACT"
	CategoryCorrespondence DocumentCategory = "CORRESPONDENCE"
	CategoryIdentification DocumentCategory = "IDENTIFICATION"
	CategoryFinancial      DocumentCategory = "FINANCIAL"
	CategoryLegal          DocumentCategory = "LEGAL"

	// CategoryAll — псевдокатегория для агрегированного счётчика групп
	CategoryAll DocumentCategory = "ALL"
)

// NormalizeCategory подставляет категорию по умолчанию для пустого значения.
// Вызывается на границе приёма документов, а не только внутри группировки.
func NormalizeCategory(category string) DocumentCategory {
	if category == "" {
		return CategoryGeneral
	}
	return DocumentCategory(category)
}

type Document struct {
	UUID        uuid.UUID        `json:"uuid" db:"uuid"`
	MatterID    uuid.UUID        `json:"matter_id" db:"matter_id"`
	TenantID    string           `json:"tenant_id" db:"tenant_id"`
	OriginalID  *uuid.UUID       `json:"original_id,omitempty" db:"original_id"`
	Version     int              `json:"version" db:"version"`
	Category    DocumentCategory `json:"category" db:"category"`
	Name        string           `json:"name" db:"name"`
	FileSize    int64            `json:"file_size" db:"file_size"`
	FileType    string           `json:"file_type" db:"file_type"`
	Description *string          `json:"description,omitempty" db:"description"`
	S3Key       string           `json:"-" db:"s3_key"`
	UploadedBy  string           `json:"uploaded_by" db:"uploaded_by"`
	UploadedAt  time.Time        `json:"uploaded_at" db:"uploaded_at"`
}

// GroupKey возвращает идентификатор логического документа: original_id,
// если документ является версией, иначе собственный uuid.
func (d Document) GroupKey() string {
	if d.OriginalID != nil {
		return d.OriginalID.String()
	}
	return d.UUID.String()
}

type DocumentUpload struct {
	MatterID    uuid.UUID
	TenantID    string
	OriginalID  *uuid.UUID
	Category    DocumentCategory
	Name        string
	FileType    string
	Description *string
	UploadedBy  string
	Data        []byte
}
