package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"conveydrive/internal/domain"
	"conveydrive/internal/repository"
)

// AuditService готовит историю изменений дела для отображения.
type AuditService struct {
	auditRepo *repository.AuditRepository
}

func NewAuditService(auditRepo *repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// HistoryChange — одна строка изменения с подписью и форматированными
// значениями.
type HistoryChange struct {
	Field string `json:"field"`
	Label string `json:"label"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// HistoryEntry — событие журнала в отображаемом виде. При нечитаемой
// колонке details выставляется ChangesUnavailable вместо ошибки.
type HistoryEntry struct {
	ID                 int64              `json:"id"`
	Action             domain.AuditAction `json:"action"`
	UserID             string             `json:"user_id"`
	Note               string             `json:"note,omitempty"`
	Changes            []HistoryChange    `json:"changes,omitempty"`
	ChangesUnavailable bool               `json:"changes_unavailable,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// History возвращает события журнала дела, новые первыми.
func (s *AuditService) History(ctx context.Context, tenantID string, matterID uuid.UUID) ([]HistoryEntry, error) {
	logs, err := s.auditRepo.ListByMatter(ctx, tenantID, matterID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(logs))
	for _, entry := range logs {
		rendered := HistoryEntry{
			ID:        entry.ID,
			Action:    entry.Action,
			UserID:    entry.UserID,
			CreatedAt: entry.CreatedAt,
		}

		details, err := domain.ParseAuditDetails(entry.Details)
		if err != nil {
			// Битый details не должен ронять отображение истории
			log.Printf("Unreadable audit details for entry %d: %v", entry.ID, err)
			rendered.ChangesUnavailable = true
			entries = append(entries, rendered)
			continue
		}

		rendered.Note = details.Note
		rendered.Changes = renderChanges(details.Changes)
		entries = append(entries, rendered)
	}

	return entries, nil
}

// renderChanges переводит ChangeSet в строки отображения в фиксированном
// порядке полей; неизвестные поля идут после известных по алфавиту.
func renderChanges(changes domain.ChangeSet) []HistoryChange {
	if len(changes) == 0 {
		return nil
	}

	order := make(map[string]int, len(domain.TrackableFields))
	for i, field := range domain.TrackableFields {
		order[field] = i
	}

	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		oi, iKnown := order[fields[i]]
		oj, jKnown := order[fields[j]]
		if iKnown && jKnown {
			return oi < oj
		}
		if iKnown != jKnown {
			return iKnown
		}
		return fields[i] < fields[j]
	})

	rendered := make([]HistoryChange, 0, len(fields))
	for _, field := range fields {
		change := changes[field]
		rendered = append(rendered, HistoryChange{
			Field: field,
			Label: domain.FieldLabel(field),
			From:  domain.FormatFieldValue(field, change.From),
			To:    domain.FormatFieldValue(field, change.To),
		})
	}

	return rendered
}
