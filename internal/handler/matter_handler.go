package handler

import (
	"encoding/json"
	"net/http"

	"conveydrive/internal/auth"
	"conveydrive/internal/domain"
	"conveydrive/internal/service"
)

type MatterHandler struct {
	matterService *service.MatterService
	auditService  *service.AuditService
}

func NewMatterHandler(matterService *service.MatterService, auditService *service.AuditService) *MatterHandler {
	return &MatterHandler{
		matterService: matterService,
		auditService:  auditService,
	}
}

// MatterUpdateResponse — обновлённое дело вместе с набором изменившихся
// полей, попавших в журнал.
type MatterUpdateResponse struct {
	Matter  *domain.Matter   `json:"matter"`
	Changes domain.ChangeSet `json:"changes"`
}

// CreateMatter обрабатывает создание дела
func (h *MatterHandler) CreateMatter(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input service.MatterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	matter, err := h.matterService.CreateMatter(r.Context(), tenantID, userID, input)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, matter)
}

// ListMatters возвращает дела арендатора; ?archived=true включает архив
func (h *MatterHandler) ListMatters(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	includeArchived := r.URL.Query().Get("archived") == "true"

	matters, err := h.matterService.ListMatters(r.Context(), tenantID, includeArchived)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, matters)
}

func (h *MatterHandler) GetMatter(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid matter ID", http.StatusBadRequest)
		return
	}

	matter, err := h.matterService.GetMatter(r.Context(), tenantID, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, matter)
}

// UpdateMatter обновляет дело и пишет изменившиеся поля в журнал
func (h *MatterHandler) UpdateMatter(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid matter ID", http.StatusBadRequest)
		return
	}

	var input service.MatterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	matter, changes, err := h.matterService.UpdateMatter(r.Context(), tenantID, userID, id, input)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MatterUpdateResponse{Matter: matter, Changes: changes})
}

func (h *MatterHandler) ArchiveMatter(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *MatterHandler) UnarchiveMatter(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *MatterHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	userID, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid matter ID", http.StatusBadRequest)
		return
	}

	if err := h.matterService.SetArchived(r.Context(), tenantID, userID, id, archived); err != nil {
		serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MatterHandler) DeleteMatter(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid matter ID", http.StatusBadRequest)
		return
	}

	if err := h.matterService.DeleteMatter(r.Context(), tenantID, userID, id); err != nil {
		serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetHistory возвращает историю изменений дела
func (h *MatterHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid matter ID", http.StatusBadRequest)
		return
	}

	history, err := h.auditService.History(r.Context(), tenantID, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}
