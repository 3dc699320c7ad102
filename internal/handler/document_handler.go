package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"conveydrive/internal/auth"
	"conveydrive/internal/domain"
	"conveydrive/internal/service"
)

type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// GroupedDocumentsResponse — сгруппированные документы дела со счётчиками
// групп для табов категорий.
type GroupedDocumentsResponse struct {
	Documents domain.GroupedDocuments         `json:"documents"`
	Counts    map[domain.DocumentCategory]int `json:"counts"`
}

// UploadDocument обрабатывает загрузку документа: multipart-форма с полем
// file плюс category, description и original_id для новой версии.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	matterID, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid matter ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(60 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	upload := domain.DocumentUpload{
		MatterID:   matterID,
		TenantID:   tenantID,
		Category:   domain.DocumentCategory(r.FormValue("category")),
		Name:       header.Filename,
		FileType:   header.Header.Get("Content-Type"),
		UploadedBy: userID,
		Data:       data,
	}

	if description := r.FormValue("description"); description != "" {
		upload.Description = &description
	}

	if originalIDStr := r.FormValue("original_id"); originalIDStr != "" {
		originalID, err := uuid.Parse(originalIDStr)
		if err != nil {
			http.Error(w, "Invalid original document ID", http.StatusBadRequest)
			return
		}
		upload.OriginalID = &originalID
	}

	doc, err := h.documentService.Upload(r.Context(), upload)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, doc)
}

// ListDocuments возвращает документы дела, сгруппированные по категориям
// и цепочкам версий
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	matterID, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid matter ID", http.StatusBadRequest)
		return
	}

	grouped, counts, err := h.documentService.ListGrouped(r.Context(), tenantID, matterID)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, GroupedDocumentsResponse{Documents: grouped, Counts: counts})
}

// GetDocumentVersions возвращает цепочку версий документа
func (h *DocumentHandler) GetDocumentVersions(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	versions, err := h.documentService.Versions(r.Context(), tenantID, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, versions)
}

// DownloadDocument отдаёт содержимое документа
func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	doc, object, err := h.documentService.Download(r.Context(), tenantID, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	defer object.Close()

	w.Header().Set("Content-Type", doc.FileType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", object.ContentLength()))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(doc.Name)))

	if _, err := io.Copy(w, object); err != nil {
		// Ответ уже начат, клиенту остаётся оборванное соединение
		return
	}
}

// DeleteDocument удаляет документ вместе с цепочкой версий
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	if err := h.documentService.Delete(r.Context(), tenantID, id); err != nil {
		serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
