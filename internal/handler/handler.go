package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"conveydrive/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// serviceError переводит ошибку сервиса в HTTP-статус.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMatterNotFound),
		errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrPropertyNotFound),
		errors.Is(err, service.ErrTodoNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidMatter),
		errors.Is(err, service.ErrInvalidDocument),
		errors.Is(err, service.ErrDocumentTooLarge):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
