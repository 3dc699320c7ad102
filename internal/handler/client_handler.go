package handler

import (
	"encoding/json"
	"net/http"

	"conveydrive/internal/auth"
	"conveydrive/internal/service"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input service.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.clientService.Create(r.Context(), tenantID, input)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	clients, err := h.clientService.List(r.Context(), tenantID)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}

	client, err := h.clientService.Get(r.Context(), tenantID, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}

	var input service.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.clientService.Update(r.Context(), tenantID, id, input)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}

	if err := h.clientService.Delete(r.Context(), tenantID, id); err != nil {
		serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
