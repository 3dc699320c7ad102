package handler

import (
	"encoding/json"
	"net/http"

	"conveydrive/internal/auth"
	"conveydrive/internal/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input service.TodoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	todo, err := h.todoService.Create(r.Context(), tenantID, userID, input)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, todo)
}

// ListTodos возвращает задачи дела
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
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

	todos, err := h.todoService.ListByMatter(r.Context(), tenantID, matterID)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, todos)
}

type todoCompleteRequest struct {
	Completed bool `json:"completed"`
}

func (h *TodoHandler) CompleteTodo(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid todo ID", http.StatusBadRequest)
		return
	}

	var req todoCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	todo, err := h.todoService.SetCompleted(r.Context(), tenantID, id, req.Completed)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseUUIDParam(r, "uuid")
	if err != nil {
		http.Error(w, "Invalid todo ID", http.StatusBadRequest)
		return
	}

	if err := h.todoService.Delete(r.Context(), tenantID, id); err != nil {
		serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
