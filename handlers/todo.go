package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"todo-backend/logger"
	"todo-backend/middleware"
	"todo-backend/store"
	"todo-backend/utils"
)

// TodoHandler serves the owner-scoped todo CRUD.
type TodoHandler struct {
	todos      TodoStore
	log        *logger.Logger
	production bool
}

func NewTodoHandler(todos TodoStore, log *logger.Logger, production bool) *TodoHandler {
	return &TodoHandler{todos: todos, log: log, production: production}
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if errs := req.validate(); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	todo, err := h.todos.Create(r.Context(), ownerID, strings.TrimSpace(req.Text))
	if err != nil {
		h.serverError(w, r, "Create todo error", "Error creating todo", err, userID)
		return
	}

	utils.ResponseWithJson(w, http.StatusCreated, map[string]interface{}{
		"message": "Todo created successfully",
		"todo":    todo,
	})
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	todos, err := h.todos.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.serverError(w, r, "Get todos error", "Error retrieving todos", err, userID)
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]interface{}{
		"message": "Todos retrieved successfully",
		"todos":   todos,
	})
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, userID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if errs := req.validate(); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	todo, err := h.todos.UpdateText(r.Context(), ownerID, id, strings.TrimSpace(req.Text))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ResponseWithError(w, http.StatusNotFound, "Todo not found")
			return
		}
		h.serverError(w, r, "Update todo error", "Error updating todo", err, userID)
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]interface{}{
		"message": "Todo updated successfully",
		"todo":    todo,
	})
}

func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ownerID, userID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.Toggle(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ResponseWithError(w, http.StatusNotFound, "Todo not found")
			return
		}
		h.serverError(w, r, "Toggle todo error", "Error toggling todo", err, userID)
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]interface{}{
		"message": "Todo toggled successfully",
		"todo":    todo,
	})
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, userID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.todos.Delete(r.Context(), ownerID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ResponseWithError(w, http.StatusNotFound, "Todo not found")
			return
		}
		h.serverError(w, r, "Delete todo error", "Error deleting todo", err, userID)
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]string{"message": "Todo deleted successfully"})
}

// owner resolves the authenticated identity to an owner id, failing the
// request with 401 before any store access when it is missing or unusable.
func (h *TodoHandler) owner(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, string, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.ResponseWithError(w, http.StatusUnauthorized, "Authentication required")
		return primitive.NilObjectID, "", false
	}
	ownerID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		utils.ResponseWithError(w, http.StatusUnauthorized, "Authentication required")
		return primitive.NilObjectID, "", false
	}
	return ownerID, identity.UserID, true
}

// todoID parses the path id. An unparseable id cannot name an owned todo, so
// it gets the same 404 as a miss.
func todoID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.ResponseWithError(w, http.StatusNotFound, "Todo not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *TodoHandler) serverError(w http.ResponseWriter, r *http.Request, logMessage, userMessage string, err error, userID string) {
	h.log.Error(r.Context(), logMessage, err, userID, r.URL.Path, r.Method)
	body := map[string]string{"message": userMessage}
	if !h.production {
		body["error"] = err.Error()
	}
	utils.ResponseWithJson(w, http.StatusInternalServerError, body)
}
