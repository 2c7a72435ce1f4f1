package items

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/item-manager/internal/httpx"
	"github.com/Lelo88/item-manager/internal/session"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar el repositorio.
type ServiceAPI interface {
	State(ctx context.Context, sessionID string) (State, error)
	List(ctx context.Context, sessionID string) ([]Item, error)
	Create(ctx context.Context, sessionID string, in CreateItemInput) (Item, error)
	Delete(ctx context.Context, sessionID string, id int) error
}

// Handler HTTP para items.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de items.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// List maneja GET /items.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	sessionID, ok := sessionIDOrFail(writer, request)
	if !ok {
		return
	}

	items, err := handler.service.List(request.Context(), sessionID)
	if err != nil {
		failInternal(writer, request)
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

// State maneja GET /items/state: items, último error y borrador.
func (handler *Handler) State(writer http.ResponseWriter, request *http.Request) {
	sessionID, ok := sessionIDOrFail(writer, request)
	if !ok {
		return
	}

	state, err := handler.service.State(request.Context(), sessionID)
	if err != nil {
		failInternal(writer, request)
		return
	}

	httpx.OK(writer, request, http.StatusOK, state)
}

// Create maneja POST /items.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	sessionID, ok := sessionIDOrFail(writer, request)
	if !ok {
		return
	}

	var itemInput CreateItemInput
	if err := json.NewDecoder(request.Body).Decode(&itemInput); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	item, err := handler.service.Create(request.Context(), sessionID, itemInput)
	if err != nil {
		var validationError *ValidationError
		if errors.As(err, &validationError) {
			// El motivo es para el usuario: se expone tal cual.
			httpx.Fail(writer, request, http.StatusUnprocessableEntity, validationError.Code, validationError.Reason)
			return
		}
		failInternal(writer, request)
		return
	}

	httpx.OK(writer, request, http.StatusCreated, item)
}

// Delete maneja DELETE /items/{id}. Borrar algo que no existe también es 204.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	sessionID, ok := sessionIDOrFail(writer, request)
	if !ok {
		return
	}

	id, err := ParseID(chi.URLParam(request, "id"))
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	if err := handler.service.Delete(request.Context(), sessionID, id); err != nil {
		switch {
		case errors.Is(err, ErrorInvalidID):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		default:
			failInternal(writer, request)
		}
		return
	}

	httpx.NoContent(writer)
}

// Categories maneja GET /categories.
func (handler *Handler) Categories(writer http.ResponseWriter, request *http.Request) {
	httpx.OK(writer, request, http.StatusOK, map[string]any{
		"categories": Categories(),
	})
}

// ParseID parsea un ID de item de la URL o de un formulario.
func ParseID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, ErrorInvalidID
	}
	if id < 1 {
		return 0, ErrorInvalidID
	}
	return id, nil
}

func sessionIDOrFail(writer http.ResponseWriter, request *http.Request) (string, bool) {
	sessionID, err := session.IDFromCtx(request.Context())
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "missing_session", "session cookie required")
		return "", false
	}
	return sessionID, true
}

func failInternal(writer http.ResponseWriter, request *http.Request) {
	// No filtramos detalles internos.
	httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
}
