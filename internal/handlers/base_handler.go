package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lumob/backend/internal/services"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service-layer error onto an HTTP status.
// Classified errors carry their own user-facing Portuguese message;
// anything else is a 500 with a generic message.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		h.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalid):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		h.RespondError(w, http.StatusUnauthorized, err.Error())
	default:
		h.Logger.Error("unexpected service error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Erro interno do servidor.")
	}
}

// URLParamInt parses an integer chi URL parameter
func URLParamInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// QueryInt parses an optional integer query parameter, 0 when absent or invalid
func QueryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

// DecodeJSON decodes the request body into dst
func DecodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
