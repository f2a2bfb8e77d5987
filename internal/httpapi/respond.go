package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chris-regnier/wellnessctl/internal/session"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/validation"
	"go.uber.org/zap"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (rt *Router) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rt.logger.Error("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: true, Message: message, Code: status, Fields: fields})
}

func (rt *Router) respondError(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message, nil)
}

// fail maps a service error to a response status.
func (rt *Router) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error(), ve.Fields)
	case errors.Is(err, storage.ErrNotFound):
		rt.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrConflict):
		rt.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNoSession):
		rt.respondError(w, http.StatusUnauthorized, err.Error())
	default:
		rt.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		rt.respondError(w, http.StatusInternalServerError, "internal error")
	}
}
