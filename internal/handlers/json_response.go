package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"campaignhub/internal/middleware"
	"campaignhub/internal/models"
	"campaignhub/internal/services"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope wraps every API response body.
type Envelope struct {
	OK     bool       `json:"ok"`
	Data   any        `json:"data,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
	Status int        `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{OK: true, Data: data, Status: status})
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, Envelope{
		OK:     false,
		Error:  &errorBody{Code: code, Message: message, Details: details},
		Status: status,
	})
}

// writeServiceError renders a *services.Error as-is. Anything else is an
// unexpected failure and becomes a logged 500.
func writeServiceError(w http.ResponseWriter, logger log.Logger, r *http.Request, err error) {
	svcErr, ok := services.AsError(err)
	if !ok {
		level.Error(logger).Log("msg", "unhandled error", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if svcErr.Status >= http.StatusInternalServerError {
		level.Error(logger).Log("msg", "request failed", "method", r.Method, "path", r.URL.Path,
			"code", svcErr.Code, "err", errors.Unwrap(svcErr))
	}
	writeError(w, svcErr.Status, svcErr.Code, svcErr.Message, svcErr.Details)
}

func requireCaller(w http.ResponseWriter, r *http.Request) (models.Caller, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, services.CodeUnauthorized, "Missing authorization header", nil)
	}
	return caller, ok
}

// pathID reads a positive integer path parameter.
func pathID(w http.ResponseWriter, r *http.Request, name, code string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, code, "Invalid "+name, map[string]string{name: "positive integer"})
		return 0, false
	}
	return id, true
}
