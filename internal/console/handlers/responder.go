package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/transfer-console/internal/console/middleware"
	"github.com/preston-bernstein/transfer-console/internal/gateway"
	"github.com/preston-bernstein/transfer-console/internal/logging"
	"github.com/preston-bernstein/transfer-console/internal/session"
	"github.com/preston-bernstein/transfer-console/internal/transfer"
	"github.com/preston-bernstein/transfer-console/internal/views"
)

type errorBody struct {
	Error     string                `json:"error"`
	RequestID string                `json:"requestId,omitempty"`
	Fields    []transfer.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: message, RequestID: requestID(r)}, logger)
}

func requestID(r *http.Request) string {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(middleware.HeaderRequestID)
	}
	return reqID
}

// writeFailure maps domain and gateway errors to HTTP responses.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if vErr, ok := transfer.AsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:     vErr.Error(),
			RequestID: requestID(r),
			Fields:    vErr.Fields,
		}, logger)
		return
	}
	if authErr, ok := session.AsAuthError(err); ok {
		if errors.Is(authErr, session.ErrMissingCredentials) {
			writeError(w, r, http.StatusBadRequest, session.ErrMissingCredentials.Error(), logger)
			return
		}
		writeError(w, r, http.StatusUnauthorized, authErr.Error(), logger)
		return
	}
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err, logging.FieldStatusCode, status)
	}
	writeError(w, r, status, message, logger)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, views.ErrLoginRequired):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, views.ErrAdminRequired):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, transfer.ErrSubmitInProgress):
		return http.StatusConflict, err.Error()
	}
	if apiErr, ok := gateway.AsAPIError(err); ok {
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return status, msg
	}
	if _, ok := gateway.AsNetworkError(err); ok {
		return http.StatusBadGateway, "transfer service unavailable"
	}
	return http.StatusInternalServerError, "internal error"
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
