package handlers

import (
	"encoding/json"
	"errors"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/platform/obs"
	"hub-routing-service/internal/services"
	"io"
	"net/http"

	"go.uber.org/zap"
)

var errTrailingData = errors.New("body must contain only one JSON object")

func writeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, msg string) {
	writeJSON(w, r, logger, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidGeometry),
		errors.Is(err, domain.ErrInvalidIncident):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrHubNotFound), errors.Is(err, domain.ErrRouteNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoPathFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrProviderUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError logs err and answers with its mapped status. Internal
// failures get a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, op string, err error) {
	status := statusFor(err)
	fields := []zap.Field{
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error(op+" failed", fields...)
	} else {
		logger.Info(op+" rejected", fields...)
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeError(w, r, logger, status, msg)
}
