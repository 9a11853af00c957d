package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSize, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidConfiguration, errors.ErrCodeIncompleteGroup, errors.ErrCodeUnpackable:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeOutOfRange:
		return http.StatusNotFound
	case errors.ErrCodeNotPrepared:
		return http.StatusConflict
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
