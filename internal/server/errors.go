package server

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	apperr "github.com/matzehuels/chromatic/pkg/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code apperr.Code) int {
	switch code {
	case apperr.ErrCodeInvalidGraph, apperr.ErrCodeInvalidInput, apperr.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case apperr.ErrCodeSolveFailed, apperr.ErrCodeDecodeFailed:
		return http.StatusUnprocessableEntity
	case apperr.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperr.ErrCodeNotFound, apperr.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	status := StatusFor(code)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
		msg = "internal error"
	} else {
		s.logger.Debug("request rejected", "request_id", middleware.GetReqID(r.Context()), "code", code, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
