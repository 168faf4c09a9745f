package httpserver

import (
	"errors"
	"net/http"

	sharedomainerrors "beastypage/contexts/sharing/slug-registry/domain/errors"
	sharehttp "beastypage/contexts/sharing/slug-registry/transport/http"
	"beastypage/internal/platform/validation"
)

func (s *Server) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	var req sharehttp.CreateShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeShareError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := validation.Struct(req); err != nil {
		writeShareError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resp, err := s.shares.Handler.CreateShareHandler(r.Context(), req)
	if err != nil {
		s.writeShareDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetShare(w http.ResponseWriter, r *http.Request) {
	resp, found, err := s.shares.Handler.GetShareHandler(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.writeShareDomainError(w, r, err)
		return
	}
	if !found {
		writeShareError(w, http.StatusNotFound, "share_not_found", "share not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeShareDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sharedomainerrors.ErrInvalidPayload):
		writeShareError(w, http.StatusBadRequest, "invalid_payload", err.Error())
	case errors.Is(err, sharedomainerrors.ErrSlugTaken):
		writeShareError(w, http.StatusConflict, "slug_taken", err.Error())
	case errors.Is(err, sharedomainerrors.ErrSlugExhausted):
		writeShareError(w, http.StatusServiceUnavailable, "slug_exhausted", err.Error())
	default:
		s.logger.Error("share request failed",
			"event", "http_share_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"request_id", RequestID(r.Context()),
			"error", err.Error(),
		)
		writeShareError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeShareError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, sharehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
