package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	votedomainerrors "beastypage/contexts/stream-voting/vote-aggregator/domain/errors"
	votehttp "beastypage/contexts/stream-voting/vote-aggregator/transport/http"
	"beastypage/internal/platform/validation"
)

const (
	defaultVoteListLimit = 100
	maxVoteListLimit     = 1000
)

func (s *Server) handleCreateVote(w http.ResponseWriter, r *http.Request) {
	var req votehttp.CreateVoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeVoteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := validation.Struct(req); err != nil {
		writeVoteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resp, found, err := s.votes.Handler.CreateVoteHandler(r.Context(), r.PathValue("session_id"), req)
	if err != nil {
		s.writeVoteDomainError(w, r, err)
		return
	}
	if !found {
		writeVoteError(w, http.StatusNotFound, "vote_not_found", "vote could not be read back")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListVotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := defaultVoteListLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeVoteError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = min(parsed, maxVoteListLimit)
	}

	resp, err := s.votes.Handler.ListVotesHandler(r.Context(), r.PathValue("session_id"), stepParam(r), limit)
	if err != nil {
		s.writeVoteDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoteTally(w http.ResponseWriter, r *http.Request) {
	resp, err := s.votes.Handler.TallyHandler(r.Context(), r.PathValue("session_id"), stepParam(r))
	if err != nil {
		s.writeVoteDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// stepParam distinguishes an absent step_id from an empty one.
func stepParam(r *http.Request) *string {
	query := r.URL.Query()
	if !query.Has("step_id") {
		return nil
	}
	step := query.Get("step_id")
	return &step
}

func (s *Server) writeVoteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, votedomainerrors.ErrInvalidVoteInput):
		writeVoteError(w, http.StatusBadRequest, "invalid_vote", err.Error())
	case errors.Is(err, votedomainerrors.ErrInvalidLimit):
		writeVoteError(w, http.StatusBadRequest, "invalid_limit", err.Error())
	case errors.Is(err, votedomainerrors.ErrDuplicateVote):
		writeVoteError(w, http.StatusConflict, "duplicate_vote", err.Error())
	default:
		s.logger.Error("vote request failed",
			"event", "http_vote_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"request_id", RequestID(r.Context()),
			"error", err.Error(),
		)
		writeVoteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVoteError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
