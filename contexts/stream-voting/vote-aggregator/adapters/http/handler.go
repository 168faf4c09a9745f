package httpadapter

import (
	"context"
	"log/slog"

	"beastypage/contexts/stream-voting/vote-aggregator/application/commands"
	"beastypage/contexts/stream-voting/vote-aggregator/application/queries"
	"beastypage/contexts/stream-voting/vote-aggregator/domain/entities"
	httptransport "beastypage/contexts/stream-voting/vote-aggregator/transport/http"
)

type Handler struct {
	Create  commands.CreateVoteUseCase
	Session queries.SessionVotesUseCase
	Logger  *slog.Logger
}

// CreateVoteHandler godoc
// @Summary Cast a vote
// @Description Records one vote for a session step. Votes are never deduplicated.
// @Tags vote-aggregator
// @Accept json
// @Produce json
// @Param session_id path string true "Vote session id"
// @Param request body httptransport.CreateVoteRequest true "Vote"
// @Success 201 {object} httptransport.VoteResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 429 {object} httptransport.ErrorResponse
// @Router /v1/vote-sessions/{session_id}/votes [post]
func (h Handler) CreateVoteHandler(
	ctx context.Context,
	sessionID string,
	req httptransport.CreateVoteRequest,
) (httptransport.VoteResponse, bool, error) {
	vote, found, err := h.Create.CreateVote(ctx, commands.CreateVoteCommand{
		SessionID:  sessionID,
		StepID:     req.StepID,
		OptionKey:  req.OptionKey,
		OptionMeta: req.OptionMeta,
		VotedBy:    req.VotedBy,
	})
	if err != nil || !found {
		return httptransport.VoteResponse{}, false, err
	}
	return ToVoteResponse(vote), true, nil
}

// ListVotesHandler godoc
// @Summary List session votes
// @Description Returns votes oldest first. Without step_id every step matches.
// @Tags vote-aggregator
// @Produce json
// @Param session_id path string true "Vote session id"
// @Param step_id query string false "Step filter; empty value matches votes without a step"
// @Param limit query int false "Maximum votes (default 100, max 1000)"
// @Success 200 {object} httptransport.ListVotesResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/vote-sessions/{session_id}/votes [get]
func (h Handler) ListVotesHandler(
	ctx context.Context,
	sessionID string,
	stepID *string,
	limit int,
) (httptransport.ListVotesResponse, error) {
	votes, err := h.Session.ListVotes(ctx, sessionID, StepFilter(stepID), limit)
	if err != nil {
		return httptransport.ListVotesResponse{}, err
	}
	items := make([]httptransport.VoteResponse, 0, len(votes))
	for _, vote := range votes {
		items = append(items, ToVoteResponse(vote))
	}
	return httptransport.ListVotesResponse{Items: items}, nil
}

// TallyHandler godoc
// @Summary Tally session votes per option
// @Tags vote-aggregator
// @Produce json
// @Param session_id path string true "Vote session id"
// @Param step_id query string false "Step filter"
// @Success 200 {object} httptransport.TallyResponse
// @Router /v1/vote-sessions/{session_id}/tally [get]
func (h Handler) TallyHandler(
	ctx context.Context,
	sessionID string,
	stepID *string,
) (httptransport.TallyResponse, error) {
	tallies, err := h.Session.Tally(ctx, sessionID, StepFilter(stepID))
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	resp := httptransport.TallyResponse{
		SessionID: sessionID,
		StepID:    stepID,
		Items:     make([]httptransport.OptionTallyResponse, 0, len(tallies)),
	}
	for _, tally := range tallies {
		resp.TotalVotes += tally.Votes
		resp.Items = append(resp.Items, httptransport.OptionTallyResponse{
			OptionKey:   tally.OptionKey,
			Votes:       tally.Votes,
			FirstVoteAt: tally.FirstVoteAt.UnixMilli(),
			LastVoteAt:  tally.LastVoteAt.UnixMilli(),
		})
	}
	return resp, nil
}

func StepFilter(stepID *string) entities.StepFilter {
	if stepID == nil {
		return entities.AnyStep()
	}
	return entities.OnlyStep(*stepID)
}

func ToVoteResponse(vote entities.Vote) httptransport.VoteResponse {
	return httptransport.VoteResponse{
		VoteID:     vote.VoteID,
		SessionID:  vote.SessionID,
		StepID:     vote.StepID,
		OptionKey:  vote.OptionKey,
		OptionMeta: vote.OptionMeta,
		VotedBy:    vote.VotedBy,
		CreatedAt:  vote.CreatedAt.UnixMilli(),
		UpdatedAt:  vote.UpdatedAt.UnixMilli(),
	}
}
