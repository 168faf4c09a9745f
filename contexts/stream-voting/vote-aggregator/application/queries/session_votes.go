package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	application "beastypage/contexts/stream-voting/vote-aggregator/application"
	"beastypage/contexts/stream-voting/vote-aggregator/domain/entities"
	domainerrors "beastypage/contexts/stream-voting/vote-aggregator/domain/errors"
	"beastypage/contexts/stream-voting/vote-aggregator/ports"
)

type SessionVotesUseCase struct {
	Votes   ports.VoteRepository
	Metrics ports.Metrics
	Logger  *slog.Logger
}

// ListVotes returns the session's votes ascending by CreatedAt, ties kept in
// storage order, capped at limit.
func (uc SessionVotesUseCase) ListVotes(
	ctx context.Context,
	sessionID string,
	filter entities.StepFilter,
	limit int,
) ([]entities.Vote, error) {
	if limit < 0 {
		return nil, domainerrors.ErrInvalidLimit
	}
	if limit == 0 {
		return []entities.Vote{}, nil
	}

	votes, err := uc.sessionVotes(ctx, sessionID, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(votes, func(i, j int) bool {
		return votes[i].CreatedAt.Before(votes[j].CreatedAt)
	})
	if len(votes) > limit {
		votes = votes[:limit]
	}

	application.ResolveMetrics(uc.Metrics).VotesListed(len(votes))
	return votes, nil
}

// Tally counts votes per option, most voted first, ties by option key.
func (uc SessionVotesUseCase) Tally(
	ctx context.Context,
	sessionID string,
	filter entities.StepFilter,
) ([]entities.OptionTally, error) {
	votes, err := uc.sessionVotes(ctx, sessionID, filter)
	if err != nil {
		return nil, err
	}
	tallies := aggregate(votes)
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Votes == tallies[j].Votes {
			return tallies[i].OptionKey < tallies[j].OptionKey
		}
		return tallies[i].Votes > tallies[j].Votes
	})
	return tallies, nil
}

func (uc SessionVotesUseCase) sessionVotes(
	ctx context.Context,
	sessionID string,
	filter entities.StepFilter,
) ([]entities.Vote, error) {
	if strings.TrimSpace(sessionID) == "" {
		return []entities.Vote{}, nil
	}
	stored, err := uc.Votes.ListVotesBySession(ctx, sessionID)
	if err != nil {
		application.ResolveLogger(uc.Logger).Error("session votes scan failed",
			"event", "vote_session_scan_failed",
			"module", "stream-voting/vote-aggregator",
			"layer", "application",
			"session_id", sessionID,
			"error", err.Error(),
		)
		return nil, err
	}

	votes := make([]entities.Vote, 0, len(stored))
	for _, vote := range stored {
		if vote.SessionID != sessionID || !filter.Matches(vote.StepID) {
			continue
		}
		votes = append(votes, vote)
	}
	return votes, nil
}

func aggregate(votes []entities.Vote) []entities.OptionTally {
	byOption := make(map[string]entities.OptionTally)
	for _, vote := range votes {
		current := byOption[vote.OptionKey]
		current.OptionKey = vote.OptionKey
		current.Votes++
		if current.FirstVoteAt.IsZero() || vote.CreatedAt.Before(current.FirstVoteAt) {
			current.FirstVoteAt = vote.CreatedAt
		}
		if vote.CreatedAt.After(current.LastVoteAt) {
			current.LastVoteAt = vote.CreatedAt
		}
		byOption[vote.OptionKey] = current
	}

	items := make([]entities.OptionTally, 0, len(byOption))
	for _, tally := range byOption {
		items = append(items, tally)
	}
	return items
}
