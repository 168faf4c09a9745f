package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "beastypage/contexts/stream-voting/vote-aggregator/application"
	"beastypage/contexts/stream-voting/vote-aggregator/domain/entities"
	domainerrors "beastypage/contexts/stream-voting/vote-aggregator/domain/errors"
	"beastypage/contexts/stream-voting/vote-aggregator/ports"
)

type CreateVoteCommand struct {
	SessionID  string
	StepID     string
	OptionKey  string
	OptionMeta json.RawMessage
	VotedBy    string
}

// CreateVoteUseCase appends a vote and returns it as read back from the store.
// Publisher is optional.
type CreateVoteUseCase struct {
	Votes     ports.VoteRepository
	Publisher ports.VotePublisher
	Clock     ports.Clock
	Metrics   ports.Metrics
	Logger    *slog.Logger
}

// CreateVote reports found=false when the re-read after insert misses.
func (uc CreateVoteUseCase) CreateVote(ctx context.Context, cmd CreateVoteCommand) (entities.Vote, bool, error) {
	logger := application.ResolveLogger(uc.Logger)

	// Session, step and option identifiers are stored exactly as given so that
	// reads comparing them exactly see the same values.
	meta, ok := normalizeOptionMeta(cmd.OptionMeta)
	if strings.TrimSpace(cmd.SessionID) == "" || strings.TrimSpace(cmd.OptionKey) == "" || !ok {
		logger.Warn("vote create validation failed",
			"event", "vote_create_validation_failed",
			"module", "stream-voting/vote-aggregator",
			"layer", "application",
			"session_id", cmd.SessionID,
			"step_id", cmd.StepID,
		)
		return entities.Vote{}, false, domainerrors.ErrInvalidVoteInput
	}

	now := uc.now()
	voteID, err := uc.Votes.InsertVote(ctx, entities.Vote{
		SessionID:  cmd.SessionID,
		StepID:     cmd.StepID,
		OptionKey:  cmd.OptionKey,
		OptionMeta: meta,
		VotedBy:    strings.TrimSpace(cmd.VotedBy),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return entities.Vote{}, false, err
	}

	vote, found, err := uc.Votes.GetVote(ctx, voteID)
	if err != nil {
		return entities.Vote{}, false, err
	}
	if !found {
		logger.Error("vote missing after insert",
			"event", "vote_reread_missed",
			"module", "stream-voting/vote-aggregator",
			"layer", "application",
			"vote_id", voteID,
			"session_id", cmd.SessionID,
		)
		return entities.Vote{}, false, nil
	}

	application.ResolveMetrics(uc.Metrics).VoteCreated(vote.Anonymous())
	if uc.Publisher != nil {
		if err := uc.Publisher.PublishVoteCreated(ctx, vote); err != nil {
			logger.Warn("vote created event publish failed",
				"event", "vote_publish_failed",
				"module", "stream-voting/vote-aggregator",
				"layer", "application",
				"vote_id", vote.VoteID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("vote created",
		"event", "vote_created",
		"module", "stream-voting/vote-aggregator",
		"layer", "application",
		"vote_id", vote.VoteID,
		"session_id", vote.SessionID,
		"step_id", vote.StepID,
		"option_key", vote.OptionKey,
	)
	return vote, true, nil
}

func (uc CreateVoteUseCase) now() time.Time {
	now := time.Now()
	if uc.Clock != nil {
		now = uc.Clock.Now()
	}
	return now.UTC().Truncate(time.Millisecond)
}

func normalizeOptionMeta(raw json.RawMessage) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, true
	}
	if !json.Valid(trimmed) {
		return nil, false
	}
	return append(json.RawMessage(nil), trimmed...), true
}
