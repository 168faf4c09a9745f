package eventsadapter

import (
	"context"
	"log/slog"
	"time"

	httpadapter "beastypage/contexts/stream-voting/vote-aggregator/adapters/http"
	"beastypage/contexts/stream-voting/vote-aggregator/domain/entities"
	"beastypage/contexts/stream-voting/vote-aggregator/ports"
	"beastypage/internal/shared/events"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	TopicVoteCreated     = "vote.created"
	EventTypeVoteCreated = "vote.created"
)

type Bus interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// Publisher puts vote.created envelopes on the bus. The payload is the same
// projection the REST API returns.
type Publisher struct {
	Bus    Bus
	Source string
	Logger *slog.Logger
}

func (p Publisher) PublishVoteCreated(ctx context.Context, vote entities.Vote) error {
	payload, err := json.Marshal(httpadapter.ToVoteResponse(vote))
	if err != nil {
		return err
	}
	envelope := events.Envelope{
		EventID:        uuid.NewString(),
		EventType:      EventTypeVoteCreated,
		SourceService:  p.Source,
		OccurredAtUTC:  time.Now().UTC(),
		PartitionKey:   vote.SessionID,
		EntityType:     "vote",
		EntityID:       vote.VoteID,
		PayloadVersion: 1,
		Payload:        payload,
	}
	if err := p.Bus.Publish(ctx, TopicVoteCreated, envelope); err != nil {
		if p.Logger != nil {
			p.Logger.Error("vote event publish failed",
				"event", "vote_event_publish_failed",
				"module", "stream-voting/vote-aggregator",
				"layer", "adapter",
				"vote_id", vote.VoteID,
				"error", err.Error(),
			)
		}
		return err
	}
	return nil
}

var _ ports.VotePublisher = Publisher{}
