package ports

import (
	"context"
	"time"

	"beastypage/contexts/stream-voting/vote-aggregator/domain/entities"
)

// VoteRepository is the durable vote store. ListVotesBySession returns votes
// in storage order.
type VoteRepository interface {
	InsertVote(ctx context.Context, vote entities.Vote) (string, error)
	GetVote(ctx context.Context, voteID string) (entities.Vote, bool, error)
	ListVotesBySession(ctx context.Context, sessionID string) ([]entities.Vote, error)
}

// VotePublisher fans new votes out to live listeners. Publishing is best
// effort and never fails the write.
type VotePublisher interface {
	PublishVoteCreated(ctx context.Context, vote entities.Vote) error
}

type Clock interface {
	Now() time.Time
}

type Metrics interface {
	VoteCreated(anonymous bool)
	VotesListed(count int)
}
