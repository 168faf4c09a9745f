package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"beastypage/contexts/stream-voting/vote-aggregator/domain/entities"
	domainerrors "beastypage/contexts/stream-voting/vote-aggregator/domain/errors"
	"beastypage/contexts/stream-voting/vote-aggregator/ports"

	"github.com/google/uuid"
)

// Store keeps votes in insertion order and doubles as clock and publisher for
// tests.
type Store struct {
	mu sync.RWMutex

	votes     map[string]entities.Vote
	insertion []string
	published []entities.Vote
	nowFunc   func() time.Time
}

func NewStore(seed []entities.Vote) *Store {
	store := &Store{
		votes:   make(map[string]entities.Vote, len(seed)),
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
	for _, vote := range seed {
		_, _ = store.InsertVote(context.Background(), vote)
	}
	return store
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFunc = func() time.Time { return now.UTC() }
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFunc()
}

// InsertVote keeps a caller-supplied VoteID and assigns one otherwise. Votes
// are append-only; reusing an id fails with ErrDuplicateVote.
func (s *Store) InsertVote(_ context.Context, vote entities.Vote) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voteID := strings.TrimSpace(vote.VoteID)
	if voteID == "" {
		voteID = uuid.NewString()
	}
	if _, exists := s.votes[voteID]; exists {
		return "", domainerrors.ErrDuplicateVote
	}
	vote.VoteID = voteID
	s.insertion = append(s.insertion, voteID)
	s.votes[voteID] = cloneVote(vote)
	return voteID, nil
}

func (s *Store) GetVote(_ context.Context, voteID string) (entities.Vote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[strings.TrimSpace(voteID)]
	if !ok {
		return entities.Vote{}, false, nil
	}
	return cloneVote(vote), true, nil
}

func (s *Store) ListVotesBySession(_ context.Context, sessionID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vote, 0)
	for _, voteID := range s.insertion {
		vote := s.votes[voteID]
		if vote.SessionID != sessionID {
			continue
		}
		items = append(items, cloneVote(vote))
	}
	return items, nil
}

func (s *Store) PublishVoteCreated(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, cloneVote(vote))
	return nil
}

// Published returns the votes handed to PublishVoteCreated.
func (s *Store) Published() []entities.Vote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vote, 0, len(s.published))
	for _, vote := range s.published {
		items = append(items, cloneVote(vote))
	}
	return items
}

func cloneVote(vote entities.Vote) entities.Vote {
	if vote.OptionMeta != nil {
		vote.OptionMeta = append([]byte(nil), vote.OptionMeta...)
	}
	return vote
}

var _ ports.VoteRepository = (*Store)(nil)
var _ ports.VotePublisher = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
