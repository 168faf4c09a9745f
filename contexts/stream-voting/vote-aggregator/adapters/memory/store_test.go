package memory

import (
	"context"
	"errors"
	"testing"

	"beastypage/contexts/stream-voting/vote-aggregator/domain/entities"
	domainerrors "beastypage/contexts/stream-voting/vote-aggregator/domain/errors"
)

func TestListVotesBySessionKeepsInsertionOrder(t *testing.T) {
	store := NewStore(nil)
	for _, option := range []string{"c", "a", "b"} {
		if _, err := store.InsertVote(context.Background(), entities.Vote{SessionID: "s1", OptionKey: option}); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	if _, err := store.InsertVote(context.Background(), entities.Vote{SessionID: "s2", OptionKey: "z"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	votes, err := store.ListVotesBySession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(votes) != 3 || votes[0].OptionKey != "c" || votes[1].OptionKey != "a" || votes[2].OptionKey != "b" {
		t.Fatalf("unexpected order %+v", votes)
	}
}

func TestStoreCopiesOptionMeta(t *testing.T) {
	store := NewStore(nil)
	meta := []byte(`{"k":1}`)
	id, _ := store.InsertVote(context.Background(), entities.Vote{SessionID: "s1", OptionKey: "x", OptionMeta: meta})
	meta[2] = 'z'

	vote, found, _ := store.GetVote(context.Background(), id)
	if !found || string(vote.OptionMeta) != `{"k":1}` {
		t.Fatalf("stored option meta was mutated: %s", vote.OptionMeta)
	}
}

func TestInsertVoteRejectsDuplicateID(t *testing.T) {
	store := NewStore(nil)
	if _, err := store.InsertVote(context.Background(), entities.Vote{VoteID: "v-1", SessionID: "s1", OptionKey: "tabby"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	_, err := store.InsertVote(context.Background(), entities.Vote{VoteID: "v-1", SessionID: "s1", OptionKey: "calico"})
	if !errors.Is(err, domainerrors.ErrDuplicateVote) {
		t.Fatalf("expected duplicate vote error, got %v", err)
	}

	vote, found, _ := store.GetVote(context.Background(), "v-1")
	if !found || vote.OptionKey != "tabby" {
		t.Fatalf("duplicate insert overwrote vote: %+v", vote)
	}
	votes, _ := store.ListVotesBySession(context.Background(), "s1")
	if len(votes) != 1 {
		t.Fatalf("expected one stored vote, got %d", len(votes))
	}
}
