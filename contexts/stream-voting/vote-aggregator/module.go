package voteaggregator

import (
	"log/slog"

	httpadapter "beastypage/contexts/stream-voting/vote-aggregator/adapters/http"
	"beastypage/contexts/stream-voting/vote-aggregator/adapters/memory"
	"beastypage/contexts/stream-voting/vote-aggregator/application/commands"
	"beastypage/contexts/stream-voting/vote-aggregator/application/queries"
	"beastypage/contexts/stream-voting/vote-aggregator/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Votes     ports.VoteRepository
	Publisher ports.VotePublisher
	Clock     ports.Clock
	Metrics   ports.Metrics
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Create: commands.CreateVoteUseCase{
				Votes:     deps.Votes,
				Publisher: deps.Publisher,
				Clock:     deps.Clock,
				Metrics:   deps.Metrics,
				Logger:    deps.Logger,
			},
			Session: queries.SessionVotesUseCase{
				Votes:   deps.Votes,
				Metrics: deps.Metrics,
				Logger:  deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule uses the memory store for votes and clock. A nil publisher
// records published votes on the store.
func NewInMemoryModule(publisher ports.VotePublisher, metrics ports.Metrics, logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	if publisher == nil {
		publisher = store
	}
	module := NewModule(Dependencies{
		Votes:     store,
		Publisher: publisher,
		Clock:     store,
		Metrics:   metrics,
		Logger:    logger,
	})
	module.Store = store
	return module
}
