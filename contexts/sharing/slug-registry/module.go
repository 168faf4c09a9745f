package slugregistry

import (
	"log/slog"

	httpadapter "beastypage/contexts/sharing/slug-registry/adapters/http"
	"beastypage/contexts/sharing/slug-registry/adapters/memory"
	"beastypage/contexts/sharing/slug-registry/application/commands"
	"beastypage/contexts/sharing/slug-registry/application/queries"
	"beastypage/contexts/sharing/slug-registry/domain/services"
	"beastypage/contexts/sharing/slug-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Shares          ports.ShareRepository
	Slugs           ports.SlugGenerator
	Clock           ports.Clock
	Metrics         ports.Metrics
	MaxSlugAttempts int
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	slugs := deps.Slugs
	if slugs == nil {
		slugs = services.SlugGenerator{}
	}
	return Module{
		Handler: httpadapter.Handler{
			Create: commands.CreateShareUseCase{
				Shares:      deps.Shares,
				Slugs:       slugs,
				Clock:       deps.Clock,
				Metrics:     deps.Metrics,
				MaxAttempts: deps.MaxSlugAttempts,
				Logger:      deps.Logger,
			},
			Get: queries.GetShareUseCase{
				Shares: deps.Shares,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(metrics ports.Metrics, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Shares:  store,
		Clock:   store,
		Metrics: metrics,
		Logger:  logger,
	})
	module.Store = store
	return module
}
