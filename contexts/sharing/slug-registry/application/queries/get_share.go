package queries

import (
	"context"
	"log/slog"
	"strings"

	application "beastypage/contexts/sharing/slug-registry/application"
	"beastypage/contexts/sharing/slug-registry/domain/entities"
	"beastypage/contexts/sharing/slug-registry/ports"
)

type GetShareUseCase struct {
	Shares ports.ShareRepository
	Logger *slog.Logger
}

// GetShare matches the slug exactly. Absence is found=false, not an error.
func (uc GetShareUseCase) GetShare(ctx context.Context, slug string) (entities.ShareRecord, bool, error) {
	if strings.TrimSpace(slug) == "" {
		return entities.ShareRecord{}, false, nil
	}
	record, found, err := uc.Shares.GetShareBySlug(ctx, slug)
	if err != nil {
		application.ResolveLogger(uc.Logger).Error("share lookup failed",
			"event", "share_lookup_failed",
			"module", "sharing/slug-registry",
			"layer", "application",
			"slug", slug,
			"error", err.Error(),
		)
		return entities.ShareRecord{}, false, err
	}
	return record, found, nil
}
