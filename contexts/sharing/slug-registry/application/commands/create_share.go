package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "beastypage/contexts/sharing/slug-registry/application"
	"beastypage/contexts/sharing/slug-registry/domain/entities"
	domainerrors "beastypage/contexts/sharing/slug-registry/domain/errors"
	"beastypage/contexts/sharing/slug-registry/ports"
)

// DefaultMaxSlugAttempts bounds the generate/check/insert loop.
const DefaultMaxSlugAttempts = 6

type CreateShareCommand struct {
	Payload       json.RawMessage
	RequestedSlug string
}

type CreateShareResult struct {
	Slug string
	ID   string
}

// CreateShareUseCase binds a payload to a slug. The lookup before insert only
// avoids wasted writes; a unique-index violation from the store is treated as
// one more collision.
type CreateShareUseCase struct {
	Shares      ports.ShareRepository
	Slugs       ports.SlugGenerator
	Clock       ports.Clock
	Metrics     ports.Metrics
	MaxAttempts int
	Logger      *slog.Logger
}

func (uc CreateShareUseCase) CreateShare(ctx context.Context, cmd CreateShareCommand) (CreateShareResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	metrics := application.ResolveMetrics(uc.Metrics)

	payload, ok := normalizePayload(cmd.Payload)
	if !ok {
		logger.Warn("share create validation failed",
			"event", "share_create_validation_failed",
			"module", "sharing/slug-registry",
			"layer", "application",
			"payload_bytes", len(cmd.Payload),
		)
		return CreateShareResult{}, domainerrors.ErrInvalidPayload
	}
	now := uc.now()

	// A requested slug is stored verbatim; only the unique index guards it.
	if strings.TrimSpace(cmd.RequestedSlug) != "" {
		return uc.createWithRequestedSlug(ctx, logger, metrics, cmd.RequestedSlug, payload, now)
	}

	attempts := uc.maxAttempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		candidate, err := uc.Slugs.NewSlug()
		if err != nil {
			logger.Error("share slug generation failed",
				"event", "share_slug_generation_failed",
				"module", "sharing/slug-registry",
				"layer", "application",
				"attempt", attempt,
				"error", err.Error(),
			)
			return CreateShareResult{}, err
		}

		_, found, err := uc.Shares.GetShareBySlug(ctx, candidate)
		if err != nil {
			return CreateShareResult{}, err
		}
		if found {
			metrics.SlugAttempt(ports.SlugAttemptCollision)
			logger.Debug("share slug collision",
				"event", "share_slug_collision",
				"module", "sharing/slug-registry",
				"layer", "application",
				"attempt", attempt,
			)
			continue
		}

		id, err := uc.Shares.InsertShare(ctx, entities.ShareRecord{
			Slug:      candidate,
			Payload:   payload,
			CreatedAt: now,
		})
		if err != nil {
			if errors.Is(err, domainerrors.ErrSlugTaken) {
				metrics.SlugAttempt(ports.SlugAttemptRace)
				logger.Warn("share slug claimed concurrently",
					"event", "share_slug_insert_race",
					"module", "sharing/slug-registry",
					"layer", "application",
					"attempt", attempt,
				)
				continue
			}
			return CreateShareResult{}, err
		}

		metrics.SlugAttempt(ports.SlugAttemptCreated)
		metrics.ShareCreated(ports.ShareModeGenerated)
		logger.Info("share created",
			"event", "share_created",
			"module", "sharing/slug-registry",
			"layer", "application",
			"share_id", id,
			"slug", candidate,
			"attempt", attempt,
		)
		return CreateShareResult{Slug: candidate, ID: id}, nil
	}

	metrics.SlugExhausted()
	logger.Error("share slug attempts exhausted",
		"event", "share_slug_exhausted",
		"module", "sharing/slug-registry",
		"layer", "application",
		"attempts", attempts,
		"alphabet_size", len(entities.SlugAlphabet),
		"slug_length", entities.SlugLength,
	)
	return CreateShareResult{}, domainerrors.ErrSlugExhausted
}

func (uc CreateShareUseCase) createWithRequestedSlug(
	ctx context.Context,
	logger *slog.Logger,
	metrics ports.Metrics,
	slug string,
	payload json.RawMessage,
	now time.Time,
) (CreateShareResult, error) {
	id, err := uc.Shares.InsertShare(ctx, entities.ShareRecord{
		Slug:      slug,
		Payload:   payload,
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrSlugTaken) {
			logger.Warn("share requested slug already taken",
				"event", "share_requested_slug_taken",
				"module", "sharing/slug-registry",
				"layer", "application",
				"slug", slug,
			)
		}
		return CreateShareResult{}, err
	}

	metrics.ShareCreated(ports.ShareModeRequested)
	logger.Info("share created with requested slug",
		"event", "share_created",
		"module", "sharing/slug-registry",
		"layer", "application",
		"share_id", id,
		"slug", slug,
	)
	return CreateShareResult{Slug: slug, ID: id}, nil
}

func (uc CreateShareUseCase) now() time.Time {
	now := time.Now()
	if uc.Clock != nil {
		now = uc.Clock.Now()
	}
	return now.UTC().Truncate(time.Millisecond)
}

func (uc CreateShareUseCase) maxAttempts() int {
	if uc.MaxAttempts <= 0 {
		return DefaultMaxSlugAttempts
	}
	return uc.MaxAttempts
}

func normalizePayload(raw json.RawMessage) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || !json.Valid(trimmed) {
		return nil, false
	}
	return append(json.RawMessage(nil), trimmed...), true
}
