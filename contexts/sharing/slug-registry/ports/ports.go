package ports

import (
	"context"
	"time"

	"beastypage/contexts/sharing/slug-registry/domain/entities"
)

const (
	SlugAttemptCreated   = "created"
	SlugAttemptCollision = "collision"
	SlugAttemptRace      = "race"

	ShareModeGenerated = "generated"
	ShareModeRequested = "requested"
)

// ShareRepository is the durable share store. InsertShare must fail with
// ErrSlugTaken when the slug already exists; that check has to be atomic with
// the insert.
type ShareRepository interface {
	InsertShare(ctx context.Context, record entities.ShareRecord) (string, error)
	GetShareBySlug(ctx context.Context, slug string) (entities.ShareRecord, bool, error)
	GetShareByID(ctx context.Context, id string) (entities.ShareRecord, bool, error)
}

type SlugGenerator interface {
	NewSlug() (string, error)
}

type Clock interface {
	Now() time.Time
}

type Metrics interface {
	SlugAttempt(outcome string)
	ShareCreated(mode string)
	SlugExhausted()
}
