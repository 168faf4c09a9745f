package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"beastypage/contexts/sharing/slug-registry/domain/entities"
	domainerrors "beastypage/contexts/sharing/slug-registry/domain/errors"
	"beastypage/contexts/sharing/slug-registry/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const shareSlugConstraint = "share_records_slug_key"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// InsertShare relies on the UNIQUE(slug) constraint from the
// create_share_records migration to reject duplicates atomically.
func (r *Repository) InsertShare(ctx context.Context, record entities.ShareRecord) (string, error) {
	row := shareModelFromEntity(record)
	row.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isSlugViolation(err) {
			return "", domainerrors.ErrSlugTaken
		}
		return "", r.logError("share_repo_insert_failed", err,
			"slug", row.Slug,
		)
	}
	return row.ID, nil
}

func (r *Repository) GetShareBySlug(ctx context.Context, slug string) (entities.ShareRecord, bool, error) {
	var row shareModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ShareRecord{}, false, nil
		}
		return entities.ShareRecord{}, false, r.logError("share_repo_get_by_slug_failed", err,
			"slug", slug,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetShareByID(ctx context.Context, id string) (entities.ShareRecord, bool, error) {
	var row shareModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(id)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ShareRecord{}, false, nil
		}
		return entities.ShareRecord{}, false, r.logError("share_repo_get_by_id_failed", err,
			"share_id", strings.TrimSpace(id),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "sharing/slug-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("share repository operation failed", fields...)
	return err
}

type shareModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Slug      string    `gorm:"column:slug"`
	Payload   []byte    `gorm:"column:payload;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (shareModel) TableName() string {
	return "share_records"
}

func shareModelFromEntity(record entities.ShareRecord) shareModel {
	row := shareModel{
		ID:        strings.TrimSpace(record.ID),
		Slug:      record.Slug,
		Payload:   append([]byte(nil), record.Payload...),
		CreatedAt: record.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	return row
}

func (m shareModel) toEntity() entities.ShareRecord {
	return entities.ShareRecord{
		ID:        m.ID,
		Slug:      m.Slug,
		Payload:   append([]byte(nil), m.Payload...),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// isSlugViolation matches unique violations on the slug index. A violation
// without a constraint name is still treated as a slug clash since ids are
// random UUIDs.
func isSlugViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return pgErr.ConstraintName == "" || pgErr.ConstraintName == shareSlugConstraint
}

var _ ports.ShareRepository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
