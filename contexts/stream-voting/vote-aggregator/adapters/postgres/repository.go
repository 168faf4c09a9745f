package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"beastypage/contexts/stream-voting/vote-aggregator/domain/entities"
	domainerrors "beastypage/contexts/stream-voting/vote-aggregator/domain/errors"
	"beastypage/contexts/stream-voting/vote-aggregator/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

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

func (r *Repository) InsertVote(ctx context.Context, vote entities.Vote) (string, error) {
	row := voteModelFromEntity(vote)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Omit("seq").Create(&row).Error; err != nil {
		if isDuplicateVote(err) {
			return "", domainerrors.ErrDuplicateVote
		}
		return "", r.logError("vote_repo_insert_failed", err,
			"session_id", row.SessionID,
			"step_id", row.StepID,
		)
	}
	return row.ID, nil
}

func (r *Repository) GetVote(ctx context.Context, voteID string) (entities.Vote, bool, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voteID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, false, nil
		}
		return entities.Vote{}, false, r.logError("vote_repo_get_failed", err,
			"vote_id", strings.TrimSpace(voteID),
		)
	}
	return row.toEntity(), true, nil
}

// ListVotesBySession returns rows in insertion order; seq is a bigserial.
func (r *Repository) ListVotesBySession(ctx context.Context, sessionID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("vote_repo_list_by_session_failed", err,
			"session_id", sessionID,
		)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "stream-voting/vote-aggregator",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("vote repository operation failed", fields...)
	return err
}

type voteModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Seq        int64     `gorm:"column:seq;autoIncrement"`
	SessionID  string    `gorm:"column:session_id"`
	StepID     string    `gorm:"column:step_id"`
	OptionKey  string    `gorm:"column:option_key"`
	OptionMeta []byte    `gorm:"column:option_meta;type:jsonb"`
	VotedBy    *string   `gorm:"column:voted_by"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		ID:        strings.TrimSpace(vote.VoteID),
		SessionID: vote.SessionID,
		StepID:    vote.StepID,
		OptionKey: vote.OptionKey,
		CreatedAt: vote.CreatedAt.UTC(),
		UpdatedAt: vote.UpdatedAt.UTC(),
	}
	if len(vote.OptionMeta) > 0 {
		row.OptionMeta = append([]byte(nil), vote.OptionMeta...)
	}
	if votedBy := strings.TrimSpace(vote.VotedBy); votedBy != "" {
		row.VotedBy = &votedBy
	}
	return row
}

func (m voteModel) toEntity() entities.Vote {
	vote := entities.Vote{
		VoteID:    m.ID,
		SessionID: m.SessionID,
		StepID:    m.StepID,
		OptionKey: m.OptionKey,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	if len(m.OptionMeta) > 0 {
		vote.OptionMeta = append([]byte(nil), m.OptionMeta...)
	}
	if m.VotedBy != nil {
		vote.VotedBy = *m.VotedBy
	}
	return vote
}

func isDuplicateVote(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
