package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"consult-chat/internal/models"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	// ErrMessageDeleted is returned when an update loses against a deletion
	// already persisted by a concurrent call.
	ErrMessageDeleted = errors.New("message already deleted")
)

// MessageRepository abstracts message persistence.
type MessageRepository interface {
	Save(ctx context.Context, msg models.Message) (models.Message, error)
	FindByID(ctx context.Context, messageID uuid.UUID) (models.Message, error)
	// FindBySession returns the session's messages in insertion order.
	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Message, error)
	// Update persists an edit or delete transition. The write is guarded so
	// it never overwrites a row that is already deleted.
	Update(ctx context.Context, msg models.Message) (models.Message, error)
}

// MessageRepo is a sqlx implementation of MessageRepository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

const messageColumns = `id, session_id, sender_id, content, edited, deleted, created_at, edited_at`

// Save inserts a new message.
func (r *MessageRepo) Save(ctx context.Context, msg models.Message) (models.Message, error) {
	var stored models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (id, session_id, sender_id, content, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+messageColumns,
		msg.ID, msg.SessionID, msg.SenderID, msg.Content, msg.CreatedAt).
		StructScan(&stored)
	return stored, err
}

// FindByID retrieves a single message.
func (r *MessageRepo) FindByID(ctx context.Context, messageID uuid.UUID) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg, `SELECT `+messageColumns+` FROM messages WHERE id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}

// FindBySession returns the session's messages ordered by creation.
func (r *MessageRepo) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, `SELECT `+messageColumns+` FROM messages
        WHERE session_id=$1
        ORDER BY created_at ASC, id ASC`, sessionID)
	return msgs, err
}

// Update writes the message's mutable fields. The deleted guard means a
// transition computed from a stale Normal or Edited snapshot cannot clobber
// a concurrently persisted deletion: the update matches no row and the
// current row decides between not-found and already-deleted.
func (r *MessageRepo) Update(ctx context.Context, msg models.Message) (models.Message, error) {
	var stored models.Message
	err := r.db.QueryRowxContext(ctx, `UPDATE messages
        SET content=$2, edited=$3, deleted=$4, edited_at=$5
        WHERE id=$1 AND deleted=FALSE
        RETURNING `+messageColumns,
		msg.ID, msg.Content, msg.Edited, msg.Deleted, msg.EditedAt).
		StructScan(&stored)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, err
	}

	var deleted bool
	err = r.db.GetContext(ctx, &deleted, `SELECT deleted FROM messages WHERE id=$1`, msg.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	if err != nil {
		return models.Message{}, err
	}
	return models.Message{}, ErrMessageDeleted
}

var _ MessageRepository = (*MessageRepo)(nil)
