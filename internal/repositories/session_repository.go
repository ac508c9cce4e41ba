package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"consult-chat/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository abstracts session persistence.
type SessionRepository interface {
	// CreateOrGet inserts the session unless one already exists for the
	// unordered participant pair; the stored session is returned either way,
	// with created reporting whether this call inserted it.
	CreateOrGet(ctx context.Context, session models.Session) (stored models.Session, created bool, err error)
	FindByID(ctx context.Context, sessionID uuid.UUID) (models.Session, error)
	// FindByParticipants resolves the unordered pair {a,b}: (a,b) and (b,a)
	// find the same session.
	FindByParticipants(ctx context.Context, a, b uuid.UUID) (models.Session, error)
	FindByEitherParticipant(ctx context.Context, userID uuid.UUID) ([]models.Session, error)
}

// SessionRepo is a sqlx implementation of SessionRepository.
type SessionRepo struct {
	db *sqlx.DB
}

// NewSessionRepo constructs a SessionRepo.
func NewSessionRepo(db *sqlx.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionColumns = `id, requester_id, provider_id, requester_name, provider_name, created_at`

// CreateOrGet relies on the unique index over the normalized participant
// pair: the losing side of a concurrent insert hits the conflict, inserts
// nothing and re-fetches the winner's row.
func (r *SessionRepo) CreateOrGet(ctx context.Context, session models.Session) (models.Session, bool, error) {
	var stored models.Session
	err := r.db.QueryRowxContext(ctx, `INSERT INTO sessions (id, requester_id, provider_id, requester_name, provider_name, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT DO NOTHING
        RETURNING `+sessionColumns,
		session.ID, session.RequesterID, session.ProviderID, session.RequesterName, session.ProviderName, session.CreatedAt).
		StructScan(&stored)
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, false, err
	}

	existing, err := r.FindByParticipants(ctx, session.RequesterID, session.ProviderID)
	if err != nil {
		return models.Session{}, false, err
	}
	return existing, false, nil
}

// FindByID fetches a session by id.
func (r *SessionRepo) FindByID(ctx context.Context, sessionID uuid.UUID) (models.Session, error) {
	var session models.Session
	err := r.db.GetContext(ctx, &session, `SELECT `+sessionColumns+` FROM sessions WHERE id=$1`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	return session, err
}

// FindByParticipants resolves the unique session for an unordered pair.
func (r *SessionRepo) FindByParticipants(ctx context.Context, a, b uuid.UUID) (models.Session, error) {
	var session models.Session
	err := r.db.GetContext(ctx, &session, `SELECT `+sessionColumns+` FROM sessions
        WHERE (requester_id=$1 AND provider_id=$2) OR (requester_id=$2 AND provider_id=$1)`, a, b)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	return session, err
}

// FindByEitherParticipant lists sessions where the user appears on either side.
func (r *SessionRepo) FindByEitherParticipant(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.SelectContext(ctx, &sessions, `SELECT `+sessionColumns+` FROM sessions
        WHERE requester_id=$1 OR provider_id=$1
        ORDER BY created_at DESC`, userID)
	return sessions, err
}

var _ SessionRepository = (*SessionRepo)(nil)
