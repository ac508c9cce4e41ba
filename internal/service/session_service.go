// Package service binds authorization to the session registry and message
// lifecycle. It is the single place deciding who may do what.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"consult-chat/internal/apperrors"
	"consult-chat/internal/identity"
	"consult-chat/internal/models"
	"consult-chat/internal/observability"
	"consult-chat/internal/repositories"
	"consult-chat/internal/telemetry"
)

// SessionService is the registry for requester/provider sessions: it admits
// session creation and guarantees at most one session per participant pair.
type SessionService interface {
	// CreateSession finds or creates the unique session between the token's
	// requester and the given provider. Repeated and reversed requests for
	// the same pair return the same session.
	CreateSession(ctx context.Context, providerID uuid.UUID, token string) (models.Session, error)
	// FindSession resolves the session for an unordered participant pair.
	FindSession(ctx context.Context, a, b uuid.UUID) (models.Session, error)
	// ListSessions returns the caller's sessions, either side.
	ListSessions(ctx context.Context, token string) ([]models.Session, error)
}

// SessionSvc implements SessionService against the session store and the
// identity gateway.
type SessionSvc struct {
	sessions repositories.SessionRepository
	gateway  identity.Gateway
	audit    *telemetry.Emitter
	log      zerolog.Logger
}

// NewSessionService constructs a SessionSvc.
func NewSessionService(sessions repositories.SessionRepository, gateway identity.Gateway, audit *telemetry.Emitter, log zerolog.Logger) *SessionSvc {
	return &SessionSvc{
		sessions: sessions,
		gateway:  gateway,
		audit:    audit,
		log:      log,
	}
}

// CreateSession runs the admission workflow: verify the caller, gate on the
// requester role, resolve both display names, then find-or-create. The store
// serializes concurrent creates for the same unordered pair through its
// unique pair index, so the losing creator observes the winner's session.
func (s *SessionSvc) CreateSession(ctx context.Context, providerID uuid.UUID, token string) (models.Session, error) {
	ctx, span := otel.Tracer("consult-chat/service").Start(ctx, "session.create")
	defer span.End()

	session, err := s.createSession(ctx, providerID, token)
	if err != nil {
		observability.IncSessionCreateFailure()
		return models.Session{}, err
	}
	observability.IncSessionCreated()
	return session, nil
}

func (s *SessionSvc) createSession(ctx context.Context, providerID uuid.UUID, token string) (models.Session, error) {
	caller, err := s.gateway.Verify(ctx, token)
	if err != nil {
		return models.Session{}, err
	}

	if providerID == uuid.Nil {
		return models.Session{}, apperrors.Validation("provider id must not be empty")
	}
	if caller.UserID == providerID {
		s.log.Warn().Stringer("user_id", caller.UserID).Msg("session with self rejected")
		return models.Session{}, apperrors.Validation("cannot open a session with self")
	}
	if caller.Role != identity.RoleRequester {
		s.log.Warn().Stringer("user_id", caller.UserID).Str("role", string(caller.Role)).Msg("session creation by non-requester rejected")
		return models.Session{}, apperrors.Authorization("only a requester may open a session")
	}

	providerName, err := s.gateway.ResolveDisplayName(ctx, providerID, token)
	if err != nil {
		return models.Session{}, err
	}

	// No lock is held across the gateway calls above; dedup is settled at
	// the store.
	existing, err := s.sessions.FindByParticipants(ctx, caller.UserID, providerID)
	if err == nil {
		s.log.Debug().Stringer("session_id", existing.ID).Msg("existing session returned")
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrSessionNotFound) {
		return models.Session{}, fmt.Errorf("find session: %w", err)
	}

	session := models.Session{
		ID:            uuid.New(),
		RequesterID:   caller.UserID,
		ProviderID:    providerID,
		RequesterName: caller.DisplayName,
		ProviderName:  providerName,
		CreatedAt:     time.Now().UTC(),
	}

	stored, created, err := s.sessions.CreateOrGet(ctx, session)
	if err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}
	if created {
		s.log.Info().
			Stringer("session_id", stored.ID).
			Stringer("requester_id", stored.RequesterID).
			Stringer("provider_id", stored.ProviderID).
			Msg("session created")
		s.audit.Emit(ctx, "chat.session.created", telemetry.RequestID(ctx), caller.UserID.String(), stored.ID.String(), "")
	}
	return stored, nil
}

// FindSession resolves the session for the unordered pair {a,b}.
func (s *SessionSvc) FindSession(ctx context.Context, a, b uuid.UUID) (models.Session, error) {
	session, err := s.sessions.FindByParticipants(ctx, a, b)
	if errors.Is(err, repositories.ErrSessionNotFound) {
		return models.Session{}, apperrors.NotFound("session not found")
	}
	return session, err
}

// ListSessions returns every session the verified caller participates in.
func (s *SessionSvc) ListSessions(ctx context.Context, token string) ([]models.Session, error) {
	caller, err := s.gateway.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessions.FindByEitherParticipant(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

var _ SessionService = (*SessionSvc)(nil)
