package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"consult-chat/internal/apperrors"
	"consult-chat/internal/identity"
	"consult-chat/internal/lifecycle"
	"consult-chat/internal/models"
	"consult-chat/internal/observability"
	"consult-chat/internal/repositories"
	"consult-chat/internal/telemetry"
)

// ChatService orchestrates message operations: caller resolution, per-session
// participant checks, sender-only mutation checks and lifecycle transitions.
type ChatService interface {
	Send(ctx context.Context, sessionID uuid.UUID, content, token string) (models.Message, error)
	// Fetch returns the session metadata together with its messages in
	// insertion order.
	Fetch(ctx context.Context, sessionID uuid.UUID, token string) (models.Session, []models.Message, error)
	Edit(ctx context.Context, messageID uuid.UUID, newContent, token string) (models.Message, error)
	Delete(ctx context.Context, messageID uuid.UUID, token string) (models.Message, error)
}

// ChatSvc implements ChatService.
type ChatSvc struct {
	sessions repositories.SessionRepository
	messages repositories.MessageRepository
	gateway  identity.Gateway
	audit    *telemetry.Emitter
	log      zerolog.Logger
}

// NewChatService constructs a ChatSvc.
func NewChatService(sessions repositories.SessionRepository, messages repositories.MessageRepository, gateway identity.Gateway, audit *telemetry.Emitter, log zerolog.Logger) *ChatSvc {
	return &ChatSvc{
		sessions: sessions,
		messages: messages,
		gateway:  gateway,
		audit:    audit,
		log:      log,
	}
}

// Send stores a new message from the verified caller into the session.
func (s *ChatSvc) Send(ctx context.Context, sessionID uuid.UUID, content, token string) (models.Message, error) {
	caller, err := s.gateway.Verify(ctx, token)
	if err != nil {
		observability.IncMessageOp("send", err)
		return models.Message{}, err
	}

	msg, err := s.send(ctx, sessionID, content, caller)
	observability.IncMessageOp("send", err)
	if err != nil {
		return models.Message{}, err
	}

	s.audit.Emit(ctx, "chat.message.sent", telemetry.RequestID(ctx), caller.UserID.String(), sessionID.String(), msg.ID.String())
	return msg, nil
}

func (s *ChatSvc) send(ctx context.Context, sessionID uuid.UUID, content string, caller identity.Identity) (models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return models.Message{}, apperrors.Validation("message content must not be empty")
	}

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return models.Message{}, err
	}
	if !session.HasParticipant(caller.UserID) {
		return models.Message{}, apperrors.Authorization("caller is not a session participant")
	}

	msg := models.Message{
		ID:        uuid.New(),
		SessionID: session.ID,
		SenderID:  caller.UserID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	stored, err := s.messages.Save(ctx, msg)
	if err != nil {
		return models.Message{}, fmt.Errorf("save message: %w", err)
	}

	s.log.Debug().Stringer("session_id", session.ID).Stringer("message_id", stored.ID).Msg("message sent")
	return stored, nil
}

// Fetch loads the session and its messages for a participant.
func (s *ChatSvc) Fetch(ctx context.Context, sessionID uuid.UUID, token string) (models.Session, []models.Message, error) {
	start := time.Now()
	defer func() {
		observability.ObserveFetchDuration(time.Since(start))
	}()

	caller, err := s.gateway.Verify(ctx, token)
	if err != nil {
		return models.Session{}, nil, err
	}

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, nil, err
	}
	if !session.HasParticipant(caller.UserID) {
		return models.Session{}, nil, apperrors.Authorization("caller is not a session participant")
	}

	msgs, err := s.messages.FindBySession(ctx, sessionID)
	if err != nil {
		return models.Session{}, nil, fmt.Errorf("load messages: %w", err)
	}
	return session, msgs, nil
}

// Edit applies the edit transition to a message owned by the caller.
func (s *ChatSvc) Edit(ctx context.Context, messageID uuid.UUID, newContent, token string) (models.Message, error) {
	msg, err := s.mutate(ctx, messageID, token, "only the sender may edit", func(m *models.Message) error {
		return lifecycle.Edit(m, newContent)
	})
	observability.IncMessageOp("edit", err)
	if err != nil {
		return models.Message{}, err
	}

	s.audit.Emit(ctx, "chat.message.edited", telemetry.RequestID(ctx), msg.SenderID.String(), msg.SessionID.String(), msg.ID.String())
	return msg, nil
}

// Delete applies the delete transition to a message owned by the caller.
func (s *ChatSvc) Delete(ctx context.Context, messageID uuid.UUID, token string) (models.Message, error) {
	msg, err := s.mutate(ctx, messageID, token, "only the sender may delete", func(m *models.Message) error {
		return lifecycle.Delete(m)
	})
	observability.IncMessageOp("delete", err)
	if err != nil {
		return models.Message{}, err
	}

	s.audit.Emit(ctx, "chat.message.deleted", telemetry.RequestID(ctx), msg.SenderID.String(), msg.SessionID.String(), msg.ID.String())
	return msg, nil
}

// mutate reloads the message, checks sender ownership, applies the
// transition and persists it. The guarded store update means a transition
// computed here can still lose against a concurrent deletion; that surfaces
// as the same invalid-state rejection a direct edit-after-delete gets.
func (s *ChatSvc) mutate(ctx context.Context, messageID uuid.UUID, token, denyReason string, transition func(*models.Message) error) (models.Message, error) {
	caller, err := s.gateway.Verify(ctx, token)
	if err != nil {
		return models.Message{}, err
	}

	msg, err := s.messages.FindByID(ctx, messageID)
	if errors.Is(err, repositories.ErrMessageNotFound) {
		return models.Message{}, apperrors.NotFound("message not found")
	}
	if err != nil {
		return models.Message{}, fmt.Errorf("load message: %w", err)
	}

	if msg.SenderID != caller.UserID {
		return models.Message{}, apperrors.Authorization(denyReason)
	}

	if err := transition(&msg); err != nil {
		return models.Message{}, err
	}

	stored, err := s.messages.Update(ctx, msg)
	switch {
	case errors.Is(err, repositories.ErrMessageDeleted):
		return models.Message{}, apperrors.InvalidState("message is already deleted")
	case errors.Is(err, repositories.ErrMessageNotFound):
		return models.Message{}, apperrors.NotFound("message not found")
	case err != nil:
		return models.Message{}, fmt.Errorf("update message: %w", err)
	}
	return stored, nil
}

func (s *ChatSvc) loadSession(ctx context.Context, sessionID uuid.UUID) (models.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, repositories.ErrSessionNotFound) {
		return models.Session{}, apperrors.NotFound("session not found")
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

var _ ChatService = (*ChatSvc)(nil)
