package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"consult-chat/internal/identity"
	"consult-chat/internal/models"
	"consult-chat/internal/repositories"
	"consult-chat/internal/service"
	"consult-chat/internal/telemetry"
)

type SessionRepositoryMock struct {
	mock.Mock
}

func (m *SessionRepositoryMock) CreateOrGet(ctx context.Context, session models.Session) (models.Session, bool, error) {
	args := m.Called(ctx, session)
	var stored models.Session
	if val := args.Get(0); val != nil {
		stored = val.(models.Session)
	}
	return stored, args.Bool(1), args.Error(2)
}

func (m *SessionRepositoryMock) FindByID(ctx context.Context, sessionID uuid.UUID) (models.Session, error) {
	args := m.Called(ctx, sessionID)
	var session models.Session
	if val := args.Get(0); val != nil {
		session = val.(models.Session)
	}
	return session, args.Error(1)
}

func (m *SessionRepositoryMock) FindByParticipants(ctx context.Context, a, b uuid.UUID) (models.Session, error) {
	args := m.Called(ctx, a, b)
	var session models.Session
	if val := args.Get(0); val != nil {
		session = val.(models.Session)
	}
	return session, args.Error(1)
}

func (m *SessionRepositoryMock) FindByEitherParticipant(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	args := m.Called(ctx, userID)
	var sessions []models.Session
	if val := args.Get(0); val != nil {
		sessions = val.([]models.Session)
	}
	return sessions, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Save(ctx context.Context, msg models.Message) (models.Message, error) {
	args := m.Called(ctx, msg)
	var stored models.Message
	if val := args.Get(0); val != nil {
		stored = val.(models.Message)
	}
	return stored, args.Error(1)
}

func (m *MessageRepositoryMock) FindByID(ctx context.Context, messageID uuid.UUID) (models.Message, error) {
	args := m.Called(ctx, messageID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Message, error) {
	args := m.Called(ctx, sessionID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) Update(ctx context.Context, msg models.Message) (models.Message, error) {
	args := m.Called(ctx, msg)
	var stored models.Message
	if val := args.Get(0); val != nil {
		stored = val.(models.Message)
	}
	return stored, args.Error(1)
}

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) Verify(ctx context.Context, token string) (identity.Identity, error) {
	args := m.Called(ctx, token)
	var id identity.Identity
	if val := args.Get(0); val != nil {
		id = val.(identity.Identity)
	}
	return id, args.Error(1)
}

func (m *GatewayMock) ResolveDisplayName(ctx context.Context, userID uuid.UUID, token string) (string, error) {
	args := m.Called(ctx, userID, token)
	return args.String(0), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

type SessionServiceMock struct {
	mock.Mock
}

func (m *SessionServiceMock) CreateSession(ctx context.Context, providerID uuid.UUID, token string) (models.Session, error) {
	args := m.Called(ctx, providerID, token)
	var session models.Session
	if val := args.Get(0); val != nil {
		session = val.(models.Session)
	}
	return session, args.Error(1)
}

func (m *SessionServiceMock) FindSession(ctx context.Context, a, b uuid.UUID) (models.Session, error) {
	args := m.Called(ctx, a, b)
	var session models.Session
	if val := args.Get(0); val != nil {
		session = val.(models.Session)
	}
	return session, args.Error(1)
}

func (m *SessionServiceMock) ListSessions(ctx context.Context, token string) ([]models.Session, error) {
	args := m.Called(ctx, token)
	var sessions []models.Session
	if val := args.Get(0); val != nil {
		sessions = val.([]models.Session)
	}
	return sessions, args.Error(1)
}

type ChatServiceMock struct {
	mock.Mock
}

func (m *ChatServiceMock) Send(ctx context.Context, sessionID uuid.UUID, content, token string) (models.Message, error) {
	args := m.Called(ctx, sessionID, content, token)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *ChatServiceMock) Fetch(ctx context.Context, sessionID uuid.UUID, token string) (models.Session, []models.Message, error) {
	args := m.Called(ctx, sessionID, token)
	var session models.Session
	if val := args.Get(0); val != nil {
		session = val.(models.Session)
	}
	var msgs []models.Message
	if val := args.Get(1); val != nil {
		msgs = val.([]models.Message)
	}
	return session, msgs, args.Error(2)
}

func (m *ChatServiceMock) Edit(ctx context.Context, messageID uuid.UUID, newContent, token string) (models.Message, error) {
	args := m.Called(ctx, messageID, newContent, token)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *ChatServiceMock) Delete(ctx context.Context, messageID uuid.UUID, token string) (models.Message, error) {
	args := m.Called(ctx, messageID, token)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

var _ repositories.SessionRepository = (*SessionRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ identity.Gateway = (*GatewayMock)(nil)
var _ telemetry.Publisher = (*PublisherMock)(nil)
var _ service.SessionService = (*SessionServiceMock)(nil)
var _ service.ChatService = (*ChatServiceMock)(nil)
