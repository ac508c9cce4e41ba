package telemetry_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"consult-chat/internal/mocks"
	"consult-chat/internal/telemetry"
)

func TestEmitPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := telemetry.NewEmitter(publisher, "consult-chat", "test", zerolog.Nop())

	publisher.On("Publish", mock.Anything, "chat.message.sent", mock.MatchedBy(func(e telemetry.Envelope) bool {
		return e.EventType == "chat.message.sent" &&
			e.Service == "consult-chat" &&
			e.RequestID == "req-1" &&
			e.SessionID == "sess-1" &&
			e.MessageID == "msg-1" &&
			e.SchemaVersion == 1
	})).Return(nil).Once()

	emitter.Emit(context.Background(), "chat.message.sent", "req-1", "actor-1", "sess-1", "msg-1")

	publisher.AssertExpectations(t)
}

func TestEmitNilEmitterIsSafe(t *testing.T) {
	var emitter *telemetry.Emitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), "chat.session.created", "", "", "", "")
	})
}

func TestEmitPublishFailureDoesNotPropagate(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := telemetry.NewEmitter(publisher, "consult-chat", "test", zerolog.Nop())

	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), "chat.message.deleted", "req-2", "", "", "")
	})
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := telemetry.WithRequestID(context.Background(), "req-99")
	assert.Equal(t, "req-99", telemetry.RequestID(ctx))
	assert.Equal(t, "", telemetry.RequestID(context.Background()))
}
