package telemetry

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Publisher delivers audit events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// Emitter builds audit envelopes for chat operations and hands them to the
// publisher. A nil Emitter or publisher drops events silently.
type Emitter struct {
	publisher   Publisher
	service     string
	environment string
	log         zerolog.Logger
}

// Envelope is the wire format of an audit event.
type Envelope struct {
	SchemaVersion int    `json:"schema_version"`
	EventType     string `json:"event_type"`
	OccurredAt    string `json:"occurred_at"`
	Service       string `json:"service"`
	Environment   string `json:"environment"`
	RequestID     string `json:"request_id"`
	ActorID       string `json:"actor_id,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	MessageID     string `json:"message_id,omitempty"`
}

// NewEmitter constructs an Emitter.
func NewEmitter(publisher Publisher, service, environment string, log zerolog.Logger) *Emitter {
	return &Emitter{
		publisher:   publisher,
		service:     service,
		environment: environment,
		log:         log,
	}
}

// Emit publishes one audit event. The event type doubles as the routing key,
// e.g. "chat.session.created" or "chat.message.deleted".
func (e *Emitter) Emit(ctx context.Context, eventType, requestID, actorID, sessionID, messageID string) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := Envelope{
		SchemaVersion: 1,
		EventType:     eventType,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     requestID,
		ActorID:       actorID,
		SessionID:     sessionID,
		MessageID:     messageID,
	}

	if err := e.publisher.Publish(ctx, eventType, envelope); err != nil {
		e.log.Warn().Err(err).Str("event_type", eventType).Msg("audit publish failed")
	}
}
