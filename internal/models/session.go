package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the durable pairing of a requester and a provider that scopes
// a sequence of messages. Participant identities are fixed at creation.
type Session struct {
	ID            uuid.UUID `db:"id" json:"id"`
	RequesterID   uuid.UUID `db:"requester_id" json:"requester_id"`
	ProviderID    uuid.UUID `db:"provider_id" json:"provider_id"`
	RequesterName string    `db:"requester_name" json:"requester_name"`
	ProviderName  string    `db:"provider_name" json:"provider_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// HasParticipant reports whether the user is one of the session's two sides.
func (s Session) HasParticipant(userID uuid.UUID) bool {
	return s.RequesterID == userID || s.ProviderID == userID
}
