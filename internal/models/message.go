package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat message owned by a session. Deletion is soft:
// the row stays and its content is replaced with a fixed marker.
type Message struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	SessionID uuid.UUID  `db:"session_id" json:"session_id"`
	SenderID  uuid.UUID  `db:"sender_id" json:"sender_id"`
	Content   string     `db:"content" json:"content"`
	Edited    bool       `db:"edited" json:"edited"`
	Deleted   bool       `db:"deleted" json:"deleted"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	EditedAt  *time.Time `db:"edited_at" json:"edited_at,omitempty"`
}
