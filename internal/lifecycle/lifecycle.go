// Package lifecycle enforces the per-message state machine. A message moves
// Normal -> Edited -> Deleted, where Normal may also go straight to Deleted
// and Deleted is terminal. The state is derived from the persisted flags,
// never stored as its own column.
package lifecycle

import (
	"strings"
	"time"

	"consult-chat/internal/apperrors"
	"consult-chat/internal/models"
)

// DeletionMarker replaces the content of a deleted message.
const DeletionMarker = "This message has been deleted"

// State is the lifecycle variant of a message.
type State int

const (
	StateNormal State = iota
	StateEdited
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateEdited:
		return "edited"
	case StateDeleted:
		return "deleted"
	default:
		return "normal"
	}
}

// StateOf derives the lifecycle variant from the message's flags.
func StateOf(m *models.Message) State {
	switch {
	case m.Deleted:
		return StateDeleted
	case m.Edited:
		return StateEdited
	default:
		return StateNormal
	}
}

// Edit replaces the message content and marks it edited. Legal from Normal
// and Edited; editing an already edited message simply updates content and
// edit time again. A rejected edit leaves the message untouched.
func Edit(m *models.Message, newContent string) error {
	if strings.TrimSpace(newContent) == "" {
		return apperrors.Validation("message content must not be empty")
	}
	if StateOf(m) == StateDeleted {
		return apperrors.InvalidState("message is deleted and cannot be edited")
	}

	now := time.Now().UTC()
	m.Content = newContent
	m.Edited = true
	m.EditedAt = &now
	return nil
}

// Delete replaces the content with the deletion marker and marks the message
// deleted. Legal from Normal and Edited; Deleted is terminal.
func Delete(m *models.Message) error {
	if StateOf(m) == StateDeleted {
		return apperrors.InvalidState("message is already deleted")
	}

	m.Content = DeletionMarker
	m.Deleted = true
	return nil
}
