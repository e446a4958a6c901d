// Package dialog drives the guided voice conversation: language selection,
// the vision check, feature navigation, section sub-dialogues, and the
// voice transfer flow. Each phase is a prompt/listen/interpret cycle with a
// shared retry budget; exhausting the budget hands control back to manual
// navigation.
package dialog

import (
	"time"

	"github.com/google/uuid"

	"github.com/maratech/voxguide/internal/i18n"
)

// Phase names one stage of the dialogue.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseLanguage    Phase = "language"
	PhaseVision      Phase = "vision"
	PhaseFeatures    Phase = "features"
	PhaseSection     Phase = "section"
	PhaseTransaction Phase = "transaction"
	PhaseManual      Phase = "manual"
)

// Session is one user's dialogue state. It lives on the controller
// goroutine; only the controller mutates it.
type Session struct {
	ID        string
	Lang      i18n.Language
	Phase     Phase
	StartedAt time.Time

	// VisionDone is set once the vision check ran (or was skipped), so
	// the flow never repeats it within a session.
	VisionDone bool
	// VisionTier holds the last graded assessment, empty if none.
	VisionTier string
	// ActiveFeature is the section the user is inside, empty on the
	// main menu.
	ActiveFeature string

	// retries is the shared budget for the current phase. It resets on
	// every phase entry.
	retries int
}

// NewSession starts a session in the default language, phase idle.
func NewSession(lang i18n.Language) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Lang:      lang,
		Phase:     PhaseIdle,
		StartedAt: time.Now(),
	}
}

// Retries reports how many retries the current phase has consumed.
func (s *Session) Retries() int { return s.retries }
