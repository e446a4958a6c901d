package protocol

import "time"

// Gesture is published by the front-end when the user first clicks or
// touches the page, unlocking audio and starting the dialogue.
type Gesture struct {
	SessionID string    `json:"session_id,omitempty"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Control is a manual button action from the front-end. Manual controls
// remain operable regardless of the voice dialogue state.
type Control struct {
	SessionID string    `json:"session_id,omitempty"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Status is the textual status line mirrored next to every spoken message.
type Status struct {
	SessionID string    `json:"session_id"`
	Text      string    `json:"text"`
	Spoken    bool      `json:"spoken"`
	Timestamp time.Time `json:"timestamp"`
}

// PhaseChange announces a dialogue phase transition.
type PhaseChange struct {
	SessionID string    `json:"session_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript echoes what the recognizer heard.
type Transcript struct {
	SessionID  string    `json:"session_id"`
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// BalanceUpdate is published whenever the ledger balance changes.
type BalanceUpdate struct {
	SessionID string    `json:"session_id,omitempty"`
	Balance   float64   `json:"balance"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionEvent is published when a voice transaction commits.
type TransactionEvent struct {
	SessionID   string    `json:"session_id,omitempty"`
	ID          int       `json:"id"`
	Recipient   string    `json:"recipient"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	NewBalance  float64   `json:"new_balance"`
	Timestamp   time.Time `json:"timestamp"`
}

const (
	SubjectUIGesture       = "ui.gesture"
	SubjectUIControlPrefix = "ui.control"
	SubjectDialogStatus    = "dialog.status"
	SubjectDialogPhase     = "dialog.phase"
	SubjectDialogHeard     = "dialog.transcript"
	SubjectBankBalance     = "bank.balance"
	SubjectBankTransaction = "bank.transaction"
)
