package dialog

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/maratech/voxguide/internal/bus"
	"github.com/maratech/voxguide/internal/protocol"
)

// Emitter mirrors dialogue activity to the front-end. Every spoken message
// has a textual twin so the UI can render what was said.
type Emitter interface {
	Status(sessionID, text string, spoken bool)
	Phase(sessionID string, from, to Phase)
	Transcript(sessionID, text string, confidence float64)
	Balance(sessionID string, balance float64)
	Transaction(sessionID string, evt protocol.TransactionEvent)
}

// busEmitter publishes over NATS. Publish failures are logged and dropped:
// the dialogue never blocks on the UI mirror.
type busEmitter struct {
	bus *bus.Client
	log *slog.Logger
}

func NewBusEmitter(client *bus.Client, logger *slog.Logger) Emitter {
	return &busEmitter{bus: client, log: logger.With(slog.String("component", "dialog.emitter"))}
}

func (e *busEmitter) publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		e.log.Error("marshal payload", slog.String("subject", subject), slog.String("error", err.Error()))
		return
	}
	if err := e.bus.Conn().Publish(subject, data); err != nil {
		e.log.Warn("publish failed", slog.String("subject", subject), slog.String("error", err.Error()))
	}
}

func (e *busEmitter) Status(sessionID, text string, spoken bool) {
	e.publish(protocol.SubjectDialogStatus, protocol.Status{
		SessionID: sessionID,
		Text:      text,
		Spoken:    spoken,
		Timestamp: time.Now().UTC(),
	})
}

func (e *busEmitter) Phase(sessionID string, from, to Phase) {
	e.publish(protocol.SubjectDialogPhase, protocol.PhaseChange{
		SessionID: sessionID,
		From:      string(from),
		To:        string(to),
		Timestamp: time.Now().UTC(),
	})
}

func (e *busEmitter) Transcript(sessionID, text string, confidence float64) {
	e.publish(protocol.SubjectDialogHeard, protocol.Transcript{
		SessionID:  sessionID,
		Text:       text,
		Confidence: confidence,
		Timestamp:  time.Now().UTC(),
	})
}

func (e *busEmitter) Balance(sessionID string, balance float64) {
	e.publish(protocol.SubjectBankBalance, protocol.BalanceUpdate{
		SessionID: sessionID,
		Balance:   balance,
		Timestamp: time.Now().UTC(),
	})
}

func (e *busEmitter) Transaction(sessionID string, evt protocol.TransactionEvent) {
	evt.SessionID = sessionID
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	e.publish(protocol.SubjectBankTransaction, evt)
}

// NopEmitter discards everything. Used when the bus is disabled and in
// tests that only care about spoken output.
type NopEmitter struct{}

func (NopEmitter) Status(string, string, bool)                   {}
func (NopEmitter) Phase(string, Phase, Phase)                    {}
func (NopEmitter) Transcript(string, string, float64)            {}
func (NopEmitter) Balance(string, float64)                       {}
func (NopEmitter) Transaction(string, protocol.TransactionEvent) {}
