package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maratech/voxguide/internal/banking"
	"github.com/maratech/voxguide/internal/eventstore"
	"github.com/maratech/voxguide/internal/i18n"
	"github.com/maratech/voxguide/internal/match"
	"github.com/maratech/voxguide/internal/protocol"
)

// amountAttempts bounds the amount step on its own, independent of the
// phase budget: three unusable amounts in a row abandon the transfer and
// resume the section dialogue.
const amountAttempts = 3

// runTransaction walks the four-step voice transfer: recipient, amount,
// description, confirmation. OutcomeOK means the flow ended (committed,
// canceled, or abandoned) and the section resumes.
func (c *Controller) runTransaction(ctx context.Context, sess *Session) Outcome {
	c.engine.SetPhase(ctx, sess, PhaseTransaction)

	var recipient string
	out := c.engine.Cycle(ctx, sess,
		i18n.T(sess.Lang, "tx_ask_recipient"),
		i18n.T(sess.Lang, "tx_ask_recipient"),
		func(heard string) bool {
			heard = strings.TrimSpace(heard)
			if heard == "" {
				return false
			}
			recipient = heard
			return true
		})
	if out != OutcomeOK {
		return out
	}
	c.engine.Pause(ctx, c.cfg.StepDelayMS)

	amount, out := c.askAmount(ctx, sess, recipient)
	if out != OutcomeOK {
		return out
	}
	if amount == 0 {
		// Abandoned after repeated unusable amounts.
		if err := c.engine.SpeakKey(ctx, sess, "tx_abandoned"); err != nil {
			return OutcomeFallback
		}
		return OutcomeOK
	}
	c.engine.Pause(ctx, c.cfg.StepDelayMS)

	var description string
	out = c.engine.Cycle(ctx, sess,
		i18n.T(sess.Lang, "tx_ask_description"),
		i18n.T(sess.Lang, "tx_ask_description"),
		func(heard string) bool {
			heard = strings.TrimSpace(heard)
			if heard == "" {
				return false
			}
			description = heard
			return true
		})
	if out != OutcomeOK {
		return out
	}
	c.engine.Pause(ctx, c.cfg.StepDelayMS)

	confirmed := false
	out = c.engine.Cycle(ctx, sess,
		fmt.Sprintf(i18n.T(sess.Lang, "tx_summary"), amount, recipient, description),
		i18n.T(sess.Lang, "tx_say_confirm_cancel"),
		func(heard string) bool {
			switch {
			case match.AnyOf(heard, i18n.ConfirmWords(sess.Lang)):
				confirmed = true
				return true
			case match.AnyOf(heard, i18n.CancelWords(sess.Lang)):
				return true
			}
			return false
		})
	if out != OutcomeOK {
		return out
	}
	if !confirmed {
		c.engine.CancelSpeech()
		if err := c.engine.SpeakKey(ctx, sess, "tx_canceled"); err != nil {
			return OutcomeFallback
		}
		return OutcomeOK
	}
	return c.commitTransfer(ctx, sess, recipient, amount, description)
}

// askAmount prompts for the amount with its own bounded retry loop. A zero
// amount with OutcomeOK signals abandonment.
func (c *Controller) askAmount(ctx context.Context, sess *Session, recipient string) (float64, Outcome) {
	prompt := fmt.Sprintf(i18n.T(sess.Lang, "tx_ask_amount"), recipient)
	for attempt := 0; attempt < amountAttempts; attempt++ {
		var heardAmount float64
		out := c.engine.Cycle(ctx, sess, prompt,
			fmt.Sprintf(i18n.T(sess.Lang, "tx_ask_amount"), recipient),
			func(heard string) bool {
				if strings.TrimSpace(heard) == "" {
					return false
				}
				heardAmount, _ = banking.ExtractAmount(heard)
				return true
			})
		if out != OutcomeOK {
			return 0, out
		}
		if heardAmount > 0 {
			return heardAmount, OutcomeOK
		}
		prompt = i18n.T(sess.Lang, "tx_amount_not_understood")
	}
	return 0, OutcomeOK
}

func (c *Controller) commitTransfer(ctx context.Context, sess *Session, recipient string, amount float64, description string) Outcome {
	rec, err := c.ledger.Execute(recipient, amount, description)
	if err != nil {
		if errors.Is(err, banking.ErrInsufficientFunds) {
			c.metrics.TransferRejected()
			if err := c.engine.Speak(ctx, sess, fmt.Sprintf(i18n.T(sess.Lang, "tx_insufficient_funds"), c.ledger.Balance())); err != nil {
				return OutcomeFallback
			}
			return OutcomeOK
		}
		c.logger.Error("transfer failed", slog.String("error", err.Error()))
		if err := c.engine.SpeakKey(ctx, sess, "tx_canceled"); err != nil {
			return OutcomeFallback
		}
		return OutcomeOK
	}

	c.metrics.TransferCommitted()
	newBalance := c.ledger.Balance()
	c.emitter.Balance(sess.ID, newBalance)
	c.emitter.Transaction(sess.ID, protocol.TransactionEvent{
		ID:          rec.ID,
		Recipient:   recipient,
		Amount:      amount,
		Description: description,
		NewBalance:  newBalance,
	})
	c.recordTransfer(ctx, sess, rec)

	if c.backend != nil {
		// Local ledger is authoritative; mirror to the backend without
		// holding up the conversation.
		go func(rec banking.Record) {
			syncCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			c.backend.Sync(syncCtx, rec)
		}(rec)
	}

	if err := c.engine.Speak(ctx, sess, fmt.Sprintf(i18n.T(sess.Lang, "tx_success"), amount, recipient, newBalance)); err != nil {
		return OutcomeFallback
	}
	c.engine.Pause(ctx, c.cfg.SuccessDelayMS)
	return OutcomeOK
}

func (c *Controller) recordTransfer(ctx context.Context, sess *Session, rec banking.Record) {
	if c.store == nil {
		return
	}
	_ = c.store.AppendEvent(ctx, eventstore.Event{
		SessionID: sess.ID,
		Lang:      string(sess.Lang),
		Phase:     string(sess.Phase),
		Type:      eventstore.TypeTransfer,
		Payload:   []byte(rec.Description),
	})
}
