package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/maratech/voxguide/internal/config"
	"github.com/maratech/voxguide/internal/eventstore"
	"github.com/maratech/voxguide/internal/i18n"
	"github.com/maratech/voxguide/internal/speech"
)

// Outcome is how a prompt/listen cycle (or a whole phase) ended.
type Outcome int

const (
	// OutcomeOK means the interpreter accepted a transcript.
	OutcomeOK Outcome = iota
	// OutcomeFallback means the retry budget is exhausted or speech is
	// unavailable; the dialogue ends and manual controls take over.
	OutcomeFallback
	// OutcomeCanceled means the surrounding context was canceled.
	OutcomeCanceled
	// OutcomeExhausted is the lenient cycle's budget exit: the phase
	// proceeds with a default instead of abandoning the dialogue.
	OutcomeExhausted
)

// Metrics receives dialogue counters. The runtime wires an OTel
// implementation; tests use Nop.
type Metrics interface {
	SessionStarted()
	RetryConsumed(phase Phase)
	FallbackEntered(phase Phase)
	TransferCommitted()
	TransferRejected()
}

type NopMetrics struct{}

func (NopMetrics) SessionStarted()       {}
func (NopMetrics) RetryConsumed(Phase)   {}
func (NopMetrics) FallbackEntered(Phase) {}
func (NopMetrics) TransferCommitted()    {}
func (NopMetrics) TransferRejected()     {}

// Engine runs the primitive conversation cycle: speak a prompt, listen for
// an answer, let the caller interpret it, retry on failure. All engine
// methods run on the controller goroutine; one recognition is in flight at
// a time.
type Engine struct {
	cfg     config.DialogConfig
	synth   speech.Synthesizer
	recog   speech.Recognizer
	emitter Emitter
	store   *eventstore.Store
	metrics Metrics
	logger  *slog.Logger
}

func NewEngine(cfg config.DialogConfig, synth speech.Synthesizer, recog speech.Recognizer, emitter Emitter, store *eventstore.Store, metrics Metrics, logger *slog.Logger) *Engine {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if emitter == nil {
		emitter = NopEmitter{}
	}
	return &Engine{
		cfg:     cfg,
		synth:   synth,
		recog:   recog,
		emitter: emitter,
		store:   store,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "dialog.engine")),
	}
}

// Speak voices text in the session language and mirrors it as a status
// line. A dead synthesizer degrades to text-only: the status still goes
// out, and only ErrUnavailable is reported.
func (e *Engine) Speak(ctx context.Context, sess *Session, text string) error {
	e.emitter.Status(sess.ID, text, true)
	e.record(ctx, sess, eventstore.TypePrompt, text)
	err := e.synth.Speak(ctx, speech.Utterance{Text: text, Lang: sess.Lang, Rate: e.cfg.SpeakRate})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		e.logger.Warn("speak failed", slog.String("error", err.Error()))
		if errors.Is(err, speech.ErrUnavailable) {
			return err
		}
	}
	return nil
}

// SpeakKey voices a catalog entry.
func (e *Engine) SpeakKey(ctx context.Context, sess *Session, key string) error {
	return e.Speak(ctx, sess, i18n.T(sess.Lang, key))
}

// Listen captures one utterance within the configured window. The
// transcript is mirrored to the UI and recorded on the timeline.
func (e *Engine) Listen(ctx context.Context, sess *Session) (string, error) {
	listenCtx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.ListenTimeoutMS)*time.Millisecond)
	defer cancel()

	res, err := e.recog.Listen(listenCtx, sess.Lang)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			// The window elapsed, not the session.
			return "", speech.ErrNoSpeech
		}
		return "", err
	}
	e.emitter.Transcript(sess.ID, res.Text, res.Confidence)
	e.record(ctx, sess, eventstore.TypeTranscript, res.Text)
	e.logger.Debug("heard", slog.String("text", res.Text), slog.Float64("confidence", res.Confidence))
	return res.Text, nil
}

// Cycle runs one dialogue step to completion: speak prompt, listen,
// interpret, and retry with reprompt until the interpreter accepts or the
// session's retry budget runs out. The interpreter returns true to accept;
// results travel through its closure.
func (e *Engine) Cycle(ctx context.Context, sess *Session, prompt, reprompt string, interpret func(heard string) bool) Outcome {
	return e.cycle(ctx, sess, prompt, reprompt, interpret, false)
}

// CycleLenient is Cycle with a soft exit: a spent budget or a dead backend
// yields OutcomeExhausted so the phase can proceed with a default instead
// of dropping to manual controls.
func (e *Engine) CycleLenient(ctx context.Context, sess *Session, prompt, reprompt string, interpret func(heard string) bool) Outcome {
	return e.cycle(ctx, sess, prompt, reprompt, interpret, true)
}

func (e *Engine) cycle(ctx context.Context, sess *Session, prompt, reprompt string, interpret func(heard string) bool, lenient bool) Outcome {
	if err := e.Speak(ctx, sess, prompt); err != nil {
		return e.failSpeech(ctx, sess, err, lenient)
	}
	for {
		if ctx.Err() != nil {
			return OutcomeCanceled
		}
		heard, err := e.Listen(ctx, sess)
		switch {
		case err == nil:
			if interpret(heard) {
				return OutcomeOK
			}
			if out := e.retry(ctx, sess, "speech_not_understood", reprompt, lenient); out != OutcomeOK {
				return out
			}
		case errors.Is(err, speech.ErrNoSpeech):
			if out := e.retry(ctx, sess, "speech_nothing_heard", reprompt, lenient); out != OutcomeOK {
				return out
			}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return OutcomeCanceled
		default:
			return e.failSpeech(ctx, sess, err, lenient)
		}
	}
}

// retry burns one unit of the phase budget, voices the failure notice and
// the reprompt, and returns OutcomeOK when another attempt is allowed.
func (e *Engine) retry(ctx context.Context, sess *Session, noticeKey, reprompt string, lenient bool) Outcome {
	sess.retries++
	e.metrics.RetryConsumed(sess.Phase)
	e.record(ctx, sess, eventstore.TypeRetry, string(sess.Phase))
	if sess.retries > e.cfg.MaxRetries {
		if lenient {
			return OutcomeExhausted
		}
		return e.fallback(ctx, sess)
	}
	notice := i18n.T(sess.Lang, noticeKey)
	if reprompt != "" {
		notice += " " + reprompt
	}
	if err := e.Speak(ctx, sess, notice); err != nil {
		return e.failSpeech(ctx, sess, err, lenient)
	}
	return OutcomeOK
}

func (e *Engine) failSpeech(ctx context.Context, sess *Session, err error, lenient bool) Outcome {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return OutcomeCanceled
	}
	e.logger.Error("speech backend failed", slog.String("phase", string(sess.Phase)), slog.String("error", err.Error()))
	if errors.Is(err, speech.ErrUnavailable) {
		e.emitter.Status(sess.ID, i18n.T(sess.Lang, "speech_mic_unavailable"), false)
	}
	if lenient {
		return OutcomeExhausted
	}
	return e.fallback(ctx, sess)
}

// CancelSpeech discards any utterance still in flight.
func (e *Engine) CancelSpeech() {
	e.synth.CancelAll()
}

// fallback ends the dialogue and hands control to the buttons.
func (e *Engine) fallback(ctx context.Context, sess *Session) Outcome {
	e.metrics.FallbackEntered(sess.Phase)
	e.record(ctx, sess, eventstore.TypeFallback, string(sess.Phase))
	e.SetPhase(ctx, sess, PhaseManual)
	// Best effort: the synthesizer may be the reason we are here.
	_ = e.Speak(ctx, sess, i18n.T(sess.Lang, "speech_use_buttons"))
	return OutcomeFallback
}

// SetPhase transitions the session and resets the retry budget.
func (e *Engine) SetPhase(ctx context.Context, sess *Session, to Phase) {
	from := sess.Phase
	if from == to {
		return
	}
	sess.Phase = to
	sess.retries = 0
	e.emitter.Phase(sess.ID, from, to)
	e.record(ctx, sess, eventstore.TypePhase, string(to))
	e.logger.Info("phase change", slog.String("from", string(from)), slog.String("to", string(to)))
}

// Pause waits for the configured inter-step delay, honoring cancellation.
func (e *Engine) Pause(ctx context.Context, ms int) {
	if ms <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(ms) * time.Millisecond):
	}
}

func (e *Engine) record(ctx context.Context, sess *Session, eventType, payload string) {
	if e.store == nil {
		return
	}
	data, _ := json.Marshal(payload)
	if err := e.store.AppendEvent(ctx, eventstore.Event{
		SessionID: sess.ID,
		Lang:      string(sess.Lang),
		Phase:     string(sess.Phase),
		Type:      eventType,
		Payload:   data,
	}); err != nil {
		e.logger.Warn("timeline append failed", slog.String("error", err.Error()))
	}
}
