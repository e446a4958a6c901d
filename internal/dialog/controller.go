package dialog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maratech/voxguide/internal/banking"
	"github.com/maratech/voxguide/internal/config"
	"github.com/maratech/voxguide/internal/eventstore"
	"github.com/maratech/voxguide/internal/i18n"
	"github.com/maratech/voxguide/internal/match"
	"github.com/maratech/voxguide/internal/vision"
)

// Controller walks one session through the whole dialogue. It owns the
// session and runs on a single goroutine; manual controls bypass it
// entirely and stay live whatever state it is in.
type Controller struct {
	cfg      config.DialogConfig
	engine   *Engine
	emitter  Emitter
	metrics  Metrics
	store    *eventstore.Store
	ledger   *banking.Ledger
	backend  *banking.Backend
	visionC  *vision.Client
	camera   vision.Camera
	features []Feature
	logger   *slog.Logger
}

func NewController(cfg config.DialogConfig, engine *Engine, emitter Emitter, metrics Metrics, store *eventstore.Store, ledger *banking.Ledger, backend *banking.Backend, visionClient *vision.Client, camera vision.Camera, logger *slog.Logger) *Controller {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Controller{
		cfg:      cfg,
		engine:   engine,
		emitter:  emitter,
		metrics:  metrics,
		store:    store,
		ledger:   ledger,
		backend:  backend,
		visionC:  visionClient,
		camera:   camera,
		features: Features(),
		logger:   logger.With(slog.String("component", "dialog.controller")),
	}
}

// Run executes the dialogue from language selection to fallback or
// cancellation. It returns the session for inspection.
func (c *Controller) Run(ctx context.Context) *Session {
	lang, _ := i18n.Parse(c.cfg.DefaultLanguage)
	sess := NewSession(lang)
	c.metrics.SessionStarted()
	if c.store != nil {
		if err := c.store.AppendSession(ctx, sess.ID, string(sess.Lang)); err != nil {
			c.logger.Warn("session record failed", slog.String("error", err.Error()))
		}
	}
	c.logger.Info("session started", slog.String("session_id", sess.ID))

	if out := c.phaseLanguage(ctx, sess); out != OutcomeOK {
		return sess
	}
	if out := c.phaseVision(ctx, sess); out != OutcomeOK {
		return sess
	}
	c.phaseFeatures(ctx, sess)
	return sess
}

// phaseLanguage asks for the preferred language. The question and its
// retries are always voiced in French; the chosen language takes effect
// for everything after. A spent budget or a dead microphone defaults to
// French and moves on rather than abandoning the dialogue this early.
func (c *Controller) phaseLanguage(ctx context.Context, sess *Session) Outcome {
	c.engine.SetPhase(ctx, sess, PhaseLanguage)
	sess.Lang = i18n.French

	chosen := i18n.French
	out := c.engine.CycleLenient(ctx, sess,
		i18n.T(i18n.French, "speech_language_question"),
		i18n.T(i18n.French, "speech_say_language"),
		func(heard string) bool {
			lang, ok := i18n.MatchLanguageName(match.Normalize(heard))
			if ok {
				chosen = lang
			}
			return ok
		})
	switch out {
	case OutcomeOK:
	case OutcomeExhausted:
		c.logger.Info("language not selected, defaulting to French")
		return OutcomeOK
	default:
		return out
	}

	sess.Lang = chosen
	if c.store != nil {
		_ = c.store.AppendSession(ctx, sess.ID, string(sess.Lang))
	}
	if err := c.engine.Speak(ctx, sess, i18n.T(sess.Lang, "speech_language_set")+" "+chosen.Name()+"."); err != nil {
		return OutcomeFallback
	}
	return OutcomeOK
}

// phaseVision offers the camera check. Declining or any camera trouble
// moves on; the dialogue never dead-ends here.
func (c *Controller) phaseVision(ctx context.Context, sess *Session) Outcome {
	if sess.VisionDone {
		return OutcomeOK
	}
	c.engine.SetPhase(ctx, sess, PhaseVision)
	defer func() { sess.VisionDone = true }()

	wantsCamera := false
	out := c.engine.Cycle(ctx, sess,
		i18n.T(sess.Lang, "speech_open_camera"),
		i18n.T(sess.Lang, "speech_say_yes_no"),
		func(heard string) bool {
			switch {
			case match.AnyOf(heard, i18n.YesWords(sess.Lang)):
				wantsCamera = true
				return true
			case match.AnyOf(heard, i18n.NoWords(sess.Lang)):
				return true
			}
			return false
		})
	if out != OutcomeOK {
		return out
	}
	if !wantsCamera {
		if err := c.engine.SpeakKey(ctx, sess, "speech_vision_passed"); err != nil {
			return OutcomeFallback
		}
		return OutcomeOK
	}
	return c.visionSubDialogue(ctx, sess)
}

func (c *Controller) visionSubDialogue(ctx context.Context, sess *Session) Outcome {
	if err := c.engine.SpeakKey(ctx, sess, "vision_opening_camera"); err != nil {
		return OutcomeFallback
	}
	if err := c.camera.Open(ctx); err != nil {
		c.logger.Warn("camera open failed", slog.String("error", err.Error()))
		if err := c.engine.SpeakKey(ctx, sess, "vision_cannot_open"); err != nil {
			return OutcomeFallback
		}
		return OutcomeOK
	}
	defer c.camera.Close()

	analyze := false
	out := c.engine.Cycle(ctx, sess,
		i18n.T(sess.Lang, "vision_camera_opened"),
		i18n.T(sess.Lang, "vision_say_yes_analyze"),
		func(heard string) bool {
			switch {
			case match.AnyOf(heard, i18n.YesWords(sess.Lang)):
				analyze = true
				return true
			case match.AnyOf(heard, i18n.NoWords(sess.Lang)):
				return true
			}
			return false
		})
	if out != OutcomeOK {
		return out
	}

	analyzed := false
	if analyze {
		if out := c.analyzeVision(ctx, sess); out != OutcomeOK {
			return out
		}
		analyzed = sess.VisionTier != ""
	} else {
		if err := c.engine.SpeakKey(ctx, sess, "vision_analysis_skipped"); err != nil {
			return OutcomeFallback
		}
	}

	keepOpen := false
	out = c.engine.Cycle(ctx, sess,
		i18n.T(sess.Lang, "vision_say_close_or_keep"),
		i18n.T(sess.Lang, "vision_say_close_or_keep"),
		func(heard string) bool {
			switch {
			case match.AnyOf(heard, i18n.CloseWords(sess.Lang)):
				return true
			case match.AnyOf(heard, i18n.NoWords(sess.Lang)):
				keepOpen = true
				return true
			}
			return false
		})
	if out != OutcomeOK {
		return out
	}
	if keepOpen {
		if err := c.engine.SpeakKey(ctx, sess, "vision_camera_open"); err != nil {
			return OutcomeFallback
		}
		return OutcomeOK
	}
	c.camera.Close()
	if err := c.engine.SpeakKey(ctx, sess, "vision_camera_closed"); err != nil {
		return OutcomeFallback
	}
	if analyzed {
		return c.confirmVisionResult(ctx, sess)
	}
	return OutcomeOK
}

// confirmVisionResult asks the user to vouch for the spoken assessment.
// A rejection just clears the recorded tier; the flow moves on either way.
func (c *Controller) confirmVisionResult(ctx context.Context, sess *Session) Outcome {
	confirmed := false
	out := c.engine.Cycle(ctx, sess,
		i18n.T(sess.Lang, "vision_confirm_result")+" "+i18n.T(sess.Lang, "vision_say_yes_confirm"),
		i18n.T(sess.Lang, "vision_say_yes_confirm"),
		func(heard string) bool {
			switch {
			case match.AnyOf(heard, i18n.YesWords(sess.Lang)):
				confirmed = true
				return true
			case match.AnyOf(heard, i18n.NoWords(sess.Lang)):
				return true
			}
			return false
		})
	if out != OutcomeOK {
		return out
	}
	if !confirmed {
		sess.VisionTier = ""
		if err := c.engine.SpeakKey(ctx, sess, "vision_result_not_confirmed"); err != nil {
			return OutcomeFallback
		}
		return OutcomeOK
	}
	if err := c.engine.SpeakKey(ctx, sess, "vision_result_confirmed"); err != nil {
		return OutcomeFallback
	}
	return OutcomeOK
}

func (c *Controller) analyzeVision(ctx context.Context, sess *Session) Outcome {
	frame, err := c.camera.Capture(ctx)
	if err != nil {
		c.logger.Warn("frame capture failed", slog.String("error", err.Error()))
		if err := c.engine.SpeakKey(ctx, sess, "vision_analysis_failed"); err != nil {
			return OutcomeFallback
		}
		return OutcomeOK
	}
	assessment, err := c.visionC.Analyze(ctx, frame)
	if err != nil {
		c.logger.Warn("vision analysis failed", slog.String("error", err.Error()))
		if err := c.engine.SpeakKey(ctx, sess, "vision_analysis_failed"); err != nil {
			return OutcomeFallback
		}
		return OutcomeOK
	}
	tier := vision.Grade(assessment)
	sess.VisionTier = string(tier)
	c.recordVision(ctx, sess, tier)
	result := i18n.T(sess.Lang, "vision_analysis_result") + " " + i18n.T(sess.Lang, tier.CatalogKey()) + "."
	if err := c.engine.Speak(ctx, sess, result); err != nil {
		return OutcomeFallback
	}
	return OutcomeOK
}

func (c *Controller) recordVision(ctx context.Context, sess *Session, tier vision.Tier) {
	if c.store == nil {
		return
	}
	_ = c.store.AppendEvent(ctx, eventstore.Event{
		SessionID: sess.ID,
		Lang:      string(sess.Lang),
		Phase:     string(sess.Phase),
		Type:      eventstore.TypeVision,
		Payload:   []byte(tier),
	})
}

// phaseFeatures loops the main menu until an optionless section ends the
// dialogue, fallback, or cancellation. Returning from a section lands back
// here with a fresh retry budget.
func (c *Controller) phaseFeatures(ctx context.Context, sess *Session) {
	for {
		c.engine.SetPhase(ctx, sess, PhaseFeatures)

		var chosen Feature
		out := c.engine.Cycle(ctx, sess,
			fmt.Sprintf(i18n.T(sess.Lang, "speech_features_available"), FeatureNames(c.features)),
			i18n.T(sess.Lang, "speech_say_sections"),
			func(heard string) bool {
				f, ok := MatchFeature(heard, c.features)
				if ok {
					chosen = f
				}
				return ok
			})
		if out != OutcomeOK {
			return
		}

		if err := c.engine.Speak(ctx, sess, chosen.Name+" "+i18n.T(sess.Lang, "speech_opened")); err != nil {
			return
		}
		if len(chosen.Options) == 0 {
			// Nothing to navigate inside. Announce the arrival and end
			// the dialogue; manual controls take it from here.
			if err := c.engine.Speak(ctx, sess, i18n.T(sess.Lang, "speech_welcome_to")+" "+chosen.Name+"."); err != nil {
				return
			}
			c.engine.SetPhase(ctx, sess, PhaseIdle)
			return
		}
		if out := c.phaseSection(ctx, sess, chosen); out != OutcomeOK {
			return
		}
		if err := c.engine.SpeakKey(ctx, sess, "speech_return_main_menu"); err != nil {
			return
		}
	}
}

// phaseSection runs the sub-dialogue for one section. OutcomeOK means the
// user asked to go back to the main menu.
func (c *Controller) phaseSection(ctx context.Context, sess *Session, feature Feature) Outcome {
	c.engine.SetPhase(ctx, sess, PhaseSection)
	sess.ActiveFeature = feature.Name
	defer func() { sess.ActiveFeature = "" }()

	opts := feature.Options
	prompt := i18n.T(sess.Lang, "speech_welcome_to") + " " + feature.Name + ". " +
		fmt.Sprintf(i18n.T(sess.Lang, "speech_section_options"), OptionNames(opts))

	for {
		var selected SectionOption
		out := c.engine.Cycle(ctx, sess, prompt,
			i18n.T(sess.Lang, "speech_say_option_or_return"),
			func(heard string) bool {
				o, ok := MatchOption(heard, opts)
				if ok {
					selected = o
				}
				return ok
			})
		if out != OutcomeOK {
			return out
		}

		switch selected.Action {
		case ActionBack:
			return OutcomeOK
		case ActionViewBalance:
			balance := c.ledger.Balance()
			c.emitter.Balance(sess.ID, balance)
			if err := c.engine.Speak(ctx, sess, fmt.Sprintf("%s %.2f.", i18n.T(sess.Lang, "banking_balance_text"), balance)); err != nil {
				return OutcomeFallback
			}
		case ActionHistory:
			records := c.ledger.Records()
			if err := c.engine.Speak(ctx, sess, fmt.Sprintf(i18n.T(sess.Lang, "banking_history_spoken"), len(records))); err != nil {
				return OutcomeFallback
			}
		case ActionTransfer:
			if out := c.runTransaction(ctx, sess); out != OutcomeOK {
				return out
			}
			c.engine.SetPhase(ctx, sess, PhaseSection)
			if err := c.engine.SpeakKey(ctx, sess, "tx_done_resume"); err != nil {
				return OutcomeFallback
			}
		}
		// A completed action hands the turn back to the user. Fresh
		// budget, same as re-entering the section.
		sess.retries = 0
		prompt = i18n.T(sess.Lang, "speech_say_option_or_return")
	}
}
