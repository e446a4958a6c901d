// Package runtime assembles the daemon: telemetry, the message bus, the
// dialogue stack, and the health endpoints. A user gesture on the bus
// starts a dialogue session; manual controls work regardless.
package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/maratech/voxguide/internal/banking"
	"github.com/maratech/voxguide/internal/bus"
	"github.com/maratech/voxguide/internal/config"
	"github.com/maratech/voxguide/internal/dialog"
	"github.com/maratech/voxguide/internal/eventstore"
	"github.com/maratech/voxguide/internal/natsserver"
	"github.com/maratech/voxguide/internal/protocol"
	"github.com/maratech/voxguide/internal/speech"
	"github.com/maratech/voxguide/internal/vision"
)

type Runtime struct {
	cfg         config.Config
	logger      *slog.Logger
	httpServer  *http.Server
	tracerClose func(context.Context) error
	ready       atomic.Bool
	wg          sync.WaitGroup

	embedded   *natsserver.EmbeddedServer
	bus        *bus.Client
	store      *eventstore.Store
	ledger     *banking.Ledger
	emitter    dialog.Emitter
	controller *dialog.Controller

	subGesture *nats.Subscription
	subControl *nats.Subscription

	sessionActive atomic.Bool
}

func New(cfg config.Config, logger *slog.Logger) *Runtime {
	return &Runtime{
		cfg:    cfg,
		logger: logger,
	}
}

func (r *Runtime) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownTelemetry, metricsHandler, err := setupTelemetry(r.cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}
	r.tracerClose = shutdownTelemetry

	embedded, err := natsserver.Start(r.cfg.Bus, r.logger)
	if err != nil {
		return fmt.Errorf("start embedded bus: %w", err)
	}
	r.embedded = embedded

	busClient, err := bus.Connect(ctx, r.cfg.Bus, r.logger)
	if err != nil {
		r.embedded.Shutdown()
		return fmt.Errorf("connect bus: %w", err)
	}
	r.bus = busClient

	store, err := eventstore.Open(ctx, r.cfg.EventStore, r.logger)
	if err != nil {
		r.teardown()
		return fmt.Errorf("open timeline store: %w", err)
	}
	r.store = store

	if err := r.buildDialogue(); err != nil {
		r.teardown()
		return err
	}

	if err := r.subscribe(ctx); err != nil {
		r.teardown()
		return fmt.Errorf("subscribe: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", r.handleHealth)
	mux.HandleFunc("/readyz", r.handleReady)
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	addr := fmt.Sprintf("%s:%d", r.cfg.HTTP.Bind, r.cfg.HTTP.Port)
	r.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	r.ready.Store(true)
	r.logger.Info("runtime started", slog.String("addr", addr))

	<-ctx.Done()
	r.logger.Info("runtime stopping")
	r.ready.Store(false)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	r.wg.Wait()
	r.teardown()

	if r.tracerClose != nil {
		if err := r.tracerClose(shutdownCtx); err != nil {
			r.logger.Error("telemetry shutdown error", slog.String("error", err.Error()))
		}
	}

	return nil
}

func (r *Runtime) buildDialogue() error {
	synth, err := buildSynthesizer(r.cfg.Speech)
	if err != nil {
		return fmt.Errorf("speech synthesizer: %w", err)
	}
	recog, err := buildRecognizer(r.cfg.Speech)
	if err != nil {
		return fmt.Errorf("speech recognizer: %w", err)
	}

	r.emitter = dialog.NewBusEmitter(r.bus, r.logger)
	metrics := newDialogMetrics(r.logger)
	engine := dialog.NewEngine(r.cfg.Dialog, synth, recog, r.emitter, r.store, metrics, r.logger)

	r.ledger = banking.NewLedger(r.cfg.Banking, r.logger)
	backend := banking.NewBackend(r.cfg.Banking, r.logger)
	visionClient := vision.NewClient(r.cfg.Vision, r.logger)
	camera := buildCamera(r.cfg.Vision)

	r.controller = dialog.NewController(r.cfg.Dialog, engine, r.emitter, metrics, r.store, r.ledger, backend, visionClient, camera, r.logger)
	return nil
}

func buildSynthesizer(cfg config.SpeechConfig) (speech.Synthesizer, error) {
	switch cfg.SynthMode {
	case "exec":
		return speech.NewExecSynth(cfg.SynthCommand)
	case "none":
		return speech.NewDisabledSynth(), nil
	default:
		return speech.NewMockSynth(), nil
	}
}

func buildRecognizer(cfg config.SpeechConfig) (speech.Recognizer, error) {
	switch cfg.RecogMode {
	case "exec":
		return speech.NewExecRecognizer(cfg.RecogCommand)
	case "none":
		return speech.NewDisabledRecognizer(), nil
	default:
		return speech.NewMockRecognizer(), nil
	}
}

func buildCamera(cfg config.VisionConfig) vision.Camera {
	if !cfg.Enabled || cfg.CameraMode == "none" {
		return vision.NewDisabledCamera()
	}
	return &vision.MockCamera{}
}

func (r *Runtime) subscribe(ctx context.Context) error {
	subGesture, err := r.bus.Conn().Subscribe(protocol.SubjectUIGesture, func(msg *nats.Msg) {
		r.handleGesture(ctx, msg)
	})
	if err != nil {
		return err
	}
	r.subGesture = subGesture

	subControl, err := r.bus.Conn().Subscribe(protocol.SubjectUIControlPrefix+".>", r.handleControl)
	if err != nil {
		subGesture.Drain()
		return err
	}
	r.subControl = subControl
	return nil
}

// handleGesture starts a dialogue on the first user gesture. One session
// runs at a time; further gestures while it runs are ignored.
func (r *Runtime) handleGesture(ctx context.Context, msg *nats.Msg) {
	var g protocol.Gesture
	if err := json.Unmarshal(msg.Data, &g); err != nil {
		r.logger.Warn("bad gesture payload", slog.String("error", err.Error()))
		return
	}
	if !r.sessionActive.CompareAndSwap(false, true) {
		r.logger.Debug("gesture ignored, session already running")
		return
	}
	r.logger.Info("gesture received, starting dialogue", slog.String("source", g.Source))
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.sessionActive.Store(false)
		sess := r.controller.Run(ctx)
		r.logger.Info("dialogue finished",
			slog.String("session_id", sess.ID),
			slog.String("phase", string(sess.Phase)),
			slog.String("lang", string(sess.Lang)))
	}()
}

// handleControl services manual button actions. Buttons keep working no
// matter what the voice dialogue is doing.
func (r *Runtime) handleControl(msg *nats.Msg) {
	var c protocol.Control
	if err := json.Unmarshal(msg.Data, &c); err != nil {
		r.logger.Warn("bad control payload", slog.String("error", err.Error()))
		return
	}
	switch c.Action {
	case "view_balance":
		r.emitter.Balance(c.SessionID, r.ledger.Balance())
	default:
		r.logger.Debug("manual control", slog.String("action", c.Action))
	}
}

func (r *Runtime) teardown() {
	if r.subGesture != nil {
		_ = r.subGesture.Drain()
	}
	if r.subControl != nil {
		_ = r.subControl.Drain()
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.logger.Error("timeline store close error", slog.String("error", err.Error()))
		}
	}
	r.bus.Close()
	r.embedded.Shutdown()
}

func (r *Runtime) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if r.bus.Healthy() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("bus unhealthy"))
}

func (r *Runtime) handleReady(w http.ResponseWriter, _ *http.Request) {
	if r.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
