package dialog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maratech/voxguide/internal/banking"
	"github.com/maratech/voxguide/internal/config"
	"github.com/maratech/voxguide/internal/i18n"
	"github.com/maratech/voxguide/internal/speech"
	"github.com/maratech/voxguide/internal/vision"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testDialogConfig() config.DialogConfig {
	return config.DialogConfig{
		MaxRetries:      2,
		ListenTimeoutMS: 200,
		SpeakRate:       0.95,
		DefaultLanguage: "fr",
	}
}

type fixture struct {
	controller *Controller
	synth      *speech.MockSynth
	recog      *speech.MockRecognizer
	ledger     *banking.Ledger
	camera     *vision.MockCamera
}

func newFixture(t *testing.T, visionEndpoint string, script ...string) *fixture {
	t.Helper()
	logger := testLogger()
	synth := speech.NewMockSynth()
	recog := speech.NewMockRecognizer()
	recog.Say(script...)

	cfg := testDialogConfig()
	engine := NewEngine(cfg, synth, recog, NopEmitter{}, nil, NopMetrics{}, logger)
	ledger := banking.NewLedger(config.BankingConfig{InitialBalance: 5240.50, SenderID: "****5678"}, logger)
	visionClient := vision.NewClient(config.VisionConfig{Endpoint: visionEndpoint, TimeoutMS: 1000}, logger)
	camera := &vision.MockCamera{}

	return &fixture{
		controller: NewController(cfg, engine, NopEmitter{}, NopMetrics{}, nil, ledger, nil, visionClient, camera, logger),
		synth:      synth,
		recog:      recog,
		ledger:     ledger,
		camera:     camera,
	}
}

func spokenContaining(synth *speech.MockSynth, substr string) bool {
	for _, text := range synth.SpokenTexts() {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

func TestRunHappyPathBalance(t *testing.T) {
	f := newFixture(t, "",
		"je veux commencer en francais",
		"non",
		"la banque s'il vous plait",
		"mon solde",
		"retour",
	)
	sess := f.controller.Run(context.Background())

	if sess.Lang != i18n.French {
		t.Fatalf("lang = %v", sess.Lang)
	}
	// The script runs out on the main menu, so the dialogue ends in
	// manual fallback after the budget is spent.
	if sess.Phase != PhaseManual {
		t.Fatalf("final phase = %v", sess.Phase)
	}
	if !spokenContaining(f.synth, "5240.50") {
		t.Fatalf("balance never spoken; spoken=%v", f.synth.SpokenTexts())
	}
	if !spokenContaining(f.synth, i18n.T(i18n.French, "speech_use_buttons")) {
		t.Fatal("fallback notice never spoken")
	}
}

func TestRunOptionlessSectionEndsDialogue(t *testing.T) {
	f := newFixture(t, "", "francais", "non", "shopping")
	sess := f.controller.Run(context.Background())

	// Shopping has nothing to navigate: arrival is announced and the
	// dialogue ends cleanly, without listening inside the section.
	if !spokenContaining(f.synth, i18n.T(i18n.French, "speech_welcome_to")+" Shopping") {
		t.Fatalf("arrival never announced; spoken=%v", f.synth.SpokenTexts())
	}
	if sess.Phase != PhaseIdle {
		t.Fatalf("final phase = %v, want %v", sess.Phase, PhaseIdle)
	}
	if spokenContaining(f.synth, i18n.T(i18n.French, "speech_use_buttons")) {
		t.Fatalf("manual fallback reached; spoken=%v", f.synth.SpokenTexts())
	}
}

func TestRunLanguageSwitchToEnglish(t *testing.T) {
	f := newFixture(t, "", "english please", "no")
	sess := f.controller.Run(context.Background())
	if sess.Lang != i18n.English {
		t.Fatalf("lang = %v", sess.Lang)
	}
	if !spokenContaining(f.synth, "Vision skipped.") {
		t.Fatalf("vision skip not spoken in English; spoken=%v", f.synth.SpokenTexts())
	}
}

func TestRunFallbackOnSilence(t *testing.T) {
	f := newFixture(t, "")
	sess := f.controller.Run(context.Background())
	if sess.Phase != PhaseManual {
		t.Fatalf("final phase = %v", sess.Phase)
	}
	// Budget is maxRetries+1 failed attempts; notices voiced for the
	// first maxRetries of them.
	if !spokenContaining(f.synth, i18n.T(i18n.French, "speech_nothing_heard")) {
		t.Fatal("silence notice never spoken")
	}
	// Language exhaustion defaults to French and keeps going; the dead
	// end happens in the vision phase.
	if !spokenContaining(f.synth, i18n.T(i18n.French, "speech_open_camera")) {
		t.Fatalf("vision question never reached; spoken=%v", f.synth.SpokenTexts())
	}
	if !spokenContaining(f.synth, i18n.T(i18n.French, "speech_use_buttons")) {
		t.Fatal("fallback notice never spoken")
	}
}

func TestRunRetryThenRecover(t *testing.T) {
	f := newFixture(t, "",
		"euh je ne sais pas", // not a language
		"francais",
		"non",
	)
	sess := f.controller.Run(context.Background())
	if sess.Lang != i18n.French {
		t.Fatalf("lang = %v", sess.Lang)
	}
	if !spokenContaining(f.synth, i18n.T(i18n.French, "speech_not_understood")) {
		t.Fatal("retry notice never spoken")
	}
	// Recovery happened: vision question was reached.
	if !spokenContaining(f.synth, i18n.T(i18n.French, "speech_open_camera")) {
		t.Fatal("vision question never reached")
	}
}

func TestRunVisionAnalysis(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(vision.Assessment{Score: 85, Source: "model"})
	}))
	defer srv.Close()

	f := newFixture(t, srv.URL,
		"francais",
		"oui",    // open the camera
		"oui",    // analyze
		"fermer", // close it
		"oui",    // confirm the result
	)
	f.controller.Run(context.Background())

	if !spokenContaining(f.synth, i18n.T(i18n.French, "vision_normal")) {
		t.Fatalf("tier label never spoken; spoken=%v", f.synth.SpokenTexts())
	}
	if !spokenContaining(f.synth, i18n.T(i18n.French, "vision_camera_closed")) {
		t.Fatal("camera close never confirmed")
	}
	if !spokenContaining(f.synth, i18n.T(i18n.French, "vision_result_confirmed")) {
		t.Fatalf("confirmation never spoken; spoken=%v", f.synth.SpokenTexts())
	}
	if f.camera.Opened() {
		t.Fatal("camera left open")
	}
}

func TestRunVisionCameraFailure(t *testing.T) {
	f := newFixture(t, "", "francais", "oui")
	f.camera.OpenErr = vision.ErrNoCamera
	f.controller.Run(context.Background())

	if !spokenContaining(f.synth, i18n.T(i18n.French, "vision_cannot_open")) {
		t.Fatal("camera failure never announced")
	}
	// Dialogue moved on instead of dead-ending.
	if !spokenContaining(f.synth, i18n.T(i18n.French, "speech_say_sections")) &&
		!spokenContaining(f.synth, "Banking") {
		t.Fatalf("feature menu never reached; spoken=%v", f.synth.SpokenTexts())
	}
}

func TestRunCancelStopsDialogue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newFixture(t, "", "francais")
	sess := f.controller.Run(ctx)
	if sess.Phase == PhaseManual {
		t.Fatal("cancellation must not be treated as fallback")
	}
}

func TestMatchFeaturePrefersLongestKeyword(t *testing.T) {
	features := Features()
	f, ok := MatchFeature("ouvre la banque", features)
	if !ok || f.Name != "Banking" {
		t.Fatalf("MatchFeature = %q, ok=%v", f.Name, ok)
	}
	f, ok = MatchFeature("je veux faire du shopping", features)
	if !ok || f.Name != "Shopping" {
		t.Fatalf("MatchFeature = %q, ok=%v", f.Name, ok)
	}
	if _, ok := MatchFeature("rien du tout", features); ok {
		t.Fatal("expected no feature match")
	}
}

func TestMatchOptionHistoryVsTransaction(t *testing.T) {
	opts := Features()[0].Options
	o, ok := MatchOption("je veux faire une transaction", opts)
	if !ok || o.Action != ActionTransfer {
		t.Fatalf("MatchOption = %+v, ok=%v", o, ok)
	}
	o, ok = MatchOption("montre moi l'historique des transactions", opts)
	if !ok || o.Action != ActionHistory {
		t.Fatalf("MatchOption = %+v, ok=%v", o, ok)
	}
}
