package speech

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maratech/voxguide/internal/i18n"
)

func TestMockRecognizerScript(t *testing.T) {
	rec := NewMockRecognizer()
	rec.Say("bonjour", "oui")
	rec.Fail(ErrNoSpeech)

	ctx := context.Background()
	r, err := rec.Listen(ctx, i18n.French)
	if err != nil || r.Text != "bonjour" {
		t.Fatalf("turn 1: %q, %v", r.Text, err)
	}
	r, err = rec.Listen(ctx, i18n.French)
	if err != nil || r.Text != "oui" {
		t.Fatalf("turn 2: %q, %v", r.Text, err)
	}
	if _, err = rec.Listen(ctx, i18n.French); !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("turn 3: want ErrNoSpeech, got %v", err)
	}
	// Script exhausted: further turns are silence.
	if _, err = rec.Listen(ctx, i18n.French); !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("turn 4: want ErrNoSpeech, got %v", err)
	}
}

func TestMockRecognizerHonorsContext(t *testing.T) {
	rec := NewMockRecognizer(ScriptedResult{Text: "ignored"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := rec.Listen(ctx, i18n.French); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestMockSynthRecordsUtterances(t *testing.T) {
	synth := NewMockSynth()
	ctx := context.Background()
	if err := synth.Speak(ctx, Utterance{Text: "bienvenue", Lang: i18n.French, Rate: 0.95}); err != nil {
		t.Fatalf("speak: %v", err)
	}
	if err := synth.Speak(ctx, Utterance{Text: "welcome", Lang: i18n.English, Rate: 0.95}); err != nil {
		t.Fatalf("speak: %v", err)
	}
	got := synth.SpokenTexts()
	if len(got) != 2 || got[0] != "bienvenue" || got[1] != "welcome" {
		t.Fatalf("spoken = %v", got)
	}
}

func TestMockSynthCancelableDelay(t *testing.T) {
	synth := NewMockSynth()
	synth.SetDelay(time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := synth.Speak(ctx, Utterance{Text: "slow"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want DeadlineExceeded, got %v", err)
	}
	if n := len(synth.Spoken()); n != 0 {
		t.Fatalf("canceled utterance was recorded, spoken=%d", n)
	}
}

func TestNewExecSynthRejectsBadCommand(t *testing.T) {
	if _, err := NewExecSynth(""); err == nil {
		t.Fatal("expected error for empty command")
	}
	if _, err := NewExecSynth("say 'unterminated"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := NewExecSynth("say --rate 0.95"); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
}

func TestNewExecRecognizerRejectsBadCommand(t *testing.T) {
	if _, err := NewExecRecognizer(""); err == nil {
		t.Fatal("expected error for empty command")
	}
	if _, err := NewExecRecognizer("listen --lang fr"); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
}

func TestDisabledBackends(t *testing.T) {
	if err := NewDisabledSynth().Speak(context.Background(), Utterance{Text: "x"}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
	if _, err := NewDisabledRecognizer().Listen(context.Background(), i18n.French); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
