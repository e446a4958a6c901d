package runtime

import (
	"testing"

	"github.com/maratech/voxguide/internal/config"
	"github.com/maratech/voxguide/internal/speech"
)

func TestBuildSynthesizerModes(t *testing.T) {
	if _, err := buildSynthesizer(config.SpeechConfig{SynthMode: "mock"}); err != nil {
		t.Fatalf("mock mode: %v", err)
	}
	if _, err := buildSynthesizer(config.SpeechConfig{SynthMode: "none"}); err != nil {
		t.Fatalf("none mode: %v", err)
	}
	if _, err := buildSynthesizer(config.SpeechConfig{SynthMode: "exec", SynthCommand: "speak --rate 0.95"}); err != nil {
		t.Fatalf("exec mode: %v", err)
	}
	if _, err := buildSynthesizer(config.SpeechConfig{SynthMode: "exec", SynthCommand: ""}); err == nil {
		t.Fatal("exec mode without command must fail")
	}
}

func TestBuildRecognizerModes(t *testing.T) {
	r, err := buildRecognizer(config.SpeechConfig{RecogMode: "mock"})
	if err != nil {
		t.Fatalf("mock mode: %v", err)
	}
	if _, ok := r.(*speech.MockRecognizer); !ok {
		t.Fatalf("mock mode returned %T", r)
	}
	if _, err := buildRecognizer(config.SpeechConfig{RecogMode: "exec", RecogCommand: "listen"}); err != nil {
		t.Fatalf("exec mode: %v", err)
	}
}

func TestBuildCamera(t *testing.T) {
	if cam := buildCamera(config.VisionConfig{Enabled: false}); cam == nil {
		t.Fatal("nil camera")
	}
	if cam := buildCamera(config.VisionConfig{Enabled: true, CameraMode: "none"}); cam == nil {
		t.Fatal("nil camera")
	}
	if cam := buildCamera(config.VisionConfig{Enabled: true, CameraMode: "mock"}); cam == nil {
		t.Fatal("nil camera")
	}
}
