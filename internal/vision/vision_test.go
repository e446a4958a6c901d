package vision

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maratech/voxguide/internal/config"
)

func TestGradeTiers(t *testing.T) {
	cases := []struct {
		a    Assessment
		want Tier
	}{
		{Assessment{Score: 85}, TierNormal},
		{Assessment{Score: 70}, TierNormal},
		{Assessment{Score: 69.9}, TierLow},
		{Assessment{Score: 55}, TierLow},
		{Assessment{Score: 40}, TierLow},
		{Assessment{Score: 39.9}, TierVeryLow},
		{Assessment{Score: 0}, TierVeryLow},
		{Assessment{Score: 95, IsBlind: true}, TierBlind},
	}
	for _, tc := range cases {
		if got := Grade(tc.a); got != tc.want {
			t.Fatalf("Grade(%+v) = %v, want %v", tc.a, got, tc.want)
		}
	}
}

func TestTierCatalogKeys(t *testing.T) {
	for tier, key := range map[Tier]string{
		TierNormal:  "vision_normal",
		TierLow:     "vision_low",
		TierVeryLow: "vision_very_low",
		TierBlind:   "vision_blind_detected",
	} {
		if got := tier.CatalogKey(); got != key {
			t.Fatalf("%v.CatalogKey() = %q, want %q", tier, got, key)
		}
	}
}

func TestClientAnalyze(t *testing.T) {
	var gotImage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		gotImage = req.Image
		json.NewEncoder(w).Encode(Assessment{Score: 72.5, Reason: "clear frame", Source: "model"})
	}))
	defer srv.Close()

	c := NewClient(config.VisionConfig{Endpoint: srv.URL, TimeoutMS: 1000}, slog.Default())
	a, err := c.Analyze(context.Background(), "ZnJhbWU=")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if gotImage != "ZnJhbWU=" {
		t.Fatalf("posted image = %q", gotImage)
	}
	if a.Score != 72.5 || a.Reason != "clear frame" {
		t.Fatalf("unexpected assessment: %+v", a)
	}
	if Grade(a) != TierNormal {
		t.Fatalf("expected normal tier for %+v", a)
	}
}

func TestClientAnalyzeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(config.VisionConfig{Endpoint: srv.URL, TimeoutMS: 1000}, slog.Default())
	if _, err := c.Analyze(context.Background(), "x"); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestMockCameraLifecycle(t *testing.T) {
	cam := &MockCamera{}
	ctx := context.Background()
	if _, err := cam.Capture(ctx); !errors.Is(err, ErrNoCamera) {
		t.Fatalf("capture before open: %v", err)
	}
	if err := cam.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	frame, err := cam.Capture(ctx)
	if err != nil || frame == "" {
		t.Fatalf("capture: %q, %v", frame, err)
	}
	if err := cam.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if cam.Opened() {
		t.Fatal("camera still open after Close")
	}
}

func TestDisabledCamera(t *testing.T) {
	cam := NewDisabledCamera()
	if err := cam.Open(context.Background()); !errors.Is(err, ErrNoCamera) {
		t.Fatalf("want ErrNoCamera, got %v", err)
	}
}
