// Package vision talks to the remote vision-quality service and grades the
// answer into the tiers the dialogue speaks back to the user.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/maratech/voxguide/internal/config"
)

// Tier buckets a vision score for the dialogue.
type Tier string

const (
	TierNormal  Tier = "normal"
	TierLow     Tier = "low"
	TierVeryLow Tier = "very_low"
	TierBlind   Tier = "blind"
)

// CatalogKey returns the i18n key for the tier's spoken label.
func (t Tier) CatalogKey() string {
	switch t {
	case TierNormal:
		return "vision_normal"
	case TierLow:
		return "vision_low"
	case TierVeryLow:
		return "vision_very_low"
	case TierBlind:
		return "vision_blind_detected"
	}
	return "vision_analysis_failed"
}

// Assessment is the analysis result for one captured frame.
type Assessment struct {
	Score   float64 `json:"score"`
	IsBlind bool    `json:"is_blind"`
	Reason  string  `json:"reason"`
	Source  string  `json:"source"`
}

// Grade buckets an assessment. A blind detection overrides the score.
func Grade(a Assessment) Tier {
	switch {
	case a.IsBlind:
		return TierBlind
	case a.Score >= 70:
		return TierNormal
	case a.Score >= 40:
		return TierLow
	default:
		return TierVeryLow
	}
}

// Client calls the vision-quality endpoint with a captured frame.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

type analyzeRequest struct {
	Image string `json:"image"`
}

func NewClient(cfg config.VisionConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With("component", "vision"),
	}
}

// Analyze posts a base64-encoded frame and returns the assessment.
func (c *Client) Analyze(ctx context.Context, imageBase64 string) (Assessment, error) {
	payload, err := json.Marshal(analyzeRequest{Image: imageBase64})
	if err != nil {
		return Assessment{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Assessment{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return Assessment{}, fmt.Errorf("vision request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Assessment{}, fmt.Errorf("vision service status %d", resp.StatusCode)
	}
	var out Assessment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Assessment{}, fmt.Errorf("decode vision response: %w", err)
	}
	c.logger.Debug("vision assessed", "score", out.Score, "is_blind", out.IsBlind, "source", out.Source)
	return out, nil
}
