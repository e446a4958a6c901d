package banking

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

// Backend mirrors completed transfers to the remote banking service. The
// local ledger is authoritative: a backend failure is logged and otherwise
// ignored so the dialogue never stalls on the network.
type Backend struct {
	endpoint string
	senderID string
	client   *http.Client
	logger   *slog.Logger
}

type transferRequest struct {
	SenderBankID string  `json:"sender_bank_id"`
	Recipient    string  `json:"recipient"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
}

type transferResponse struct {
	Success       bool    `json:"success"`
	TransactionID string  `json:"transaction_id"`
	NewBalance    float64 `json:"new_balance"`
}

func NewBackend(cfg config.BankingConfig, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Backend{
		endpoint: cfg.Endpoint,
		senderID: cfg.SenderID,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With("component", "banking.backend"),
	}
}

// Sync posts a completed transfer. Errors are swallowed after logging;
// the returned id is empty when the backend did not acknowledge.
func (b *Backend) Sync(ctx context.Context, rec Record) string {
	if b.endpoint == "" {
		return ""
	}
	resp, err := b.post(ctx, rec)
	if err != nil {
		b.logger.Warn("backend sync failed", "recipient", rec.Recipient, "error", err)
		return ""
	}
	if !resp.Success {
		b.logger.Warn("backend rejected transfer", "recipient", rec.Recipient)
		return ""
	}
	b.logger.Info("backend sync ok", "transaction_id", resp.TransactionID, "new_balance", resp.NewBalance)
	return resp.TransactionID
}

func (b *Backend) post(ctx context.Context, rec Record) (*transferResponse, error) {
	payload, err := json.Marshal(transferRequest{
		SenderBankID: b.senderID,
		Recipient:    rec.Recipient,
		Amount:       -rec.Amount,
		Description:  rec.Description,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	httpResp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}
	var out transferResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
