package banking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maratech/voxguide/internal/config"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger(config.BankingConfig{InitialBalance: 5240.50, SenderID: "****5678"}, slog.Default())
	l.SetClock(func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC) })
	return l
}

func TestLedgerSeed(t *testing.T) {
	l := testLedger(t)
	if got := l.Balance(); got != 5240.50 {
		t.Fatalf("balance = %v", got)
	}
	recs := l.Records()
	if len(recs) != 3 {
		t.Fatalf("seed records = %d", len(recs))
	}
	if recs[0].Description != "Salary Deposit" || recs[0].Type != "credit" {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
}

func TestExecuteDebitsAndPrepends(t *testing.T) {
	l := testLedger(t)
	rec, err := l.Execute("Alice", 150, "rent share")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if rec.ID != 4 || rec.Amount != -150 || rec.Type != "debit" || rec.Recipient != "Alice" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Date != "Feb 10, 2026" {
		t.Fatalf("date = %q", rec.Date)
	}
	if got := l.Balance(); got != 5090.50 {
		t.Fatalf("balance after transfer = %v", got)
	}
	recs := l.Records()
	if recs[0].ID != 4 {
		t.Fatalf("new record not first: %+v", recs[0])
	}
	if len(recs) != 4 {
		t.Fatalf("records = %d", len(recs))
	}
}

func TestExecuteInsufficientFunds(t *testing.T) {
	l := testLedger(t)
	_, err := l.Execute("Bob", 9000, "too much")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if got := l.Balance(); got != 5240.50 {
		t.Fatalf("balance mutated on rejection: %v", got)
	}
	if got := len(l.Records()); got != 3 {
		t.Fatalf("records mutated on rejection: %d", got)
	}
}

func TestExtractAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"150 dollars", 150, true},
		{"send 45.99", 45.99, true},
		{"$200", 200, true},
		{"fifty bucks", 50, true},
		{"30 euros", 30, true},
		{"one hundred", 1, true}, // first word wins, no compounding
		{"two hundred", 2, true},
		{"a thousand", 1000, true},
		{"nothing useful", 0, false},
		{"", 0, false},
		{"0 dollars", 0, false},
	}
	for _, tc := range cases {
		got, ok := ExtractAmount(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ExtractAmount(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBackendSync(t *testing.T) {
	var got transferRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(transferResponse{Success: true, TransactionID: "tx-42", NewBalance: 5090.50})
	}))
	defer srv.Close()

	b := NewBackend(config.BankingConfig{Endpoint: srv.URL, SenderID: "****5678", TimeoutMS: 1000}, slog.Default())
	id := b.Sync(context.Background(), Record{Recipient: "Alice", Amount: -150, Description: "Transfer to Alice - rent"})
	if id != "tx-42" {
		t.Fatalf("transaction id = %q", id)
	}
	if got.Amount != 150 {
		t.Fatalf("posted amount = %v, want positive 150", got.Amount)
	}
	if got.SenderBankID != "****5678" || got.Recipient != "Alice" {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestBackendSyncSwallowsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := NewBackend(config.BankingConfig{Endpoint: srv.URL, TimeoutMS: 1000}, slog.Default())
	if id := b.Sync(context.Background(), Record{Recipient: "Bob"}); id != "" {
		t.Fatalf("expected empty id on failure, got %q", id)
	}

	// No endpoint configured: Sync is a no-op.
	b = NewBackend(config.BankingConfig{}, slog.Default())
	if id := b.Sync(context.Background(), Record{}); id != "" {
		t.Fatalf("expected empty id with no endpoint, got %q", id)
	}
}
