package banking

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/maratech/voxguide/internal/config"
)

// ErrInsufficientFunds is returned when a transfer exceeds the balance.
// The ledger is left untouched.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Record is one ledger entry. Amounts are negative for debits.
type Record struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Recipient   string  `json:"recipient,omitempty"`
}

// Ledger holds the demo account state. Safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	balance float64
	records []Record
	clock   func() time.Time
	logger  *slog.Logger
}

// NewLedger seeds the demo account with a starting balance and history.
func NewLedger(cfg config.BankingConfig, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		balance: cfg.InitialBalance,
		records: []Record{
			{ID: 1, Description: "Salary Deposit", Date: "Feb 1, 2026", Amount: 3500.00, Type: "credit"},
			{ID: 2, Description: "Online Shopping", Date: "Feb 6, 2026", Amount: -125.00, Type: "debit"},
			{ID: 3, Description: "Mobile Payment", Date: "Jan 28, 2026", Amount: -45.99, Type: "debit"},
		},
		clock:  time.Now,
		logger: logger.With("component", "banking"),
	}
}

// SetClock overrides the time source. Used by tests.
func (l *Ledger) SetClock(clock func() time.Time) {
	l.mu.Lock()
	l.clock = clock
	l.mu.Unlock()
}

// Balance returns the current balance.
func (l *Ledger) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Records returns the history, most recent first.
func (l *Ledger) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Execute debits the account and prepends a history record. A transfer
// larger than the balance fails with ErrInsufficientFunds and changes
// nothing.
func (l *Ledger) Execute(recipient string, amount float64, description string) (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount > l.balance {
		l.logger.Warn("transfer rejected", "recipient", recipient, "amount", amount, "balance", l.balance)
		return Record{}, ErrInsufficientFunds
	}

	l.balance -= amount
	rec := Record{
		ID:          len(l.records) + 1,
		Description: fmt.Sprintf("Transfer to %s - %s", recipient, description),
		Date:        l.clock().Format("Jan 2, 2006"),
		Amount:      -amount,
		Type:        "debit",
		Recipient:   recipient,
	}
	l.records = append([]Record{rec}, l.records...)
	l.logger.Info("transfer executed", "recipient", recipient, "amount", amount, "balance", l.balance)
	return rec, nil
}
