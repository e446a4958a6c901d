package dialog

import (
	"context"
	"testing"

	"github.com/maratech/voxguide/internal/i18n"
)

// scripts below start at the main dialogue: language, vision skip, then
// Banking and its transfer option.
func transferPreamble() []string {
	return []string{"francais", "non", "banque", "faire une transaction"}
}

func TestVoiceTransferCommits(t *testing.T) {
	script := append(transferPreamble(),
		"Alice",
		"150 dollars",
		"partage du loyer",
		"confirmer",
		"retour",
	)
	f := newFixture(t, "", script...)
	f.controller.Run(context.Background())

	if got := f.ledger.Balance(); got != 5090.50 {
		t.Fatalf("balance = %v", got)
	}
	recs := f.ledger.Records()
	if recs[0].Recipient != "Alice" || recs[0].Amount != -150 {
		t.Fatalf("ledger head = %+v", recs[0])
	}
	if !spokenContaining(f.synth, "5090.50") {
		t.Fatalf("new balance never spoken; spoken=%v", f.synth.SpokenTexts())
	}
	if !spokenContaining(f.synth, i18n.T(i18n.French, "tx_done_resume")) {
		t.Fatal("section never resumed after transfer")
	}
}

func TestVoiceTransferCancel(t *testing.T) {
	script := append(transferPreamble(),
		"Bob",
		"200",
		"un cadeau",
		"annuler",
	)
	f := newFixture(t, "", script...)
	f.controller.Run(context.Background())

	if got := f.ledger.Balance(); got != 5240.50 {
		t.Fatalf("balance mutated on cancel: %v", got)
	}
	if !spokenContaining(f.synth, i18n.T(i18n.French, "tx_canceled")) {
		t.Fatal("cancellation never announced")
	}
}

func TestVoiceTransferInsufficientFunds(t *testing.T) {
	script := append(transferPreamble(),
		"Bob",
		"9000",
		"trop cher",
		"confirmer",
	)
	f := newFixture(t, "", script...)
	f.controller.Run(context.Background())

	if got := f.ledger.Balance(); got != 5240.50 {
		t.Fatalf("balance mutated on rejection: %v", got)
	}
	if got := len(f.ledger.Records()); got != 3 {
		t.Fatalf("records mutated on rejection: %d", got)
	}
	if !spokenContaining(f.synth, "5240.50") {
		t.Fatal("refusal with balance never spoken")
	}
	// Section resumes after the refusal.
	if !spokenContaining(f.synth, i18n.T(i18n.French, "tx_done_resume")) {
		t.Fatal("section never resumed after rejection")
	}
}

func TestVoiceTransferWordAmount(t *testing.T) {
	script := append(transferPreamble(),
		"Chloé",
		"fifty dollars",
		"dejeuner",
		"confirmer",
	)
	f := newFixture(t, "", script...)
	f.controller.Run(context.Background())

	if got := f.ledger.Balance(); got != 5190.50 {
		t.Fatalf("balance = %v", got)
	}
}

func TestVoiceTransferAbandonedAfterBadAmounts(t *testing.T) {
	script := append(transferPreamble(),
		"Dora",
		"beaucoup",     // no amount
		"plein de sous", // still no amount
		"vraiment beaucoup",
	)
	f := newFixture(t, "", script...)
	f.controller.Run(context.Background())

	if got := f.ledger.Balance(); got != 5240.50 {
		t.Fatalf("balance mutated on abandonment: %v", got)
	}
	if !spokenContaining(f.synth, i18n.T(i18n.French, "tx_amount_not_understood")) {
		t.Fatal("amount retry notice never spoken")
	}
	if !spokenContaining(f.synth, i18n.T(i18n.French, "tx_abandoned")) {
		t.Fatal("abandonment never announced")
	}
}
