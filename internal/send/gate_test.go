package send

import (
	"errors"
	"math/big"
	"testing"

	"github.com/vietddude/walletcore/internal/core/domain"
)

func snapshot(amount string) Snapshot {
	quote := domain.NewFeeQuote(21000, big.NewInt(20_000_000_000), false)
	return Snapshot{
		Draft: domain.TransactionDraft{Recipient: recipient, Amount: amount},
		Quote: *quote,
		Total: dec(amount).Add(quote.CostNative),
	}
}

func TestGate_ConfirmReleasesOnce(t *testing.T) {
	gate := NewGate()

	if err := gate.Arm(snapshot("0.5")); err != nil {
		t.Fatalf("Arm failed: %v", err)
	}

	snap, err := gate.Confirm()
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if snap.Draft.Amount != "0.5" {
		t.Errorf("Released amount = %s, want 0.5", snap.Draft.Amount)
	}

	// Gate is closed: a second confirm cannot double-submit
	if _, err := gate.Confirm(); !errors.Is(err, ErrNothingToConfirm) {
		t.Fatalf("Second Confirm = %v, want ErrNothingToConfirm", err)
	}
}

func TestGate_ArmWhileArmed(t *testing.T) {
	gate := NewGate()

	if err := gate.Arm(snapshot("0.5")); err != nil {
		t.Fatalf("Arm failed: %v", err)
	}
	if err := gate.Arm(snapshot("9.9")); !errors.Is(err, ErrGateBusy) {
		t.Fatalf("Second Arm = %v, want ErrGateBusy", err)
	}

	// The held snapshot is untouched
	snap, armed := gate.Pending()
	if !armed || snap.Draft.Amount != "0.5" {
		t.Errorf("Pending = %v (armed=%v), want original snapshot", snap.Draft.Amount, armed)
	}
}

func TestGate_Cancel(t *testing.T) {
	gate := NewGate()

	if err := gate.Cancel(); !errors.Is(err, ErrNothingToConfirm) {
		t.Fatalf("Cancel on closed gate = %v, want ErrNothingToConfirm", err)
	}

	if err := gate.Arm(snapshot("0.5")); err != nil {
		t.Fatalf("Arm failed: %v", err)
	}
	if err := gate.Cancel(); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	if _, armed := gate.Pending(); armed {
		t.Error("Gate still armed after Cancel")
	}
	if _, err := gate.Confirm(); !errors.Is(err, ErrNothingToConfirm) {
		t.Errorf("Confirm after Cancel = %v, want ErrNothingToConfirm", err)
	}

	// Cancel reopens the gate for a fresh snapshot
	if err := gate.Arm(snapshot("1.0")); err != nil {
		t.Errorf("Re-arm after Cancel failed: %v", err)
	}
}
