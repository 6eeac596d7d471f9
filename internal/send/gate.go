package send

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vietddude/walletcore/internal/core/domain"
)

var (
	// ErrGateBusy is returned when arming a gate that is already holding a draft.
	ErrGateBusy = errors.New("confirmation already in progress")

	// ErrNothingToConfirm is returned by Confirm/Cancel on a closed gate.
	ErrNothingToConfirm = errors.New("no draft awaiting confirmation")
)

// Snapshot freezes a validated draft, its fee quote, and the total cost
// (amount + fee) for display and submission. Once snapshotted, no field can
// change without going back through validation.
type Snapshot struct {
	Draft domain.TransactionDraft
	Quote domain.FeeQuote
	Total decimal.Decimal
}

// Gate holds exactly one validated draft pending explicit approval. The only
// transitions out of the armed state are Confirm and Cancel; both close the
// gate, so a second confirm can never double-submit and editing requires
// re-validation. This closes the time-of-check/time-of-use gap between fee
// quoting and submission.
type Gate struct {
	mu    sync.Mutex
	armed bool
	snap  Snapshot
}

func NewGate() *Gate {
	return &Gate{}
}

// Arm places a snapshot into the gate. Only a draft that passed validation
// may be armed; callers enforce that via Flow.RequestConfirmation.
func (g *Gate) Arm(snap Snapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.armed {
		return ErrGateBusy
	}
	g.armed = true
	g.snap = snap
	return nil
}

// Pending returns the held snapshot for display.
func (g *Gate) Pending() (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snap, g.armed
}

// Confirm releases the snapshot for submission and closes the gate before
// the caller dispatches anything.
func (g *Gate) Confirm() (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.armed {
		return Snapshot{}, ErrNothingToConfirm
	}
	g.armed = false
	snap := g.snap
	g.snap = Snapshot{}
	return snap, nil
}

// Cancel discards the held snapshot and closes the gate.
func (g *Gate) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.armed {
		return ErrNothingToConfirm
	}
	g.armed = false
	g.snap = Snapshot{}
	return nil
}
