package send

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/infra/chain"
)

// ErrQuoteStale is returned when the draft was edited while a confirmation
// request was validating it; the caller must re-estimate.
var ErrQuoteStale = errors.New("fee quote no longer matches the draft")

// Flow drives one draft from editing through estimation, validation,
// confirmation and submission. Every mutation bumps a generation counter;
// a quote is usable only while its generation matches the draft's, so a
// slow estimate that lands after the user edits the form is discarded
// rather than validating stale numbers.
type Flow struct {
	ID    string
	owner string

	provider  chain.Provider
	estimator *Estimator
	submitter *Submitter
	gate      *Gate
	log       *slog.Logger

	mu       sync.Mutex
	draft    domain.TransactionDraft
	gen      uint64
	quote    *domain.FeeQuote
	quoteGen uint64
}

func NewFlow(owner string, provider chain.Provider, estimator *Estimator, submitter *Submitter, log *slog.Logger) *Flow {
	if log == nil {
		log = slog.Default()
	}
	return &Flow{
		ID:        uuid.NewString(),
		owner:     owner,
		provider:  provider,
		estimator: estimator,
		submitter: submitter,
		gate:      NewGate(),
		log:       log.With("flow", owner),
	}
}

// Owner returns the sending address the flow was opened for.
func (f *Flow) Owner() string { return f.owner }

// Draft returns a copy of the current draft.
func (f *Flow) Draft() domain.TransactionDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Flow) SetRecipient(addr string) { f.edit(func(d *domain.TransactionDraft) { d.Recipient = addr }) }
func (f *Flow) SetAmount(amount string)  { f.edit(func(d *domain.TransactionDraft) { d.Amount = amount }) }
func (f *Flow) SetData(data []byte)      { f.edit(func(d *domain.TransactionDraft) { d.Data = data }) }
func (f *Flow) SetGasLimit(limit string) { f.edit(func(d *domain.TransactionDraft) { d.GasLimit = limit }) }
func (f *Flow) SetGasPrice(price string) { f.edit(func(d *domain.TransactionDraft) { d.GasPrice = price }) }

func (f *Flow) edit(apply func(*domain.TransactionDraft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apply(&f.draft)
	f.gen++
	_ = f.gate.Cancel()
}

// Estimate fetches a fee quote for the draft as it stands. If the draft is
// edited while the estimate is in flight the result is dropped and the
// caller gets the quote back without it being retained for validation.
func (f *Flow) Estimate(ctx context.Context) (*domain.FeeQuote, error) {
	f.mu.Lock()
	draft := f.draft
	gen := f.gen
	f.mu.Unlock()

	quote, err := f.estimator.Quote(ctx, f.owner, draft)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		f.log.Debug("Discarding stale fee quote", "quoteGen", gen, "gen", f.gen)
		return quote, nil
	}
	f.quote = quote
	f.quoteGen = gen
	return quote, nil
}

// Quote returns the retained fee quote, or nil if none matches the current
// draft.
func (f *Flow) Quote() *domain.FeeQuote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentQuote()
}

func (f *Flow) currentQuote() *domain.FeeQuote {
	if f.quote != nil && f.quoteGen == f.gen {
		return f.quote
	}
	return nil
}

// Validate checks the draft against the owner's live balance and the
// retained quote. A draft without a fresh quote fails with a quote_pending
// fee error rather than validating against stale costs.
func (f *Flow) Validate(ctx context.Context) (Result, error) {
	balanceWei, err := f.provider.Balance(ctx, f.owner)
	if err != nil {
		return Result{}, fmt.Errorf("fetch balance: %w", err)
	}
	balance := domain.WeiToDecimal(balanceWei)

	f.mu.Lock()
	draft := f.draft
	quote := f.currentQuote()
	f.mu.Unlock()

	return ValidateDraft(draft, quote, balance), nil
}

// MaxSendable reports the largest amount the owner can send after the
// retained quote's fee is reserved. Without a fresh quote it returns zero.
func (f *Flow) MaxSendable(ctx context.Context) (decimal.Decimal, error) {
	balanceWei, err := f.provider.Balance(ctx, f.owner)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch balance: %w", err)
	}

	f.mu.Lock()
	quote := f.currentQuote()
	f.mu.Unlock()

	return MaxSendable(domain.WeiToDecimal(balanceWei), quote), nil
}

// RequestConfirmation validates the draft and, if it passes, arms the gate
// with an immutable snapshot of the draft, its quote, and the total cost.
// An edit landing between validation and the snapshot invalidates the quote;
// the request then fails with ErrQuoteStale instead of arming a snapshot the
// user never validated.
func (f *Flow) RequestConfirmation(ctx context.Context) (Snapshot, error) {
	result, err := f.Validate(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if !result.Valid() {
		return Snapshot{}, fmt.Errorf("draft failed validation: %v", result.Errors)
	}

	f.mu.Lock()
	draft := f.draft
	quote := f.currentQuote()
	f.mu.Unlock()

	if quote == nil {
		return Snapshot{}, ErrQuoteStale
	}

	amount, err := domain.ParseDecimalAmount(draft.Amount)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse amount: %w", err)
	}

	snap := Snapshot{
		Draft: draft,
		Quote: *quote,
		Total: amount.Add(quote.CostNative),
	}
	if err := f.gate.Arm(snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Confirm releases the armed snapshot and submits it. On success the draft
// is cleared so a repeated confirm cannot resubmit.
func (f *Flow) Confirm(ctx context.Context) (*domain.TransactionRecord, error) {
	snap, err := f.gate.Confirm()
	if err != nil {
		return nil, err
	}

	record, err := f.submitter.Submit(ctx, f.owner, snap)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.draft = domain.TransactionDraft{}
	f.gen++
	f.quote = nil
	f.mu.Unlock()

	return record, nil
}

// Cancel dismisses a pending confirmation. The draft keeps its values so
// the user can edit and retry.
func (f *Flow) Cancel() error { return f.gate.Cancel() }

// Pending exposes the armed snapshot, if any.
func (f *Flow) Pending() (Snapshot, bool) { return f.gate.Pending() }
