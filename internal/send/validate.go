package send

import (
	"github.com/shopspring/decimal"

	"github.com/vietddude/walletcore/internal/core/domain"
)

// Field identifies the draft field a validation reason applies to.
type Field string

const (
	FieldRecipient Field = "recipient"
	FieldAmount    Field = "amount"
	FieldFee       Field = "fee"
)

// Reason is a machine-readable validation failure.
type Reason string

const (
	ReasonRequired          Reason = "required"
	ReasonInvalidAddress    Reason = "invalid_address"
	ReasonInvalidAmount     Reason = "invalid_amount"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	// ReasonQuotePending means no live fee quote exists yet (estimation
	// still running or failed). Distinct from an amount error so the UI can
	// tell "still computing" from "invalid".
	ReasonQuotePending Reason = "quote_pending"
)

// Result maps fields to failure reasons. An empty map means the draft is
// submittable.
type Result struct {
	Errors map[Field]Reason
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r Result) Reason(f Field) (Reason, bool) {
	reason, ok := r.Errors[f]
	return reason, ok
}

// ValidateDraft checks a draft against its live fee quote and the account
// balance. Pure: same inputs always give the same result.
//
// Affordability is checked as amount + fee ≤ balance; a draft whose amount
// alone fits the balance but whose total does not is rejected here rather
// than discovered failing on chain. Pass quote == nil when no live quote
// exists; the draft is then reported not submittable with ReasonQuotePending.
func ValidateDraft(draft domain.TransactionDraft, quote *domain.FeeQuote, balance decimal.Decimal) Result {
	errs := make(map[Field]Reason)

	if draft.Recipient == "" {
		errs[FieldRecipient] = ReasonRequired
	} else if !domain.ValidAddress(draft.Recipient) {
		errs[FieldRecipient] = ReasonInvalidAddress
	}

	var amount decimal.Decimal
	amountOK := false
	if draft.Amount == "" {
		errs[FieldAmount] = ReasonRequired
	} else {
		parsed, err := domain.ParseDecimalAmount(draft.Amount)
		if err != nil || !parsed.IsPositive() {
			errs[FieldAmount] = ReasonInvalidAmount
		} else {
			amount = parsed
			amountOK = true
		}
	}

	if quote == nil {
		errs[FieldFee] = ReasonQuotePending
	} else if amountOK {
		total := amount.Add(quote.CostNative)
		if total.GreaterThan(balance) {
			errs[FieldAmount] = ReasonInsufficientFunds
		}
	}

	return Result{Errors: errs}
}

// MaxSendable returns the largest amount the balance can cover after the
// quoted fee, floored at zero. Replaces guesswork buffers with the live
// quote.
func MaxSendable(balance decimal.Decimal, quote *domain.FeeQuote) decimal.Decimal {
	if quote == nil {
		return decimal.Zero
	}
	max := balance.Sub(quote.CostNative)
	if max.IsNegative() {
		return decimal.Zero
	}
	return max
}
