package send

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vietddude/walletcore/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func quoteWithCost(t *testing.T, costNative string) *domain.FeeQuote {
	t.Helper()
	wei, err := domain.DecimalToWei(dec(costNative))
	if err != nil {
		t.Fatalf("bad cost %s: %v", costNative, err)
	}
	// GasLimit 1 makes the gas price equal the whole cost
	return domain.NewFeeQuote(1, wei, false)
}

func TestValidateDraft_Affordability(t *testing.T) {
	cases := []struct {
		name    string
		amount  string
		fee     string
		balance string
		valid   bool
	}{
		{"amount plus fee within balance", "0.998", "0.002", "1.0", true},
		{"amount plus fee exactly balance", "0.9995", "0.0005", "1.0", true},
		{"amount alone fits, total does not", "0.999", "0.002", "1.0", false},
		{"tiny balance, total exceeds", "0.0003", "0.0003", "0.0005", false},
		{"tiny balance, total fits", "0.0002", "0.0003", "0.0005", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := domain.TransactionDraft{Recipient: recipient, Amount: tc.amount}
			result := ValidateDraft(draft, quoteWithCost(t, tc.fee), dec(tc.balance))

			if result.Valid() != tc.valid {
				t.Errorf("Valid() = %v, want %v (errors: %v)", result.Valid(), tc.valid, result.Errors)
			}
			if !tc.valid {
				if reason, _ := result.Reason(FieldAmount); reason != ReasonInsufficientFunds {
					t.Errorf("amount reason = %q, want insufficient_funds", reason)
				}
			}
		})
	}
}

func TestValidateDraft_FieldErrors(t *testing.T) {
	quote := quoteWithCost(t, "0.0005")
	balance := dec("1.0")

	cases := []struct {
		name   string
		draft  domain.TransactionDraft
		field  Field
		reason Reason
	}{
		{"missing recipient", domain.TransactionDraft{Amount: "0.5"}, FieldRecipient, ReasonRequired},
		{"malformed recipient", domain.TransactionDraft{Recipient: "0x123", Amount: "0.5"}, FieldRecipient, ReasonInvalidAddress},
		{"missing amount", domain.TransactionDraft{Recipient: recipient}, FieldAmount, ReasonRequired},
		{"non-numeric amount", domain.TransactionDraft{Recipient: recipient, Amount: "1,5"}, FieldAmount, ReasonInvalidAmount},
		{"zero amount", domain.TransactionDraft{Recipient: recipient, Amount: "0"}, FieldAmount, ReasonInvalidAmount},
		{"negative amount", domain.TransactionDraft{Recipient: recipient, Amount: "-1"}, FieldAmount, ReasonInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ValidateDraft(tc.draft, quote, balance)
			if result.Valid() {
				t.Fatal("Expected invalid result")
			}
			if reason, ok := result.Reason(tc.field); !ok || reason != tc.reason {
				t.Errorf("%s reason = %q, want %q", tc.field, reason, tc.reason)
			}
		})
	}
}

func TestValidateDraft_QuotePending(t *testing.T) {
	draft := domain.TransactionDraft{Recipient: recipient, Amount: "0.5"}
	result := ValidateDraft(draft, nil, dec("1.0"))

	if result.Valid() {
		t.Fatal("Draft without a quote must not validate")
	}
	reason, ok := result.Reason(FieldFee)
	if !ok || reason != ReasonQuotePending {
		t.Errorf("fee reason = %q, want quote_pending", reason)
	}
	// The amount itself is fine; only the fee is outstanding
	if _, ok := result.Reason(FieldAmount); ok {
		t.Error("Amount flagged despite being well-formed")
	}
}

func TestMaxSendable(t *testing.T) {
	quote := quoteWithCost(t, "0.002")

	if got := MaxSendable(dec("1.0"), quote); !got.Equal(dec("0.998")) {
		t.Errorf("MaxSendable = %s, want 0.998", got)
	}
	if got := MaxSendable(dec("0.001"), quote); !got.IsZero() {
		t.Errorf("MaxSendable below fee = %s, want 0", got)
	}
	if got := MaxSendable(dec("1.0"), nil); !got.IsZero() {
		t.Errorf("MaxSendable without quote = %s, want 0", got)
	}
}
