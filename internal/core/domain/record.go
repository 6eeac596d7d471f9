package domain

// TxStatus is the lifecycle status of a submitted transaction.
type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusFailed    TxStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s TxStatus) Terminal() bool {
	return s == TxStatusConfirmed || s == TxStatusFailed
}

// Direction marks a record as sent from or received by the owner address.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// TransactionRecord is a persisted history entry for a submitted transaction.
// Only Status and the chain-observed fields (BlockNumber, GasUsed) change
// after creation; everything else is immutable.
type TransactionRecord struct {
	Hash        string    `json:"hash"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Amount      string    `json:"amount"`
	Status      TxStatus  `json:"status"`
	Timestamp   int64     `json:"timestamp"`
	BlockNumber uint64    `json:"blockNumber,omitempty"`
	GasUsed     uint64    `json:"gasUsed,omitempty"`
	GasPrice    string    `json:"gasPrice,omitempty"`
	Direction   Direction `json:"direction"`
	Token       *Token    `json:"token,omitempty"`
}

// ChainObservation carries receipt fields applied alongside a status update.
type ChainObservation struct {
	BlockNumber uint64
	GasUsed     uint64
}

// Involves reports whether the record touches the given address as sender
// or recipient, case-insensitively.
func (r *TransactionRecord) Involves(address string) bool {
	return SameAddress(r.From, address) || SameAddress(r.To, address)
}
