package domain

// Token identifies an ERC-20 token tracked by the wallet.
type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`
}
