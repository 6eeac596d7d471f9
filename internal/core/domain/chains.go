package domain

type ChainID string
type ChainName string

const (
	// Chain IDs
	ChainIDEthereum ChainID = "1"
	ChainIDPolygon  ChainID = "137"
	ChainIDSepolia  ChainID = "11155111"

	// Chain Names (Internal Codes)
	ChainNameEthereum ChainName = "ETHEREUM_MAINNET"
	ChainNamePolygon  ChainName = "POLYGON_MAINNET"
	ChainNameSepolia  ChainName = "ETHEREUM_SEPOLIA"
)

// ChainIDToName maps ChainID to its human-readable InternalCode/Name.
var ChainIDToName = map[ChainID]ChainName{
	ChainIDEthereum: ChainNameEthereum,
	ChainIDPolygon:  ChainNamePolygon,
	ChainIDSepolia:  ChainNameSepolia,
}

// Name returns the internal code for a chain ID, or the raw ID when unknown.
func (c ChainID) Name() string {
	if name, ok := ChainIDToName[c]; ok {
		return string(name)
	}
	return string(c)
}

// NativeSymbol returns the ticker of the chain's native coin.
func (c ChainID) NativeSymbol() string {
	switch c {
	case ChainIDPolygon:
		return "POL"
	default:
		return "ETH"
	}
}
