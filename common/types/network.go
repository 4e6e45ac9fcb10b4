package types

// Network identifies a supported blockchain network.
type Network string

const (
	// NetworkEthereum represents the Ethereum mainnet.
	NetworkEthereum Network = "ETHEREUM"
	// NetworkPolygon represents the Polygon PoS network.
	NetworkPolygon Network = "POLYGON"
	// NetworkArbitrum represents the Arbitrum One rollup.
	NetworkArbitrum Network = "ARBITRUM"
	// NetworkOptimism represents the Optimism rollup.
	NetworkOptimism Network = "OPTIMISM"
	// NetworkBase represents the Base rollup.
	NetworkBase Network = "BASE"
	// NetworkSolana represents the Solana mainnet.
	NetworkSolana Network = "SOLANA"
)

// String converts Network to string representation.
func (n Network) String() string {
	return string(n)
}

// NetworkConfig holds the static configuration of one supported network.
//
// Fields:
// - Network: the network identifier.
// - ChainType: the address family the network belongs to.
// - ChainID: the numeric chain id; meaningful for EVM networks only.
// - NativeCurrency: the symbol of the network's native currency.
// - BridgeProviders: the bridge providers that serve this network.
type NetworkConfig struct {
	Network         Network
	ChainType       ChainType
	ChainID         uint64
	NativeCurrency  string
	BridgeProviders []Provider
}

// IsEvm reports whether the network belongs to the EVM address family.
func (c *NetworkConfig) IsEvm() bool {
	return c.ChainType == EVM
}
