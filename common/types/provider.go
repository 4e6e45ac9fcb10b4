package types

// Provider represents a bridge provider identifier.
type Provider string

const (
	// ProviderWormhole represents the Wormhole bridge protocol.
	ProviderWormhole Provider = "WORMHOLE"
	// ProviderLayerZero represents the LayerZero bridge protocol.
	ProviderLayerZero Provider = "LAYERZERO"
	// ProviderAxelar represents the Axelar bridge protocol.
	ProviderAxelar Provider = "AXELAR"
	// ProviderDemo represents the built-in demo provider used as a reference
	// implementation and in tests. It is never production ready.
	ProviderDemo Provider = "DEMO"
)

// String converts Provider to its string representation.
func (p Provider) String() string {
	return string(p)
}

// BridgeProvider holds the static description of a bridge provider.
//
// Fields:
// - ID: the unique provider identifier.
// - Name: the human readable display name.
// - AvgTransferTimeSeconds: an average transfer time used only as a ranking hint.
// - ProductionReady: whether the provider may serve production traffic.
type BridgeProvider struct {
	ID                     Provider
	Name                   string
	AvgTransferTimeSeconds int64
	ProductionReady        bool
}
