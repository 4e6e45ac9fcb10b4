package catalog

import (
	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/pkg/errors"
)

// networkConfigs is the static table of supported networks. Business rules
// live in these tables and the pure query functions below rather than on the
// enumeration itself.
var networkConfigs = map[types.Network]types.NetworkConfig{
	types.NetworkEthereum: {
		Network:        types.NetworkEthereum,
		ChainType:      types.EVM,
		ChainID:        1,
		NativeCurrency: "ETH",
		BridgeProviders: []types.Provider{
			types.ProviderWormhole, types.ProviderLayerZero, types.ProviderAxelar, types.ProviderDemo,
		},
	},
	types.NetworkPolygon: {
		Network:        types.NetworkPolygon,
		ChainType:      types.EVM,
		ChainID:        137,
		NativeCurrency: "POL",
		BridgeProviders: []types.Provider{
			types.ProviderWormhole, types.ProviderLayerZero, types.ProviderAxelar, types.ProviderDemo,
		},
	},
	types.NetworkArbitrum: {
		Network:        types.NetworkArbitrum,
		ChainType:      types.EVM,
		ChainID:        42161,
		NativeCurrency: "ETH",
		BridgeProviders: []types.Provider{
			types.ProviderWormhole, types.ProviderLayerZero, types.ProviderDemo,
		},
	},
	types.NetworkOptimism: {
		Network:        types.NetworkOptimism,
		ChainType:      types.EVM,
		ChainID:        10,
		NativeCurrency: "ETH",
		BridgeProviders: []types.Provider{
			types.ProviderLayerZero, types.ProviderAxelar, types.ProviderDemo,
		},
	},
	types.NetworkBase: {
		Network:        types.NetworkBase,
		ChainType:      types.EVM,
		ChainID:        8453,
		NativeCurrency: "ETH",
		BridgeProviders: []types.Provider{
			types.ProviderLayerZero, types.ProviderDemo,
		},
	},
	types.NetworkSolana: {
		Network:        types.NetworkSolana,
		ChainType:      types.SOLANA,
		NativeCurrency: "SOL",
		BridgeProviders: []types.Provider{
			types.ProviderWormhole, types.ProviderDemo,
		},
	},
}

// Networks returns the configurations of all supported networks in a stable
// order.
func Networks() []types.NetworkConfig {
	ordered := []types.Network{
		types.NetworkEthereum,
		types.NetworkPolygon,
		types.NetworkArbitrum,
		types.NetworkOptimism,
		types.NetworkBase,
		types.NetworkSolana,
	}

	configs := make([]types.NetworkConfig, 0, len(ordered))
	for _, network := range ordered {
		configs = append(configs, networkConfigs[network])
	}
	return configs
}

// NetworkConfig returns the configuration for a network.
//
// Parameters:
// - network: the network to look up.
//
// Returns:
// - *types.NetworkConfig: the network configuration.
// - error: ErrUnknownNetwork if the network is not supported.
func NetworkConfig(network types.Network) (*types.NetworkConfig, error) {
	config, ok := networkConfigs[network]
	if !ok {
		return nil, errors.Wrapf(commonerrors.ErrUnknownNetwork, "network %s", network)
	}
	return &config, nil
}

// SupportedBridgeProviders returns the bridge providers valid for a network.
func SupportedBridgeProviders(network types.Network) ([]types.Provider, error) {
	config, err := NetworkConfig(network)
	if err != nil {
		return nil, err
	}

	providers := make([]types.Provider, len(config.BridgeProviders))
	copy(providers, config.BridgeProviders)
	return providers, nil
}

// IsEvm reports whether a network belongs to the EVM address family.
func IsEvm(network types.Network) (bool, error) {
	config, err := NetworkConfig(network)
	if err != nil {
		return false, err
	}
	return config.IsEvm(), nil
}

// ChainID returns the numeric chain id of an EVM network. The second return
// value is false for non-EVM networks, which have no chain id.
func ChainID(network types.Network) (uint64, bool, error) {
	config, err := NetworkConfig(network)
	if err != nil {
		return 0, false, err
	}

	if !config.IsEvm() {
		return 0, false, nil
	}
	return config.ChainID, true, nil
}
