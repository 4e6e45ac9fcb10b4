package catalog

import (
	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// bridgeProviders is the static table of known bridge providers. Average
// transfer times are ranking hints only.
var bridgeProviders = map[types.Provider]types.BridgeProvider{
	types.ProviderWormhole: {
		ID:                     types.ProviderWormhole,
		Name:                   "Wormhole",
		AvgTransferTimeSeconds: 900,
		ProductionReady:        true,
	},
	types.ProviderLayerZero: {
		ID:                     types.ProviderLayerZero,
		Name:                   "LayerZero",
		AvgTransferTimeSeconds: 300,
		ProductionReady:        true,
	},
	types.ProviderAxelar: {
		ID:                     types.ProviderAxelar,
		Name:                   "Axelar",
		AvgTransferTimeSeconds: 600,
		ProductionReady:        true,
	},
	types.ProviderDemo: {
		ID:                     types.ProviderDemo,
		Name:                   "Demo Bridge",
		AvgTransferTimeSeconds: 5,
		ProductionReady:        false,
	},
}

// providerBaseFees holds the flat base fee each provider charges, denominated
// in the bridged token.
var providerBaseFees = map[types.Provider]decimal.Decimal{
	types.ProviderWormhole:  decimal.RequireFromString("0.8"),
	types.ProviderLayerZero: decimal.RequireFromString("0.5"),
	types.ProviderAxelar:    decimal.RequireFromString("0.65"),
	types.ProviderDemo:      decimal.RequireFromString("0.1"),
}

// BridgeProvider returns the static description of a provider.
func BridgeProvider(provider types.Provider) (*types.BridgeProvider, error) {
	info, ok := bridgeProviders[provider]
	if !ok {
		return nil, errors.Wrapf(commonerrors.ErrRouteUnsupported, "unknown provider %s", provider)
	}
	return &info, nil
}

// BaseFee returns the flat base fee a provider charges, denominated in the
// bridged token.
func BaseFee(provider types.Provider) (decimal.Decimal, error) {
	fee, ok := providerBaseFees[provider]
	if !ok {
		return decimal.Zero, errors.Wrapf(commonerrors.ErrRouteUnsupported, "unknown provider %s", provider)
	}
	return fee, nil
}
