package catalog

import (
	"github.com/ClipFinance/bridge-lib/common/types"
)

// EligibleProviders returns the providers valid for a (source, dest) network
// pair: those listed for both networks, in the source network's order.
func EligibleProviders(source, dest types.Network) ([]types.Provider, error) {
	sourceProviders, err := SupportedBridgeProviders(source)
	if err != nil {
		return nil, err
	}

	destProviders, err := SupportedBridgeProviders(dest)
	if err != nil {
		return nil, err
	}

	destSet := make(map[types.Provider]struct{}, len(destProviders))
	for _, provider := range destProviders {
		destSet[provider] = struct{}{}
	}

	var eligible []types.Provider
	for _, provider := range sourceProviders {
		if _, ok := destSet[provider]; ok {
			eligible = append(eligible, provider)
		}
	}
	return eligible, nil
}

// RoutesFor builds the possible bridge routes for a (source, dest, token)
// triple, one per eligible provider, carrying the provider's base fee and
// average transfer time.
func RoutesFor(source, dest types.Network, token string) ([]types.BridgeRoute, error) {
	providers, err := EligibleProviders(source, dest)
	if err != nil {
		return nil, err
	}

	routes := make([]types.BridgeRoute, 0, len(providers))
	for _, provider := range providers {
		info, err := BridgeProvider(provider)
		if err != nil {
			return nil, err
		}

		fee, err := BaseFee(provider)
		if err != nil {
			return nil, err
		}

		routes = append(routes, types.BridgeRoute{
			SourceNetwork:        source,
			DestNetwork:          dest,
			Token:                token,
			Provider:             provider,
			EstimatedTimeSeconds: info.AvgTransferTimeSeconds,
			BaseFee:              fee,
		})
	}
	return routes, nil
}
