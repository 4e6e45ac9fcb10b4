package catalog

import (
	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/ethereum/go-ethereum/common"
	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// ValidateAddress checks that an address matches the network's address
// family and returns it in canonical form: EIP-55 checksummed for EVM
// networks, unchanged base58 for Solana.
//
// Parameters:
// - network: the network the address belongs to.
// - address: the address to validate.
//
// Returns:
// - string: the canonical address.
// - error: ErrUnknownNetwork for an unsupported network, ErrInvalidAddress
//   if the address does not match the network's address family.
func ValidateAddress(network types.Network, address string) (string, error) {
	config, err := NetworkConfig(network)
	if err != nil {
		return "", err
	}

	switch config.ChainType {
	case types.EVM:
		if !common.IsHexAddress(address) {
			return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "address %s is not a valid EVM address for network %s", address, network)
		}
		return common.HexToAddress(address).Hex(), nil

	case types.SOLANA:
		pubKey, err := sol.PublicKeyFromBase58(address)
		if err != nil {
			return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "address %s is not a valid Solana address: %v", address, err)
		}
		return pubKey.String(), nil

	default:
		return "", errors.Wrapf(commonerrors.ErrInvalidAddress, "unsupported chain type %s", config.ChainType)
	}
}
