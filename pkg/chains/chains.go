// Package chains defines the chain identities the agent knows about and the
// CCTP domain registry used to address burn-and-mint transfers.
package chains

// Chain is a logical chain identity
type Chain string

const (
	Ethereum    Chain = "ethereum"
	Avalanche   Chain = "avalanche"
	Optimism    Chain = "optimism"
	Arbitrum    Chain = "arbitrum"
	Base        Chain = "base"
	BaseSepolia Chain = "base_sepolia"
	Sepolia     Chain = "sepolia"
	Sui         Chain = "sui"
)

// CCTP domain ids. Domain ids are protocol-level identifiers, distinct from
// native chain IDs.
const (
	DomainEthereum  uint32 = 0
	DomainAvalanche uint32 = 1
	DomainOptimism  uint32 = 2
	DomainArbitrum  uint32 = 3
	DomainBase      uint32 = 5
	DomainSui       uint32 = 10
)

// EvmChainList contains the supported EVM source chains
var EvmChainList = []Chain{
	Ethereum,
	Base,
	Arbitrum,
	Optimism,
	BaseSepolia,
	Sepolia,
}

// chainIDs maps EVM chains to their native chain IDs
var chainIDs = map[Chain]uint64{
	Ethereum:    1,
	Avalanche:   43114,
	Optimism:    10,
	Arbitrum:    42161,
	Base:        8453,
	BaseSepolia: 84532,
	Sepolia:     11155111,
}

// cctpDomains maps logical chain identities to CCTP domain ids
var cctpDomains = map[Chain]uint32{
	Ethereum:    DomainEthereum,
	Avalanche:   DomainAvalanche,
	Optimism:    DomainOptimism,
	Arbitrum:    DomainArbitrum,
	Base:        DomainBase,
	BaseSepolia: DomainBase,
	Sepolia:     DomainEthereum,
	Sui:         DomainSui,
}

// ChainID returns the native chain ID for an EVM chain, or 0 if the chain
// has no EVM chain ID (Sui, unknown chains)
func (c Chain) ChainID() uint64 {
	return chainIDs[c]
}

// IsEvm reports whether c is an EVM chain
func (c Chain) IsEvm() bool {
	_, ok := chainIDs[c]
	return ok
}

// IsTestnet reports whether c is a test network
func (c Chain) IsTestnet() bool {
	return c == BaseSepolia || c == Sepolia
}

// Name returns a display name for the chain
func (c Chain) Name() string {
	switch c {
	case Ethereum:
		return "Ethereum"
	case Avalanche:
		return "Avalanche"
	case Optimism:
		return "Optimism"
	case Arbitrum:
		return "Arbitrum One"
	case Base:
		return "Base"
	case BaseSepolia:
		return "Base Sepolia"
	case Sepolia:
		return "Sepolia"
	case Sui:
		return "Sui"
	}
	return string(c)
}

// Domain returns the CCTP domain id for a chain. The registry is a fixed,
// process-wide constant; lookups are order-independent.
func Domain(c Chain) (uint32, bool) {
	d, ok := cctpDomains[c]
	return d, ok
}

// FromChainID resolves an EVM chain ID back to a logical chain identity
func FromChainID(id uint64) (Chain, bool) {
	for chain, chainID := range chainIDs {
		if chainID == id {
			return chain, true
		}
	}
	return "", false
}
