package models

// YieldStrategy identifies a yield position on Sui by its on-chain strategy id.
// Ids outside the known set are carried through as custom strategies rather
// than rejected, so new on-chain strategies never break event decoding.
type YieldStrategy uint8

const (
	// StrategyScallopUSDC is the Scallop USDC lending pool
	StrategyScallopUSDC YieldStrategy = 1
	// StrategyScallopSUI is the Scallop SUI lending pool
	StrategyScallopSUI YieldStrategy = 2
	// StrategyNaviUSDC is the Navi USDC lending pool
	StrategyNaviUSDC YieldStrategy = 3
	// StrategyNaviSUI is the Navi SUI lending pool
	StrategyNaviSUI YieldStrategy = 4
)

// KnownStrategies lists the closed set of named strategies
var KnownStrategies = []YieldStrategy{
	StrategyScallopUSDC,
	StrategyScallopSUI,
	StrategyNaviUSDC,
	StrategyNaviSUI,
}

// StrategyFromID maps an on-chain strategy id to a YieldStrategy.
// Unknown ids map to a custom strategy, never an error.
func StrategyFromID(id uint8) YieldStrategy {
	return YieldStrategy(id)
}

// ID returns the on-chain strategy id
func (s YieldStrategy) ID() uint8 {
	return uint8(s)
}

// IsCustom reports whether s is outside the known strategy set
func (s YieldStrategy) IsCustom() bool {
	switch s {
	case StrategyScallopUSDC, StrategyScallopSUI, StrategyNaviUSDC, StrategyNaviSUI:
		return false
	}
	return true
}

// Name returns a human-readable strategy name
func (s YieldStrategy) Name() string {
	switch s {
	case StrategyScallopUSDC:
		return "Scallop USDC Lending"
	case StrategyScallopSUI:
		return "Scallop SUI Lending"
	case StrategyNaviUSDC:
		return "Navi USDC Lending"
	case StrategyNaviSUI:
		return "Navi SUI Lending"
	}
	return "Custom Strategy"
}

// Protocol returns the protocol the strategy deposits into
func (s YieldStrategy) Protocol() string {
	switch s {
	case StrategyScallopUSDC, StrategyScallopSUI:
		return "Scallop"
	case StrategyNaviUSDC, StrategyNaviSUI:
		return "Navi"
	}
	return "Custom"
}

// Asset returns the asset held by the strategy
func (s YieldStrategy) Asset() string {
	switch s {
	case StrategyScallopUSDC, StrategyNaviUSDC:
		return "USDC"
	case StrategyScallopSUI, StrategyNaviSUI:
		return "SUI"
	}
	return "Unknown"
}

// RequiresSuiSwap reports whether the bridged USDC must be swapped to SUI
// on the destination before depositing
func (s YieldStrategy) RequiresSuiSwap() bool {
	return s == StrategyScallopSUI || s == StrategyNaviSUI
}
