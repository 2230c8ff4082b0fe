// Package sui builds the unsigned Sui deposit transaction for the final leg
// of an EVM to Sui migration. The builder only assembles Move call
// parameters; signing and submission stay with the user's wallet.
package sui

import (
	"context"
	"fmt"

	"github.com/naisu-fi/naisu-agent/pkg/logger"
	"github.com/naisu-fi/naisu-agent/pkg/models"
)

const (
	// SuiCoinType is the native SUI coin type
	SuiCoinType = "0x2::sui::SUI"
	// UsdcCoinTypeTestnet is the Circle USDC coin type on Sui testnet
	UsdcCoinTypeTestnet = "0xa1ec7fc00a6f40db9693ad1415d0c193ad3906494428cf252621037bd7117e29::usdc::USDC"

	// DefaultScallopPackage is the Scallop lending package
	DefaultScallopPackage = "0x83bbe0b3985c5e3857803e2678899b03f3c4a31be75006ab03faf268c014ce41"
	// DefaultNaviPackage is the Navi lending package
	DefaultNaviPackage = "0x81c408448d0d57b3e371ea94de1d40bf852784d3e225de1e74acab3e8395c18f"
)

// Config holds the deposit builder configuration
type Config struct {
	RPCURL         string
	ScallopPackage string
	NaviPackage    string
}

// DepositParams is the unsigned Move call that deposits bridged funds into
// the selected yield position. The frontend signs and submits it.
type DepositParams struct {
	Protocol  string `json:"protocol"`
	PackageID string `json:"package_id"`
	Module    string `json:"module"`
	Function  string `json:"function"`
	CoinType  string `json:"coin_type"`
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
	// RequiresSwap marks strategies holding SUI: the bridged USDC must be
	// swapped before the deposit call
	RequiresSwap bool `json:"requires_swap"`
}

// Builder assembles deposit transactions per yield strategy
type Builder struct {
	cfg    Config
	logger logger.Logger
}

// NewBuilder creates a deposit builder, falling back to the default
// protocol packages where the config leaves them empty
func NewBuilder(cfg Config, log logger.Logger) *Builder {
	if cfg.ScallopPackage == "" {
		cfg.ScallopPackage = DefaultScallopPackage
	}
	if cfg.NaviPackage == "" {
		cfg.NaviPackage = DefaultNaviPackage
	}
	return &Builder{cfg: cfg, logger: log}
}

// BuildDeposit builds the unsigned deposit call for the intent's strategy.
// Custom strategy ids have no known deposit target and are rejected here.
func (b *Builder) BuildDeposit(ctx context.Context, intent *models.Intent) (*DepositParams, error) {
	if intent.Strategy == nil {
		return nil, fmt.Errorf("intent %s has no yield strategy", intent.ID)
	}
	strategy := *intent.Strategy

	var packageID, module, function string
	switch strategy.Protocol() {
	case "Scallop":
		packageID = b.cfg.ScallopPackage
		module = "mint"
		function = "mint"
	case "Navi":
		packageID = b.cfg.NaviPackage
		module = "incentive_v2"
		function = "entry_deposit"
	default:
		return nil, fmt.Errorf("no deposit target for custom strategy %d", strategy.ID())
	}

	coinType := UsdcCoinTypeTestnet
	if strategy.RequiresSuiSwap() {
		coinType = SuiCoinType
	}

	b.logger.InfoWithChain(logger.SuiChainID, "Built %s deposit for intent %s: %s %s",
		strategy.Protocol(), intent.ID, intent.UsdcAmount, strategy.Asset())

	return &DepositParams{
		Protocol:     strategy.Protocol(),
		PackageID:    packageID,
		Module:       module,
		Function:     function,
		CoinType:     coinType,
		Amount:       intent.UsdcAmount,
		Recipient:    intent.DestAddress,
		RequiresSwap: strategy.RequiresSuiSwap(),
	}, nil
}
