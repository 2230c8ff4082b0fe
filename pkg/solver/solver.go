// Package solver builds the unsigned destination-side delivery swap for the
// Sui to EVM leg: minted USDC is swapped to the token the user asked for and
// delivered to their address. The swap itself is executed by an external
// solver; this package only produces the parameter record handed to it.
package solver

import (
	"context"
	"fmt"

	"github.com/naisu-fi/naisu-agent/pkg/cctp"
	"github.com/naisu-fi/naisu-agent/pkg/chains"
	"github.com/naisu-fi/naisu-agent/pkg/logger"
	"github.com/naisu-fi/naisu-agent/pkg/models"
)

const (
	// SwapRouterBaseSepolia is the swap router the solver executes against
	SwapRouterBaseSepolia = "0x94cC0AeFC7a9b2E0ad73E672e4cbc2e8dcB2422b"

	// defaultSlippageBps bounds how far the executed swap may move from quote
	defaultSlippageBps = 50
)

// DeliveryParams is the unsigned swap the solver executes on the destination
// EVM chain: bridged USDC in, the user's requested token out.
type DeliveryParams struct {
	Chain       chains.Chain `json:"chain"`
	Router      string       `json:"router"`
	TokenIn     string       `json:"token_in"`
	TokenOut    string       `json:"token_out"`
	AmountIn    string       `json:"amount_in"`
	SlippageBps int          `json:"slippage_bps"`
	Recipient   string       `json:"recipient"`
}

// Builder assembles delivery swaps for the external solver
type Builder struct {
	router      string
	slippageBps int
	logger      logger.Logger
}

// NewBuilder creates a delivery builder against the default router
func NewBuilder(log logger.Logger) *Builder {
	return &Builder{
		router:      SwapRouterBaseSepolia,
		slippageBps: defaultSlippageBps,
		logger:      log,
	}
}

// BuildDelivery builds the unsigned USDC-to-target swap for the intent
func (b *Builder) BuildDelivery(ctx context.Context, intent *models.Intent) (*DeliveryParams, error) {
	if intent.UsdcAmount == "" {
		return nil, fmt.Errorf("intent %s has no usdc amount to deliver", intent.ID)
	}

	b.logger.Info("Built delivery swap for intent %s: %s USDC to %s on %s",
		intent.ID, intent.UsdcAmount, intent.InputToken, intent.EvmChain)

	return &DeliveryParams{
		Chain:       intent.EvmChain,
		Router:      b.router,
		TokenIn:     cctp.UsdcBaseSepolia,
		TokenOut:    intent.InputToken,
		AmountIn:    intent.UsdcAmount,
		SlippageBps: b.slippageBps,
		Recipient:   intent.DestAddress,
	}, nil
}
