package sui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisu-fi/naisu-agent/pkg/chains"
	"github.com/naisu-fi/naisu-agent/pkg/logger"
	"github.com/naisu-fi/naisu-agent/pkg/models"
)

func strategyIntent(strategy models.YieldStrategy) *models.Intent {
	intent := models.NewEvmToSuiIntent("id-1", "0xuser", "0xsuidest", chains.BaseSepolia, "0xtoken", "1", strategy)
	intent.UsdcAmount = "1500000"
	return intent
}

func TestBuildDeposit(t *testing.T) {
	builder := NewBuilder(Config{}, &logger.EmptyLogger{})

	tests := []struct {
		name         string
		strategy     models.YieldStrategy
		packageID    string
		coinType     string
		requiresSwap bool
	}{
		{"ScallopUSDC", models.StrategyScallopUSDC, DefaultScallopPackage, UsdcCoinTypeTestnet, false},
		{"ScallopSUI", models.StrategyScallopSUI, DefaultScallopPackage, SuiCoinType, true},
		{"NaviUSDC", models.StrategyNaviUSDC, DefaultNaviPackage, UsdcCoinTypeTestnet, false},
		{"NaviSUI", models.StrategyNaviSUI, DefaultNaviPackage, SuiCoinType, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params, err := builder.BuildDeposit(context.Background(), strategyIntent(tc.strategy))
			require.NoError(t, err)

			assert.Equal(t, tc.packageID, params.PackageID)
			assert.Equal(t, tc.coinType, params.CoinType)
			assert.Equal(t, tc.requiresSwap, params.RequiresSwap)
			assert.Equal(t, "1500000", params.Amount)
			assert.Equal(t, "0xsuidest", params.Recipient)
		})
	}

	t.Run("custom strategy has no deposit target", func(t *testing.T) {
		_, err := builder.BuildDeposit(context.Background(), strategyIntent(models.StrategyFromID(99)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "custom strategy 99")
	})

	t.Run("missing strategy is rejected", func(t *testing.T) {
		intent := strategyIntent(models.StrategyScallopUSDC)
		intent.Strategy = nil

		_, err := builder.BuildDeposit(context.Background(), intent)
		require.Error(t, err)
	})

	t.Run("config overrides the package ids", func(t *testing.T) {
		custom := NewBuilder(Config{ScallopPackage: "0xscallop", NaviPackage: "0xnavi"}, &logger.EmptyLogger{})

		params, err := custom.BuildDeposit(context.Background(), strategyIntent(models.StrategyScallopUSDC))
		require.NoError(t, err)
		assert.Equal(t, "0xscallop", params.PackageID)

		params, err = custom.BuildDeposit(context.Background(), strategyIntent(models.StrategyNaviSUI))
		require.NoError(t, err)
		assert.Equal(t, "0xnavi", params.PackageID)
	})
}
