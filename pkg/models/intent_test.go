package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisu-fi/naisu-agent/pkg/chains"
)

func newTestIntent() *Intent {
	return NewEvmToSuiIntent(
		"0xabc",
		"0x1111111111111111111111111111111111111111",
		"0xsui",
		chains.BaseSepolia,
		"0x2222222222222222222222222222222222222222",
		"1000000000000000000",
		StrategyScallopUSDC,
	)
}

func TestIntentConstructors(t *testing.T) {
	t.Run("EvmToSui", func(t *testing.T) {
		intent := newTestIntent()

		require.NotNil(t, intent)
		assert.Equal(t, DirectionEvmToSui, intent.Direction)
		assert.Equal(t, StatusPending, intent.Status)
		assert.NotZero(t, intent.CreatedAt)
		require.NotNil(t, intent.Strategy)
		assert.Equal(t, StrategyScallopUSDC, *intent.Strategy)
	})

	t.Run("SuiToEvm", func(t *testing.T) {
		intent := NewSuiToEvmIntent("id-1", "0xsui", "0xevm", chains.Base, "0xtoken", "42")

		assert.Equal(t, DirectionSuiToEvm, intent.Direction)
		assert.Equal(t, StatusPending, intent.Status)
		assert.Nil(t, intent.Strategy)
	})
}

func TestIntentSetStatus(t *testing.T) {
	t.Run("full EvmToSui walk", func(t *testing.T) {
		intent := newTestIntent()
		intent.UsdcAmount = "1500000"
		intent.BridgeNonce = "nonce-1"

		for _, next := range []IntentStatus{
			StatusSwapCompleted,
			StatusBridging,
			StatusBridgeCompleted,
			StatusDeposited,
			StatusCompleted,
		} {
			require.NoError(t, intent.SetStatus(next))
			assert.Equal(t, next, intent.Status)
		}
	})

	t.Run("SuiToEvm skips deposit", func(t *testing.T) {
		intent := NewSuiToEvmIntent("id-1", "0xsui", "0xevm", chains.Base, "0xtoken", "42")
		intent.UsdcAmount = "42000000"
		intent.BridgeNonce = "nonce-2"

		require.NoError(t, intent.SetStatus(StatusBridging))
		require.NoError(t, intent.SetStatus(StatusBridgeCompleted))
		require.NoError(t, intent.SetStatus(StatusCompleted))
	})

	t.Run("backward transition rejected", func(t *testing.T) {
		intent := newTestIntent()
		intent.UsdcAmount = "1500000"
		require.NoError(t, intent.SetStatus(StatusSwapCompleted))
		require.NoError(t, intent.SetStatus(StatusBridging))

		err := intent.SetStatus(StatusPending)
		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, StatusBridging, transitionErr.From)
		assert.Equal(t, StatusBridging, intent.Status, "status should be unchanged after a rejected transition")
	})

	t.Run("bridging requires usdc amount", func(t *testing.T) {
		intent := newTestIntent()
		require.NoError(t, intent.SetStatus(StatusSwapCompleted))

		err := intent.SetStatus(StatusBridging)
		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "usdc amount not set", transitionErr.Reason)
		assert.Equal(t, StatusSwapCompleted, intent.Status)
	})

	t.Run("bridge completion requires nonce", func(t *testing.T) {
		intent := newTestIntent()
		intent.UsdcAmount = "1500000"
		require.NoError(t, intent.SetStatus(StatusSwapCompleted))
		require.NoError(t, intent.SetStatus(StatusBridging))

		err := intent.SetStatus(StatusBridgeCompleted)
		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "bridge nonce not set", transitionErr.Reason)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		for _, terminal := range []IntentStatus{StatusCompleted, StatusFailed, StatusCancelled} {
			intent := newTestIntent()
			intent.Status = terminal

			for _, next := range []IntentStatus{StatusPending, StatusBridging, StatusFailed, StatusCancelled} {
				assert.Error(t, intent.SetStatus(next), "%s -> %s should be rejected", terminal, next)
			}
		}
	})

	t.Run("any non-terminal state may fail or cancel", func(t *testing.T) {
		for _, from := range []IntentStatus{StatusPending, StatusSwapCompleted, StatusBridging, StatusBridgeCompleted, StatusDeposited} {
			intent := newTestIntent()
			intent.Status = from
			assert.NoError(t, intent.SetStatus(StatusFailed), "from %s", from)

			intent.Status = from
			assert.NoError(t, intent.SetStatus(StatusCancelled), "from %s", from)
		}
	})
}

func TestIntentFail(t *testing.T) {
	t.Run("records message", func(t *testing.T) {
		intent := newTestIntent()
		intent.Fail("attestation timed out")

		assert.Equal(t, StatusFailed, intent.Status)
		assert.Equal(t, "attestation timed out", intent.ErrorMessage)
	})

	t.Run("no-op on terminal intent", func(t *testing.T) {
		intent := newTestIntent()
		intent.Status = StatusCompleted

		intent.Fail("too late")
		assert.Equal(t, StatusCompleted, intent.Status)
		assert.Empty(t, intent.ErrorMessage)
	})
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status   IntentStatus
		terminal bool
	}{
		{StatusPending, false},
		{StatusSwapCompleted, false},
		{StatusBridging, false},
		{StatusBridgeCompleted, false},
		{StatusDeposited, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusCancelled, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.terminal, tc.status.IsTerminal())
		})
	}
}
