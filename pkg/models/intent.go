package models

import (
	"time"

	"github.com/naisu-fi/naisu-agent/pkg/chains"
)

// Direction indicates which way an intent moves assets
type Direction string

const (
	// DirectionEvmToSui moves assets from an EVM chain into a Sui yield position
	DirectionEvmToSui Direction = "evm_to_sui"
	// DirectionSuiToEvm moves assets from Sui back to an EVM chain
	DirectionSuiToEvm Direction = "sui_to_evm"
)

// Intent represents a user's cross-chain asset migration request.
// The agent never holds funds or keys for it: every on-chain step is an
// unsigned parameter record handed back to the frontend for signing.
type Intent struct {
	ID            string       `json:"id"`
	Direction     Direction    `json:"direction"`
	Status        IntentStatus `json:"status"`
	SourceAddress string       `json:"source_address"`
	DestAddress   string       `json:"dest_address"`
	EvmChain      chains.Chain `json:"evm_chain"`
	InputToken    string       `json:"input_token"`
	InputAmount   string       `json:"input_amount"`

	// UsdcAmount is the bridgeable amount in 6-decimal smallest units,
	// set once the source-side swap outcome is known
	UsdcAmount string `json:"usdc_amount,omitempty"`

	Strategy *YieldStrategy `json:"strategy,omitempty"`

	// BridgeNonce is assigned once the signed depositForBurn transaction
	// is known, and keys the attestation lookup
	BridgeNonce string `json:"bridge_nonce,omitempty"`

	SwapTxHash   string `json:"swap_tx_hash,omitempty"`
	BridgeTxHash string `json:"bridge_tx_hash,omitempty"`
	DestTxHash   string `json:"dest_tx_hash,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

// NewEvmToSuiIntent creates a pending EVM to Sui intent
func NewEvmToSuiIntent(id, sourceAddress, destAddress string, evmChain chains.Chain, inputToken, inputAmount string, strategy YieldStrategy) *Intent {
	return &Intent{
		ID:            id,
		Direction:     DirectionEvmToSui,
		Status:        StatusPending,
		SourceAddress: sourceAddress,
		DestAddress:   destAddress,
		EvmChain:      evmChain,
		InputToken:    inputToken,
		InputAmount:   inputAmount,
		Strategy:      &strategy,
		CreatedAt:     time.Now().Unix(),
	}
}

// NewSuiToEvmIntent creates a pending Sui to EVM intent
func NewSuiToEvmIntent(id, sourceAddress, destAddress string, evmChain chains.Chain, inputToken, inputAmount string) *Intent {
	return &Intent{
		ID:            id,
		Direction:     DirectionSuiToEvm,
		Status:        StatusPending,
		SourceAddress: sourceAddress,
		DestAddress:   destAddress,
		EvmChain:      evmChain,
		InputToken:    inputToken,
		InputAmount:   inputAmount,
		CreatedAt:     time.Now().Unix(),
	}
}

// SetStatus advances the intent status. Transitions are forward-only and
// validated against the lifecycle table; data invariants (usdc amount before
// bridging, bridge nonce before bridge completion) are enforced here as well.
func (i *Intent) SetStatus(next IntentStatus) error {
	if !i.Status.CanTransitionTo(next) {
		return &InvalidTransitionError{From: i.Status, To: next}
	}
	if next == StatusBridging && i.UsdcAmount == "" {
		return &InvalidTransitionError{From: i.Status, To: next, Reason: "usdc amount not set"}
	}
	if next == StatusBridgeCompleted && i.BridgeNonce == "" {
		return &InvalidTransitionError{From: i.Status, To: next, Reason: "bridge nonce not set"}
	}
	i.Status = next
	return nil
}

// Fail marks the intent failed and records the cause. It is a no-op on
// intents already in a terminal state.
func (i *Intent) Fail(message string) {
	if i.Status.IsTerminal() {
		return
	}
	i.Status = StatusFailed
	i.ErrorMessage = message
}
