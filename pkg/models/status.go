package models

import "fmt"

// IntentStatus is the lifecycle state of an intent
type IntentStatus string

const (
	// StatusPending is the initial state of every intent
	StatusPending IntentStatus = "pending"
	// StatusSwapCompleted means the source-chain swap produced USDC (EVM to Sui only)
	StatusSwapCompleted IntentStatus = "swap_completed"
	// StatusBridging means depositForBurn parameters were built and a nonce assigned
	StatusBridging IntentStatus = "bridging"
	// StatusBridgeCompleted means the attestation resolved and the destination mint settled
	StatusBridgeCompleted IntentStatus = "bridge_completed"
	// StatusDeposited means the destination yield deposit step was performed (EVM to Sui only)
	StatusDeposited IntentStatus = "deposited"
	// StatusCompleted is terminal
	StatusCompleted IntentStatus = "completed"
	// StatusFailed is terminal
	StatusFailed IntentStatus = "failed"
	// StatusCancelled is terminal
	StatusCancelled IntentStatus = "cancelled"
)

// transitions is the forward-only lifecycle table. Any non-terminal state may
// additionally move to Failed or Cancelled.
var transitions = map[IntentStatus][]IntentStatus{
	StatusPending:         {StatusSwapCompleted, StatusBridging},
	StatusSwapCompleted:   {StatusBridging},
	StatusBridging:        {StatusBridgeCompleted},
	StatusBridgeCompleted: {StatusDeposited, StatusCompleted},
	StatusDeposited:       {StatusCompleted},
}

// IsTerminal reports whether no further transition is allowed out of s
func (s IntentStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a valid walk in
// the lifecycle table
func (s IntentStatus) CanTransitionTo(next IntentStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusFailed || next == StatusCancelled {
		return true
	}
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// InvalidTransitionError is returned by Intent.SetStatus for a transition
// outside the lifecycle table or one violating a data invariant
type InvalidTransitionError struct {
	From   IntentStatus
	To     IntentStatus
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid status transition %s -> %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}
