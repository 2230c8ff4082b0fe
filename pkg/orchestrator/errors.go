package orchestrator

import (
	"errors"
	"fmt"
)

// ErrBridgeFailed is returned when the reported bridge transaction failed
// on the source chain, so no attestation will ever materialize
var ErrBridgeFailed = errors.New("bridge transaction failed")

// ErrTimeout is returned when no bridge transaction was reported for the
// intent before the wait was cancelled
var ErrTimeout = errors.New("timed out waiting for bridge transaction")

// InvalidAmountError reports a usdc amount that does not parse to a usable
// unsigned integer. It is non-retriable: the intent data itself is bad.
type InvalidAmountError struct {
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid usdc amount %q", e.Value)
}
