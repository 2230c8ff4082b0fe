package cctp

import (
	"errors"
	"fmt"
)

// ErrAttestationTimeout is returned by PollAttestation when every attempt
// came back empty. Callers may re-poll with the same nonce.
var ErrAttestationTimeout = errors.New("attestation polling timed out")

// APIError is a non-success response from the attestation service, surfaced
// verbatim. A not-found response is not an APIError: it means the
// attestation is not yet available.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("attestation service error (%d): %s", e.Status, e.Message)
}
