package cctp

// DepositForBurnParams are the unsigned parameters for a depositForBurn call
// on the source chain. The agent never signs them; the frontend constructs
// and signs the transaction from this record.
type DepositForBurnParams struct {
	// TokenMessenger is the contract to call
	TokenMessenger string `json:"token_messenger"`
	// UsdcAddress is the USDC contract to approve
	UsdcAddress string `json:"usdc_address"`
	// Amount in smallest unit (6 decimals for USDC)
	Amount uint64 `json:"amount"`
	// DestinationDomain is the CCTP domain id of the destination chain
	DestinationDomain uint32 `json:"destination_domain"`
	// DestinationAddress is the recipient on the destination chain
	DestinationAddress string `json:"destination_address"`
}

// Attestation is Circle's signed statement over a completed source-chain burn
type Attestation struct {
	// Message is the encoded CCTP message
	Message string `json:"message"`
	// AttestationSignature is Circle's signature over the message
	AttestationSignature string `json:"attestation_signature"`
}

// ReceiveMessageParams are the unsigned parameters for the destination-chain
// receiveMessage call. The call is permissionless: any relayer may submit it.
type ReceiveMessageParams struct {
	// MessageTransmitter is the contract on the destination chain, empty for
	// Sui where the mint goes through a Move call instead
	MessageTransmitter   string `json:"message_transmitter"`
	Message              string `json:"message"`
	AttestationSignature string `json:"attestation_signature"`
}

// attestationResponse mirrors the attestation service payload
type attestationResponse struct {
	Data *attestationData `json:"data"`
}

type attestationData struct {
	Message              string `json:"message"`
	AttestationSignature string `json:"attestation_signature"`
	Status               string `json:"status"`
}
