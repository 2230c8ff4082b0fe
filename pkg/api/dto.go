package api

// apiResponse is the envelope every endpoint answers with
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateIntentRequest creates an intent in either direction. EvmToSui
// intents created here are tracking records only; the on-chain event drives
// their processing. SuiToEvm intents start processing immediately and need
// usdc_amount set.
type CreateIntentRequest struct {
	Direction     string `json:"direction"`
	SourceAddress string `json:"source_address"`
	DestAddress   string `json:"dest_address"`
	EvmChain      string `json:"evm_chain"`
	InputToken    string `json:"input_token"`
	InputAmount   string `json:"input_amount"`
	UsdcAmount    string `json:"usdc_amount,omitempty"`
	StrategyID    *uint8 `json:"strategy_id,omitempty"`
}

// BridgeCallbackRequest reports the signed depositForBurn transaction for
// an intent. Failed marks a bridge transaction that reverted on chain.
type BridgeCallbackRequest struct {
	Nonce  string `json:"nonce"`
	TxHash string `json:"tx_hash,omitempty"`
	Failed bool   `json:"failed,omitempty"`
}

// IntentStatusResponse is the compact status view of an intent
type IntentStatusResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ChainInfo describes one supported chain
type ChainInfo struct {
	Chain      string `json:"chain"`
	Name       string `json:"name"`
	ChainID    uint64 `json:"chain_id,omitempty"`
	CctpDomain uint32 `json:"cctp_domain"`
	Testnet    bool   `json:"testnet"`
}

// StrategyInfo describes one yield strategy
type StrategyInfo struct {
	ID              uint8  `json:"id"`
	Name            string `json:"name"`
	Protocol        string `json:"protocol"`
	Asset           string `json:"asset"`
	RequiresSuiSwap bool   `json:"requires_sui_swap"`
}

// BridgeStatusResponse projects an intent onto its bridge leg
type BridgeStatusResponse struct {
	IntentID    string `json:"intent_id"`
	Status      string `json:"status"`
	SourceChain string `json:"source_chain"`
	DestChain   string `json:"dest_chain"`
	Amount      string `json:"amount"`
	Nonce       string `json:"nonce,omitempty"`
}

// BridgeFeeResponse is a mock fee estimate for bridging an amount
type BridgeFeeResponse struct {
	BridgeFee string `json:"bridge_fee"`
	GasFee    string `json:"gas_fee"`
	TotalFee  string `json:"total_fee"`
	Token     string `json:"token"`
}

// ChainStatus is a mock health snapshot for one chain
type ChainStatus struct {
	Chain       string `json:"chain_id"`
	Status      string `json:"status"`
	BlockHeight uint64 `json:"block_height"`
	LatencyMs   uint64 `json:"latency_ms"`
}

// QuoteRequest asks for an estimated migration outcome
type QuoteRequest struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

// QuoteResponse is the estimated outcome of bridging the given amount
type QuoteResponse struct {
	Token            string `json:"token"`
	InputAmount      string `json:"input_amount"`
	UsdcAmount       string `json:"usdc_amount"`
	Fee              string `json:"fee"`
	EstimatedSeconds int    `json:"estimated_seconds"`
}

// ChatRequest carries one user message to the advisor
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the advisor reply and, when the message asked about
// yield, a suggested strategy id
type ChatResponse struct {
	Reply             string `json:"reply"`
	SuggestedStrategy *uint8 `json:"suggested_strategy,omitempty"`
}
