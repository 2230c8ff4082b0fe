package models

// IntentCreatedEvent is the canonical record decoded from an IntentCreated
// log emitted by the hook contract. Produced once per log by the listener,
// consumed once by the orchestrator. Delivery is at-least-once: the listener
// performs no deduplication or reorg handling.
type IntentCreatedEvent struct {
	// IntentID is the 32-byte intent id as a 0x-prefixed hex string
	IntentID string `json:"intent_id"`
	// User is the EVM address that created the intent
	User string `json:"user"`
	// SuiDestination is the 32-byte Sui recipient as a 0x-prefixed hex string
	SuiDestination string `json:"sui_destination"`
	InputToken     string `json:"input_token"`
	InputAmount    string `json:"input_amount"`
	UsdcAmount     string `json:"usdc_amount"`
	StrategyID     uint8  `json:"strategy_id"`
	Timestamp      int64  `json:"timestamp"`
}
