package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for monitoring
var (
	IntentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_intents_processed_total",
		Help: "The total number of processed intents by direction and outcome",
	}, []string{"direction", "status"})

	IntentProcessingTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agent_intent_processing_seconds",
		Help:    "Time taken to drive an intent through its lifecycle",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10), // Start at 1s with 10 buckets doubling in size
	}, []string{"direction"})

	PendingIntents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agent_pending_intents",
		Help: "The number of intents currently in a non-terminal state",
	})

	// Attestation polling metrics
	AttestationPollAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agent_attestation_poll_attempts_total",
		Help: "Total number of attestation service lookups",
	})

	AttestationTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agent_attestation_timeouts_total",
		Help: "Number of attestation polls that exhausted all attempts",
	})

	// Event ingestion metrics
	EventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agent_events_ingested_total",
		Help: "Total number of IntentCreated events delivered to the orchestrator",
	})

	EventDecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agent_event_decode_failures_total",
		Help: "Number of logs that could not be decoded and were skipped",
	})

	EventChannelStalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agent_event_channel_stalls_total",
		Help: "Number of times the listener terminated because the event channel stalled",
	})

	ListenerLastBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agent_listener_last_block",
		Help: "Last block scanned by the poll-mode listener",
	})

	ListenerRPCErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agent_listener_rpc_errors_total",
		Help: "Number of RPC failures in the listener loop",
	})
)
