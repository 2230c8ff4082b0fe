// Package listener watches the hook contract for IntentCreated events and
// delivers them, in emission order, to a single consumer over a bounded
// channel. Delivery is at-least-once: no deduplication and no reorg handling
// is performed here.
package listener

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/naisu-fi/naisu-agent/pkg/circuitbreaker"
	"github.com/naisu-fi/naisu-agent/pkg/contracts"
	"github.com/naisu-fi/naisu-agent/pkg/logger"
	"github.com/naisu-fi/naisu-agent/pkg/metrics"
	"github.com/naisu-fi/naisu-agent/pkg/models"
)

// Mode is the ingestion strategy, selected once at construction from the
// endpoint capability
type Mode string

const (
	// ModePush subscribes to a filtered log stream (ws/wss endpoints)
	ModePush Mode = "push"
	// ModePoll scans half-open block ranges on a fixed interval (http endpoints)
	ModePoll Mode = "poll"
)

// Backend is the part of the chain client the listener needs. It is
// satisfied by ethclient.Client.
type Backend interface {
	bind.ContractFilterer
	BlockNumber(ctx context.Context) (uint64, error)
}

// Config holds the listener configuration
type Config struct {
	RPCURL       string
	HookAddress  string
	ChainID      int
	PollInterval time.Duration
	// BufferSize is the event channel capacity; a slow consumer applies
	// backpressure up to this bound
	BufferSize int
	// SendTimeout is how long a delivery may stall before the listener
	// terminates instead of blocking forever
	SendTimeout time.Duration
}

// Listener ingests IntentCreated events from the hook contract
type Listener struct {
	backend     Backend
	filterer    *contracts.IntentHookFilterer
	hookAddress common.Address
	eventTopic  common.Hash
	mode        Mode
	chainID     int

	pollInterval time.Duration
	sendTimeout  time.Duration
	lastBlock    atomic.Uint64
	breaker      *circuitbreaker.CircuitBreaker

	events chan models.IntentCreatedEvent
	logger logger.Logger
}

// New dials the RPC endpoint and creates a listener. The ingestion mode is
// chosen by endpoint scheme: ws/wss subscribes, anything else polls.
func New(ctx context.Context, cfg Config, breaker *circuitbreaker.CircuitBreaker, log logger.Logger) (*Listener, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %v", err)
	}

	return newListener(client, cfg, modeForEndpoint(cfg.RPCURL), breaker, log)
}

// modeForEndpoint selects the ingestion mode by endpoint capability:
// websocket endpoints can stream logs, anything else is scanned
func modeForEndpoint(rpcURL string) Mode {
	if strings.HasPrefix(rpcURL, "ws://") || strings.HasPrefix(rpcURL, "wss://") {
		return ModePush
	}
	return ModePoll
}

// newListener wires a listener over an already connected backend
func newListener(backend Backend, cfg Config, mode Mode, breaker *circuitbreaker.CircuitBreaker, log logger.Logger) (*Listener, error) {
	hookAddress := common.HexToAddress(cfg.HookAddress)

	filterer, err := contracts.NewIntentHookFilterer(hookAddress, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create hook filterer: %v", err)
	}

	hookABI, err := abi.JSON(strings.NewReader(contracts.IntentHookABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hook ABI: %v", err)
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 100
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 30 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}

	return &Listener{
		backend:      backend,
		filterer:     filterer,
		hookAddress:  hookAddress,
		eventTopic:   hookABI.Events["IntentCreated"].ID,
		mode:         mode,
		chainID:      cfg.ChainID,
		pollInterval: cfg.PollInterval,
		sendTimeout:  cfg.SendTimeout,
		breaker:      breaker,
		events:       make(chan models.IntentCreatedEvent, cfg.BufferSize),
		logger:       log,
	}, nil
}

// Events returns the delivery channel. It is closed when the listener stops.
func (l *Listener) Events() <-chan models.IntentCreatedEvent {
	return l.events
}

// Mode returns the ingestion mode selected at construction
func (l *Listener) Mode() Mode {
	return l.mode
}

// LastBlock returns the last block scanned in poll mode
func (l *Listener) LastBlock() uint64 {
	return l.lastBlock.Load()
}

// Start runs the listener until the context is cancelled or delivery stalls.
// The events channel is closed on return.
func (l *Listener) Start(ctx context.Context) error {
	defer close(l.events)

	l.logger.InfoWithChain(l.chainID, "Starting %s-mode event listener on %s", l.mode, l.hookAddress.Hex())

	if l.mode == ModePush {
		return l.runPush(ctx)
	}
	return l.runPoll(ctx)
}

// runPush subscribes to the filtered log stream and forwards each decoded log
func (l *Listener) runPush(ctx context.Context) error {
	logs := make(chan types.Log, 100)
	sub, err := l.backend.SubscribeFilterLogs(ctx, l.query(nil, nil), logs)
	if err != nil {
		return fmt.Errorf("failed to subscribe to logs: %v", err)
	}
	defer sub.Unsubscribe()

	l.logger.InfoWithChain(l.chainID, "Subscribed to IntentCreated events")

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-sub.Err():
			return fmt.Errorf("log subscription failed: %v", err)
		case lg := <-logs:
			if err := l.handleLog(ctx, lg); err != nil {
				return err
			}
		}
	}
}

// runPoll scans the half-open range (lastBlock, current] on a fixed interval
func (l *Listener) runPoll(ctx context.Context) error {
	current, err := l.backend.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to get initial block number: %v", err)
	}
	l.lastBlock.Store(current)

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.pollOnce(ctx); err != nil {
				return err
			}
		}
	}
}

// pollOnce performs a single scan tick. RPC failures are recorded and the
// tick skipped; only delivery failures terminate the listener.
func (l *Listener) pollOnce(ctx context.Context) error {
	if l.breaker != nil && l.breaker.IsOpen() {
		l.logger.DebugWithChain(l.chainID, "Circuit breaker open, skipping poll tick")
		return nil
	}

	current, err := l.backend.BlockNumber(ctx)
	if err != nil {
		l.rpcFailure("Failed to get block number: %v", err)
		return nil
	}

	last := l.lastBlock.Load()
	if current <= last {
		// Nothing new; no log query is issued on this tick
		return nil
	}

	logs, err := l.backend.FilterLogs(ctx, l.query(
		new(big.Int).SetUint64(last+1),
		new(big.Int).SetUint64(current),
	))
	if err != nil {
		l.rpcFailure("Failed to get logs for blocks %d-%d: %v", last+1, current, err)
		return nil
	}

	for _, lg := range logs {
		if err := l.handleLog(ctx, lg); err != nil {
			return err
		}
	}

	l.lastBlock.Store(current)
	metrics.ListenerLastBlock.Set(float64(current))
	return nil
}

// handleLog decodes one log and delivers it. Decode failure is non-fatal:
// the log is skipped and the stream continues.
func (l *Listener) handleLog(ctx context.Context, lg types.Log) error {
	decoded, err := l.filterer.ParseIntentCreated(lg)
	if err != nil {
		metrics.EventDecodeFailures.Inc()
		l.logger.ErrorWithChain(l.chainID, "Failed to parse IntentCreated log (tx %s): %v", lg.TxHash.Hex(), err)
		return nil
	}

	ev := toEvent(decoded)
	l.logger.InfoWithChain(l.chainID, "Received IntentCreated event: %s", ev.IntentID)

	select {
	case l.events <- ev:
		metrics.EventsIngested.Inc()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(l.sendTimeout):
		metrics.EventChannelStalls.Inc()
		return fmt.Errorf("event channel stalled for %v, stopping listener", l.sendTimeout)
	}
}

func (l *Listener) rpcFailure(format string, args ...interface{}) {
	metrics.ListenerRPCErrors.Inc()
	l.logger.ErrorWithChain(l.chainID, format, args...)
	if l.breaker != nil {
		l.breaker.RecordFailure()
	}
}

// query builds the log filter for IntentCreated events on the hook contract
func (l *Listener) query(fromBlock, toBlock *big.Int) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: []common.Address{l.hookAddress},
		Topics:    [][]common.Hash{{l.eventTopic}},
		FromBlock: fromBlock,
		ToBlock:   toBlock,
	}
}

// toEvent converts a decoded log into the canonical event record
func toEvent(ev *contracts.IntentHookIntentCreated) models.IntentCreatedEvent {
	return models.IntentCreatedEvent{
		IntentID:       hexutil.Encode(ev.IntentId[:]),
		User:           ev.User.Hex(),
		SuiDestination: hexutil.Encode(ev.SuiDestination[:]),
		InputToken:     ev.InputToken.Hex(),
		InputAmount:    ev.InputAmount.String(),
		UsdcAmount:     ev.UsdcAmount.String(),
		StrategyID:     ev.StrategyId,
		Timestamp:      ev.Timestamp.Int64(),
	}
}
