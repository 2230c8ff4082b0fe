package listener

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisu-fi/naisu-agent/pkg/contracts"
	"github.com/naisu-fi/naisu-agent/pkg/logger"
)

var (
	testHookAddress = common.HexToAddress("0x5555555555555555555555555555555555555555")
	testUser        = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testToken       = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// fakeBackend implements Backend for listener tests
type fakeBackend struct {
	mu          sync.Mutex
	blockNumber uint64
	blockErr    error
	filterLogs  []types.Log
	filterErr   error
	filterCalls []ethereum.FilterQuery
	subCh       chan<- types.Log
	subReady    chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{subReady: make(chan struct{})}
}

func (f *fakeBackend) BlockNumber(ctx context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blockNumber, f.blockErr
}

func (f *fakeBackend) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filterCalls = append(f.filterCalls, q)
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	return f.filterLogs, nil
}

func (f *fakeBackend) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	f.mu.Lock()
	f.subCh = ch
	f.mu.Unlock()
	close(f.subReady)
	return event.NewSubscription(func(quit <-chan struct{}) error {
		<-quit
		return nil
	}), nil
}

func (f *fakeBackend) filterCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filterCalls)
}

func newTestListener(t *testing.T, backend Backend, mode Mode, bufferSize int, sendTimeout time.Duration) *Listener {
	t.Helper()
	l, err := newListener(backend, Config{
		HookAddress:  testHookAddress.Hex(),
		ChainID:      84532,
		PollInterval: time.Millisecond,
		BufferSize:   bufferSize,
		SendTimeout:  sendTimeout,
	}, mode, nil, &logger.EmptyLogger{})
	require.NoError(t, err)
	return l
}

// makeIntentCreatedLog encodes a valid IntentCreated log the way the hook
// contract emits it
func makeIntentCreatedLog(t *testing.T, intentID byte, usdcAmount *big.Int, strategyID uint8) types.Log {
	t.Helper()

	parsed, err := abi.JSON(strings.NewReader(contracts.IntentHookABI))
	require.NoError(t, err)
	ev := parsed.Events["IntentCreated"]

	var id, suiDest [32]byte
	id[31] = intentID
	copy(suiDest[:], []byte("sui-destination-bytes"))

	data, err := ev.Inputs.NonIndexed().Pack(
		suiDest,
		testToken,
		big.NewInt(1000000000000000000),
		usdcAmount,
		strategyID,
		big.NewInt(1700000000),
	)
	require.NoError(t, err)

	return types.Log{
		Address: testHookAddress,
		Topics: []common.Hash{
			ev.ID,
			common.BytesToHash(id[:]),
			common.BytesToHash(common.LeftPadBytes(testUser.Bytes(), 32)),
		},
		Data:   data,
		TxHash: common.HexToHash("0xbeef"),
	}
}

func TestPollOnce(t *testing.T) {
	t.Run("no new blocks means no log query", func(t *testing.T) {
		backend := newFakeBackend()
		backend.blockNumber = 50

		l := newTestListener(t, backend, ModePoll, 10, time.Second)
		l.lastBlock.Store(50)

		require.NoError(t, l.pollOnce(context.Background()))
		assert.Zero(t, backend.filterCallCount())
		assert.Equal(t, uint64(50), l.LastBlock())
	})

	t.Run("scans the half-open range and delivers in order", func(t *testing.T) {
		backend := newFakeBackend()
		backend.blockNumber = 12
		backend.filterLogs = []types.Log{
			makeIntentCreatedLog(t, 1, big.NewInt(1500000), 1),
			makeIntentCreatedLog(t, 2, big.NewInt(2500000), 3),
		}

		l := newTestListener(t, backend, ModePoll, 10, time.Second)
		l.lastBlock.Store(10)

		require.NoError(t, l.pollOnce(context.Background()))

		require.Equal(t, 1, backend.filterCallCount())
		query := backend.filterCalls[0]
		assert.Equal(t, uint64(11), query.FromBlock.Uint64())
		assert.Equal(t, uint64(12), query.ToBlock.Uint64())
		assert.Equal(t, []common.Address{testHookAddress}, query.Addresses)

		first := <-l.Events()
		second := <-l.Events()
		assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", first.IntentID)
		assert.Equal(t, "1500000", first.UsdcAmount)
		assert.Equal(t, uint8(1), first.StrategyID)
		assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000002", second.IntentID)
		assert.Equal(t, uint8(3), second.StrategyID)

		assert.Equal(t, uint64(12), l.LastBlock(), "last block advances after the scan")
	})

	t.Run("advances last block when the range is empty", func(t *testing.T) {
		backend := newFakeBackend()
		backend.blockNumber = 20

		l := newTestListener(t, backend, ModePoll, 10, time.Second)
		l.lastBlock.Store(15)

		require.NoError(t, l.pollOnce(context.Background()))
		assert.Equal(t, uint64(20), l.LastBlock())
	})

	t.Run("undecodable log is skipped", func(t *testing.T) {
		backend := newFakeBackend()
		backend.blockNumber = 12
		bad := makeIntentCreatedLog(t, 9, big.NewInt(1), 1)
		bad.Data = []byte{0x01, 0x02}
		backend.filterLogs = []types.Log{
			bad,
			makeIntentCreatedLog(t, 3, big.NewInt(3000000), 2),
		}

		l := newTestListener(t, backend, ModePoll, 10, time.Second)
		l.lastBlock.Store(10)

		require.NoError(t, l.pollOnce(context.Background()))

		ev := <-l.Events()
		assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000003", ev.IntentID)
		select {
		case unexpected := <-l.Events():
			t.Fatalf("unexpected second event %s", unexpected.IntentID)
		default:
		}
	})

	t.Run("query failure does not advance the scan window", func(t *testing.T) {
		backend := newFakeBackend()
		backend.blockNumber = 12
		backend.filterErr = assert.AnError

		l := newTestListener(t, backend, ModePoll, 10, time.Second)
		l.lastBlock.Store(10)

		require.NoError(t, l.pollOnce(context.Background()))
		assert.Equal(t, uint64(10), l.LastBlock())
	})

	t.Run("stalled delivery terminates the listener", func(t *testing.T) {
		backend := newFakeBackend()
		backend.blockNumber = 12
		backend.filterLogs = []types.Log{
			makeIntentCreatedLog(t, 1, big.NewInt(1), 1),
			makeIntentCreatedLog(t, 2, big.NewInt(2), 1),
		}

		// Capacity 1 and no consumer: the second delivery must stall
		l := newTestListener(t, backend, ModePoll, 1, 10*time.Millisecond)
		l.lastBlock.Store(10)

		err := l.pollOnce(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stalled")
	})
}

func TestPushMode(t *testing.T) {
	backend := newFakeBackend()
	l := newTestListener(t, backend, ModePush, 10, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Start(ctx) }()

	// Wait for the subscription, then emit a log
	select {
	case <-backend.subReady:
	case <-time.After(time.Second):
		t.Fatal("listener never subscribed")
	}
	backend.subCh <- makeIntentCreatedLog(t, 7, big.NewInt(7000000), 4)

	select {
	case ev := <-l.Events():
		assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000007", ev.IntentID)
		assert.Equal(t, testUser.Hex(), ev.User)
		assert.Equal(t, testToken.Hex(), ev.InputToken)
		assert.Equal(t, "7000000", ev.UsdcAmount)
		assert.Equal(t, uint8(4), ev.StrategyID)
		assert.Equal(t, int64(1700000000), ev.Timestamp)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	cancel()
	require.NoError(t, <-done)

	// The events channel closes when the listener stops
	_, open := <-l.Events()
	assert.False(t, open)
}

func TestModeSelection(t *testing.T) {
	tests := []struct {
		url  string
		mode Mode
	}{
		{"wss://base-sepolia.example.com", ModePush},
		{"ws://localhost:8546", ModePush},
		{"https://sepolia.base.org", ModePoll},
		{"http://localhost:8545", ModePoll},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.mode, modeForEndpoint(tc.url))
		})
	}
}
