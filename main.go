package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/naisu-fi/naisu-agent/pkg/api"
	"github.com/naisu-fi/naisu-agent/pkg/cctp"
	"github.com/naisu-fi/naisu-agent/pkg/circuitbreaker"
	"github.com/naisu-fi/naisu-agent/pkg/config"
	"github.com/naisu-fi/naisu-agent/pkg/health"
	"github.com/naisu-fi/naisu-agent/pkg/listener"
	"github.com/naisu-fi/naisu-agent/pkg/logger"
	"github.com/naisu-fi/naisu-agent/pkg/metrics"
	"github.com/naisu-fi/naisu-agent/pkg/models"
	"github.com/naisu-fi/naisu-agent/pkg/orchestrator"
	"github.com/naisu-fi/naisu-agent/pkg/solver"
	"github.com/naisu-fi/naisu-agent/pkg/store"
	"github.com/naisu-fi/naisu-agent/pkg/sui"
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up context with cancellation on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger := logger.NewStdLogger(cfg.LoggerConfig.Coloring, cfg.LoggerConfig.Level)

	var bridge *cctp.Client
	switch {
	case cfg.AttestationURL != "":
		bridge = cctp.NewClient(cfg.AttestationURL, cfg.IsTestnet(), appLogger)
	case cfg.IsTestnet():
		bridge = cctp.Testnet(appLogger)
	default:
		bridge = cctp.Mainnet(appLogger)
	}

	intentStore := store.NewMemoryStore()
	nonces := orchestrator.NewNonceRegistry()
	deposits := sui.NewBuilder(sui.Config{
		RPCURL:         cfg.SuiRPCURL,
		ScallopPackage: cfg.ScallopPackage,
		NaviPackage:    cfg.NaviPackage,
	}, appLogger)
	delivery := solver.NewBuilder(appLogger)

	orch := orchestrator.New(orchestrator.Config{
		EvmChain:               cfg.EvmChain,
		AttestationMaxAttempts: cfg.AttestationMaxAttempts,
		AttestationInterval:    cfg.AttestationInterval,
	}, bridge, nonces, deposits, delivery, appLogger)

	breaker := circuitbreaker.NewCircuitBreaker(
		cfg.CircuitBreaker.Enabled,
		cfg.CircuitBreaker.Threshold,
		cfg.CircuitBreaker.WindowDuration,
		cfg.CircuitBreaker.ResetTimeout,
	)

	ingest, err := listener.New(ctx, listener.Config{
		RPCURL:       cfg.EvmRPCURL,
		HookAddress:  cfg.HookAddress,
		ChainID:      int(cfg.EvmChain.ChainID()),
		PollInterval: cfg.PollingInterval,
		BufferSize:   cfg.EventBufferSize,
		SendTimeout:  cfg.EventSendTimeout,
	}, breaker, appLogger)
	if err != nil {
		log.Fatalf("Failed to create event listener: %v", err)
	}

	apiPort, err := strconv.Atoi(cfg.APIPort)
	if err != nil {
		log.Fatalf("Invalid API port %q: %v", cfg.APIPort, err)
	}
	apiServer := api.NewServer(api.Config{
		Port:           apiPort,
		ProcessTimeout: cfg.ProcessTimeout,
	}, intentStore, orch, nonces, appLogger)

	healthServer := health.NewServer(cfg.MetricsPort, cfg.Network, ingest, breaker, intentStore, cfg.MetricsAPIKey)

	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		appLogger.Notice("Received termination signal, shutting down gracefully...")
		cancel()
	}()

	go healthServer.Start()
	go func() {
		if err := apiServer.Start(ctx); err != nil {
			appLogger.Error("API server stopped: %v", err)
			cancel()
		}
	}()
	go func() {
		if err := ingest.Start(ctx); err != nil {
			appLogger.Error("Event listener stopped: %v", err)
		}
		cancel()
	}()

	appLogger.Notice("Agent started: watching %s on %s (%s mode)", cfg.HookAddress, cfg.EvmChain, ingest.Mode())

	// Each intent is processed on its own goroutine: intents wait on their
	// bridge callback, and one stuck intent must not stall the stream.
	// Authoritative state lives in the store around each orchestrator call.
	var wg sync.WaitGroup
	for event := range ingest.Events() {
		wg.Add(1)
		go func(event models.IntentCreatedEvent) {
			defer wg.Done()
			processEvent(ctx, cfg, orch, intentStore, nonces, appLogger, event)
		}(event)
	}
	wg.Wait()

	appLogger.Notice("Event stream closed, shutting down")
}

func processEvent(ctx context.Context, cfg *config.Config, orch *orchestrator.Orchestrator, intentStore *store.MemoryStore, nonces *orchestrator.NonceRegistry, appLogger logger.Logger, event models.IntentCreatedEvent) {
	processCtx, cancel := context.WithTimeout(ctx, cfg.ProcessTimeout)
	defer cancel()
	// A bridge callback landing after this intent is done must not pin a
	// registry entry
	defer nonces.Discard(event.IntentID)

	intent, err := orch.ProcessEvmToSui(processCtx, event)
	if err != nil {
		appLogger.Error("Intent %s failed: %v", event.IntentID, err)
		if intent != nil {
			intent.Fail(err.Error())
		}
	}
	if intent != nil {
		intentStore.Put(intent)
	}
	metrics.PendingIntents.Set(float64(intentStore.PendingCount()))
}
