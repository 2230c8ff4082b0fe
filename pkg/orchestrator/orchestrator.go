// Package orchestrator drives the intent lifecycle state machine. It is
// stateless across calls: each operation takes an intent (or the event to
// construct one), mutates it through its status transitions, and returns it
// for the caller to persist. It never holds funds or keys; every on-chain
// step is an unsigned parameter record built by a collaborator.
package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/naisu-fi/naisu-agent/pkg/cctp"
	"github.com/naisu-fi/naisu-agent/pkg/chains"
	"github.com/naisu-fi/naisu-agent/pkg/logger"
	"github.com/naisu-fi/naisu-agent/pkg/metrics"
	"github.com/naisu-fi/naisu-agent/pkg/models"
	"github.com/naisu-fi/naisu-agent/pkg/solver"
	"github.com/naisu-fi/naisu-agent/pkg/sui"
)

// BridgeClient translates transfer requests into protocol parameter records
// and resolves attestations. Satisfied by cctp.Client.
type BridgeClient interface {
	BuildDepositForBurn(amount uint64, destDomain uint32, destAddress string) cctp.DepositForBurnParams
	PollAttestation(ctx context.Context, nonce string, maxAttempts int, interval time.Duration) (*cctp.Attestation, error)
	BuildReceiveMessage(attestation *cctp.Attestation, dest chains.Chain) cctp.ReceiveMessageParams
}

var _ BridgeClient = (*cctp.Client)(nil)

// NonceSource supplies the burn nonce of the signed depositForBurn
// transaction once an external signer has submitted it
type NonceSource interface {
	Await(ctx context.Context, intentID string) (string, error)
}

// DepositBuilder builds the destination-side yield deposit transaction
type DepositBuilder interface {
	BuildDeposit(ctx context.Context, intent *models.Intent) (*sui.DepositParams, error)
}

// DeliveryBuilder builds the destination-side swap handed to the solver
type DeliveryBuilder interface {
	BuildDelivery(ctx context.Context, intent *models.Intent) (*solver.DeliveryParams, error)
}

// Config holds the orchestrator configuration
type Config struct {
	// EvmChain is the source chain for EVM to Sui intents
	EvmChain               chains.Chain
	AttestationMaxAttempts int
	AttestationInterval    time.Duration
}

// Orchestrator coordinates intents through their lifecycle
type Orchestrator struct {
	cfg      Config
	bridge   BridgeClient
	nonces   NonceSource
	deposits DepositBuilder
	delivery DeliveryBuilder
	logger   logger.Logger
}

// New creates an orchestrator over its collaborators
func New(cfg Config, bridge BridgeClient, nonces NonceSource, deposits DepositBuilder, delivery DeliveryBuilder, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		bridge:   bridge,
		nonces:   nonces,
		deposits: deposits,
		delivery: delivery,
		logger:   log,
	}
}

// ProcessEvmToSui drives a freshly observed intent through the EVM to Sui
// lifecycle. The returned intent is non-nil from the moment it is
// constructed, even on error, so the caller can record the failure.
//
// Bridge client errors (APIError, ErrAttestationTimeout) propagate
// unchanged; retrying a whole intent is the caller's decision.
func (o *Orchestrator) ProcessEvmToSui(ctx context.Context, event models.IntentCreatedEvent) (intent *models.Intent, err error) {
	start := time.Now()
	defer func() { o.observe(models.DirectionEvmToSui, start, err) }()

	strategy := models.StrategyFromID(event.StrategyID)
	intent = models.NewEvmToSuiIntent(
		event.IntentID,
		event.User,
		event.SuiDestination,
		o.cfg.EvmChain,
		event.InputToken,
		event.InputAmount,
		strategy,
	)
	intent.UsdcAmount = event.UsdcAmount

	// The source-chain swap already happened by the time the event fires;
	// the emitted usdc amount is its outcome
	if err = intent.SetStatus(models.StatusSwapCompleted); err != nil {
		return intent, err
	}
	o.logger.Info("Processing intent %s: %s %s to %s (%s)",
		intent.ID, event.InputAmount, event.InputToken, intent.DestAddress, strategy.Name())

	amount, parseErr := strconv.ParseUint(event.UsdcAmount, 10, 64)
	if parseErr != nil {
		err = &InvalidAmountError{Value: event.UsdcAmount}
		return intent, err
	}

	burnParams := o.bridge.BuildDepositForBurn(amount, chains.DomainSui, intent.DestAddress)
	o.logger.Info("Built depositForBurn for intent %s: %d USDC to domain %d via %s",
		intent.ID, burnParams.Amount, burnParams.DestinationDomain, burnParams.TokenMessenger)

	if err = o.bridgeIntent(ctx, intent, chains.Sui); err != nil {
		return intent, err
	}

	depositParams, depositErr := o.deposits.BuildDeposit(ctx, intent)
	if depositErr != nil {
		err = fmt.Errorf("failed to build deposit for intent %s: %v", intent.ID, depositErr)
		return intent, err
	}
	o.logger.InfoWithChain(logger.SuiChainID, "Deposit ready for intent %s: %s::%s::%s",
		intent.ID, depositParams.PackageID, depositParams.Module, depositParams.Function)

	if err = intent.SetStatus(models.StatusDeposited); err != nil {
		return intent, err
	}
	if err = intent.SetStatus(models.StatusCompleted); err != nil {
		return intent, err
	}

	o.logger.Notice("Intent %s completed in %s", intent.ID, time.Since(start).Round(time.Millisecond))
	return intent, nil
}

// ProcessSuiToEvm drives an API-created intent through the Sui to EVM
// lifecycle, mutating it in place. An invalid usdc amount fails fast with
// no state change.
func (o *Orchestrator) ProcessSuiToEvm(ctx context.Context, intent *models.Intent) (err error) {
	start := time.Now()
	defer func() { o.observe(models.DirectionSuiToEvm, start, err) }()

	amount, parseErr := strconv.ParseUint(intent.UsdcAmount, 10, 64)
	if parseErr != nil || amount == 0 {
		err = &InvalidAmountError{Value: intent.UsdcAmount}
		return err
	}

	o.logger.Info("Processing intent %s: %s USDC from Sui to %s on %s",
		intent.ID, intent.UsdcAmount, intent.DestAddress, intent.EvmChain)

	burnParams := o.bridge.BuildDepositForBurn(amount, chains.DomainBase, intent.DestAddress)
	o.logger.Info("Built depositForBurn for intent %s: %d USDC to domain %d",
		intent.ID, burnParams.Amount, burnParams.DestinationDomain)

	if err = o.bridgeIntent(ctx, intent, intent.EvmChain); err != nil {
		return err
	}

	deliveryParams, deliveryErr := o.delivery.BuildDelivery(ctx, intent)
	if deliveryErr != nil {
		err = fmt.Errorf("failed to build delivery for intent %s: %v", intent.ID, deliveryErr)
		return err
	}
	o.logger.Info("Delivery ready for intent %s: %s to %s via %s",
		intent.ID, deliveryParams.TokenIn, deliveryParams.TokenOut, deliveryParams.Router)

	if err = intent.SetStatus(models.StatusCompleted); err != nil {
		return err
	}

	o.logger.Notice("Intent %s completed in %s", intent.ID, time.Since(start).Round(time.Millisecond))
	return nil
}

// bridgeIntent runs the shared bridging leg: wait for the signed burn
// transaction's nonce, resolve the attestation, and build the mint call for
// the destination chain.
func (o *Orchestrator) bridgeIntent(ctx context.Context, intent *models.Intent, dest chains.Chain) error {
	nonce, err := o.nonces.Await(ctx, intent.ID)
	if err != nil {
		return fmt.Errorf("no bridge transaction reported for intent %s: %w", intent.ID, ErrTimeout)
	}
	if nonce == "" {
		return ErrBridgeFailed
	}

	intent.BridgeNonce = nonce
	if err := intent.SetStatus(models.StatusBridging); err != nil {
		return err
	}
	o.logger.Info("Intent %s bridging with nonce %s", intent.ID, nonce)

	attestation, err := o.bridge.PollAttestation(ctx, nonce, o.cfg.AttestationMaxAttempts, o.cfg.AttestationInterval)
	if err != nil {
		return err
	}

	receiveParams := o.bridge.BuildReceiveMessage(attestation, dest)
	o.logger.Info("Mint ready for intent %s on %s (%d byte message)",
		intent.ID, dest, len(receiveParams.Message))

	return intent.SetStatus(models.StatusBridgeCompleted)
}

func (o *Orchestrator) observe(direction models.Direction, start time.Time, err error) {
	outcome := "completed"
	if err != nil {
		outcome = "failed"
	}
	metrics.IntentsProcessed.WithLabelValues(string(direction), outcome).Inc()
	metrics.IntentProcessingTime.WithLabelValues(string(direction)).Observe(time.Since(start).Seconds())
}
