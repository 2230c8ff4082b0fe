package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/naisu-fi/naisu-agent/pkg/chains"
	"github.com/naisu-fi/naisu-agent/pkg/models"
)

// bridgeFeeRate is the mock relayer fee applied in quotes (0.1%)
var bridgeFeeRate = decimal.NewFromFloat(0.001)

// bridgeGasFee is the mock fixed destination gas charge in USDC
var bridgeGasFee = decimal.NewFromFloat(0.5)

// mockUsdcRates maps input tokens to a mock USDC exchange rate for quotes
var mockUsdcRates = map[string]decimal.Decimal{
	"USDC": decimal.NewFromInt(1),
	"ETH":  decimal.NewFromInt(2500),
	"WETH": decimal.NewFromInt(2500),
	"SUI":  decimal.NewFromFloat(1.5),
}

func (s *Server) handleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	if req.SourceAddress == "" || req.DestAddress == "" || req.InputToken == "" || req.InputAmount == "" {
		s.writeError(w, http.StatusBadRequest, "source_address, dest_address, input_token and input_amount are required")
		return
	}
	evmChain := chains.Chain(req.EvmChain)
	if !evmChain.IsEvm() {
		s.writeError(w, http.StatusBadRequest, "unsupported evm chain %q", req.EvmChain)
		return
	}

	id := uuid.NewString()

	switch models.Direction(req.Direction) {
	case models.DirectionEvmToSui:
		strategy := models.StrategyFromID(0)
		if req.StrategyID != nil {
			strategy = models.StrategyFromID(*req.StrategyID)
		}
		intent := models.NewEvmToSuiIntent(id, req.SourceAddress, req.DestAddress, evmChain, req.InputToken, req.InputAmount, strategy)
		s.store.Put(intent)
		s.writeData(w, http.StatusCreated, intent)

	case models.DirectionSuiToEvm:
		amount, err := strconv.ParseUint(req.UsdcAmount, 10, 64)
		if err != nil || amount == 0 {
			s.writeError(w, http.StatusBadRequest, "usdc_amount must be a positive integer in smallest units")
			return
		}
		intent := models.NewSuiToEvmIntent(id, req.SourceAddress, req.DestAddress, evmChain, req.InputToken, req.InputAmount)
		intent.UsdcAmount = req.UsdcAmount
		s.store.Put(intent)

		// The processing goroutine mutates the intent; encode a snapshot so
		// the response never shares memory with it
		snapshot := *intent
		go s.processSuiToEvm(intent)
		s.writeData(w, http.StatusCreated, &snapshot)

	default:
		s.writeError(w, http.StatusBadRequest, "direction must be %q or %q", models.DirectionEvmToSui, models.DirectionSuiToEvm)
	}
}

// processSuiToEvm runs the lifecycle in the background; the request only
// created the intent. It blocks on the bridge callback, so it must not run
// on the request goroutine.
func (s *Server) processSuiToEvm(intent *models.Intent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ProcessTimeout)
	defer cancel()

	if err := s.orch.ProcessSuiToEvm(ctx, intent); err != nil {
		s.logger.Error("Intent %s failed: %v", intent.ID, err)
		intent.Fail(err.Error())
	}

	// The bridge callback may record the transaction hash at any point;
	// merge under the store lock so neither write is lost
	if !s.store.Update(intent.ID, func(stored *models.Intent) {
		txHash := stored.BridgeTxHash
		*stored = *intent
		if stored.BridgeTxHash == "" {
			stored.BridgeTxHash = txHash
		}
	}) {
		s.store.Put(intent)
	}
	s.nonces.Discard(intent.ID)
}

func (s *Server) handleListIntents(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, s.store.List())
}

func (s *Server) handleGetIntent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	intent, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "intent %s not found", id)
		return
	}
	s.writeData(w, http.StatusOK, intent)
}

func (s *Server) handleGetIntentStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	intent, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "intent %s not found", id)
		return
	}
	s.writeData(w, http.StatusOK, IntentStatusResponse{
		ID:           intent.ID,
		Status:       string(intent.Status),
		ErrorMessage: intent.ErrorMessage,
	})
}

func (s *Server) handleBridgeCallback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req BridgeCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if !req.Failed && req.Nonce == "" {
		s.writeError(w, http.StatusBadRequest, "nonce is required unless the transaction failed")
		return
	}

	// Intents observed on-chain are persisted only once processing ends, so
	// an in-flight intent may not be in the store yet. The nonce is accepted
	// either way; the store is only updated when the intent is known.
	if req.TxHash != "" {
		s.store.Update(id, func(stored *models.Intent) {
			stored.BridgeTxHash = req.TxHash
		})
	}

	if req.Failed {
		s.nonces.Supply(id, "")
	} else {
		s.nonces.Supply(id, req.Nonce)
	}

	s.writeData(w, http.StatusOK, map[string]string{"intent_id": id})
}

func (s *Server) handleListUserIntents(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	s.writeData(w, http.StatusOK, s.store.ListByCreator(address))
}

func (s *Server) handleListChains(w http.ResponseWriter, r *http.Request) {
	list := make([]ChainInfo, 0, len(chains.EvmChainList)+1)
	for _, c := range append(append([]chains.Chain{}, chains.EvmChainList...), chains.Sui) {
		domain, _ := chains.Domain(c)
		list = append(list, ChainInfo{
			Chain:      string(c),
			Name:       c.Name(),
			ChainID:    c.ChainID(),
			CctpDomain: domain,
			Testnet:    c.IsTestnet(),
		})
	}
	s.writeData(w, http.StatusOK, list)
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	list := make([]StrategyInfo, 0, len(models.KnownStrategies))
	for _, strategy := range models.KnownStrategies {
		list = append(list, StrategyInfo{
			ID:              strategy.ID(),
			Name:            strategy.Name(),
			Protocol:        strategy.Protocol(),
			Asset:           strategy.Asset(),
			RequiresSuiSwap: strategy.RequiresSuiSwap(),
		})
	}
	s.writeData(w, http.StatusOK, list)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() || amount.IsZero() {
		s.writeError(w, http.StatusBadRequest, "amount must be a positive decimal string")
		return
	}

	rate := s.lookupRate(strings.ToUpper(req.Token))

	gross := amount.Mul(rate)
	fee := gross.Mul(bridgeFeeRate).Round(6)
	net := gross.Sub(fee).Round(6)

	s.writeData(w, http.StatusOK, QuoteResponse{
		Token:            req.Token,
		InputAmount:      req.Amount,
		UsdcAmount:       net.String(),
		Fee:              fee.String(),
		EstimatedSeconds: 90,
	})
}

// lookupRate resolves the USDC exchange rate for a token, caching results.
// Unknown tokens quote at parity.
func (s *Server) lookupRate(token string) decimal.Decimal {
	if rate, ok := s.rates.Get(token); ok {
		return rate
	}

	rate, ok := mockUsdcRates[token]
	if !ok {
		rate = decimal.NewFromInt(1)
	}
	s.rates.Set(token, rate)
	return rate
}

// handleBridgeStatus projects an intent onto its bridge leg
func (s *Server) handleBridgeStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("intent_id")
	intent, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "intent %s not found", id)
		return
	}

	source, dest := string(intent.EvmChain), string(chains.Sui)
	if intent.Direction == models.DirectionSuiToEvm {
		source, dest = dest, source
	}
	amount := intent.UsdcAmount
	if amount == "" {
		amount = "0"
	}

	s.writeData(w, http.StatusOK, BridgeStatusResponse{
		IntentID:    intent.ID,
		Status:      string(intent.Status),
		SourceChain: source,
		DestChain:   dest,
		Amount:      amount,
		Nonce:       intent.BridgeNonce,
	})
}

func (s *Server) handleBridgeFee(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil || amount.IsNegative() {
		s.writeError(w, http.StatusBadRequest, "amount must be a non-negative decimal string")
		return
	}

	fee := amount.Mul(bridgeFeeRate).Round(6)
	s.writeData(w, http.StatusOK, BridgeFeeResponse{
		BridgeFee: fee.String(),
		GasFee:    bridgeGasFee.String(),
		TotalFee:  fee.Add(bridgeGasFee).String(),
		Token:     "USDC",
	})
}

// handleChainStatus serves a mock health projection for the frontend; real
// ingest progress is on the ops server's /status
func (s *Server) handleChainStatus(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, []ChainStatus{
		{Chain: string(chains.BaseSepolia), Status: "healthy", BlockHeight: 12345678, LatencyMs: 150},
		{Chain: string(chains.Sui), Status: "healthy", BlockHeight: 87654321, LatencyMs: 200},
	})
}

func (s *Server) handleAdvisorHealth(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, map[string]string{"status": "available"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	msg := strings.ToLower(req.Message)
	resp := ChatResponse{
		Reply: "I can help you move assets between EVM chains and Sui yield positions. Ask about yield, risk, or how bridging works.",
	}
	switch {
	case strings.Contains(msg, "yield") || strings.Contains(msg, "apy") || strings.Contains(msg, "earn"):
		suggested := models.StrategyScallopUSDC.ID()
		resp.Reply = "For stable yield on Sui, Scallop USDC lending is the most conservative option. Navi USDC is a close alternative."
		resp.SuggestedStrategy = &suggested
	case strings.Contains(msg, "risk"):
		resp.Reply = "USDC strategies carry only protocol risk. SUI strategies add price exposure because your bridged USDC is swapped to SUI first."
	case strings.Contains(msg, "bridge") || strings.Contains(msg, "how"):
		resp.Reply = "Your funds move through Circle's burn-and-mint bridge: USDC is burned on the source chain, attested off-chain, and minted on the destination. You sign every transaction yourself."
	}

	s.writeData(w, http.StatusOK, resp)
}
