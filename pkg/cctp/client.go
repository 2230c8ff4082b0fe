// Package cctp implements a client for Circle's Cross-Chain Transfer
// Protocol: building depositForBurn and receiveMessage parameter records and
// resolving attestations for bidirectional USDC transfer between EVM chains
// and Sui.
//
// Flow:
//  1. Source chain: depositForBurn() burns USDC and emits MessageSent
//  2. The attestation service signs the message
//  3. Destination chain: receiveMessage(message, attestation) mints USDC
//
// The client is non-custodial: it builds transaction parameters for the
// frontend to sign and only monitors attestation status.
package cctp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/naisu-fi/naisu-agent/pkg/chains"
	"github.com/naisu-fi/naisu-agent/pkg/logger"
	"github.com/naisu-fi/naisu-agent/pkg/metrics"
)

const (
	// AttestationTestnetURL is the sandbox attestation service
	AttestationTestnetURL = "https://iris-api-sandbox.circle.com/v1"
	// AttestationMainnetURL is the production attestation service
	AttestationMainnetURL = "https://attestation.circle.com/v1"

	// UsdcBaseSepolia is the USDC contract on Base Sepolia
	UsdcBaseSepolia = "0x036CbD53842c5426634e7929541eC2318f3dCF7e"
	// TokenMessengerBaseSepolia receives depositForBurn calls on Base Sepolia
	TokenMessengerBaseSepolia = "0x9a4427fd4196d315517ed71ddd16BD053cC9c4a4"
	// MessageTransmitterBaseSepolia receives receiveMessage calls on Base Sepolia
	MessageTransmitterBaseSepolia = "0x241661E680D1F25deb4cE5230b2D7165B3ba580e"

	// attestationStatusComplete is the only status that yields a usable attestation
	attestationStatusComplete = "complete"
)

// Client talks to the CCTP contracts and the attestation service
type Client struct {
	httpClient     *http.Client
	attestationURL string
	testnet        bool
	logger         logger.Logger
}

// NewClient creates a CCTP client against a specific attestation endpoint
func NewClient(attestationURL string, testnet bool, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		attestationURL: attestationURL,
		testnet:        testnet,
		logger:         log,
	}
}

// Testnet creates a client against the sandbox attestation service
func Testnet(log logger.Logger) *Client {
	return NewClient(AttestationTestnetURL, true, log)
}

// Mainnet creates a client against the production attestation service
func Mainnet(log logger.Logger) *Client {
	return NewClient(AttestationMainnetURL, false, log)
}

// BuildDepositForBurn builds the unsigned depositForBurn parameters for the
// source chain. Pure: no network round trip, never fails.
//
// amount is the USDC amount in smallest unit (6 decimals), destDomain the
// CCTP domain id of the destination, destAddress the recipient there.
func (c *Client) BuildDepositForBurn(amount uint64, destDomain uint32, destAddress string) DepositForBurnParams {
	// TODO: mainnet TokenMessenger address once the mainnet deployment is live
	return DepositForBurnParams{
		TokenMessenger:     TokenMessengerBaseSepolia,
		UsdcAddress:        UsdcBaseSepolia,
		Amount:             amount,
		DestinationDomain:  destDomain,
		DestinationAddress: destAddress,
	}
}

// GetAttestation checks the attestation service for a given burn nonce.
// A nil result with nil error means the attestation is not yet available:
// the service answered not-found, or reported a status other than complete.
func (c *Client) GetAttestation(ctx context.Context, nonce string) (*Attestation, error) {
	url := fmt.Sprintf("%s/attestations/%s", c.attestationURL, nonce)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build attestation request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attestation: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("Failed to close response body: %v", closeErr)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: string(bodyBytes)}
	}

	var attResp attestationResponse
	if err := json.Unmarshal(bodyBytes, &attResp); err != nil {
		return nil, fmt.Errorf("failed to decode attestation response: %v, body: %s", err, string(bodyBytes))
	}

	if attResp.Data == nil || attResp.Data.Status != attestationStatusComplete {
		return nil, nil
	}

	return &Attestation{
		Message:              attResp.Data.Message,
		AttestationSignature: attResp.Data.AttestationSignature,
	}, nil
}

// PollAttestation polls the attestation service with a fixed-interval,
// bounded retry: the first attempt runs immediately and each subsequent
// attempt waits interval first. It returns as soon as any attempt yields an
// attestation, and ErrAttestationTimeout once maxAttempts attempts all came
// back empty. No backoff, no jitter: total worst-case wait is
// maxAttempts x interval.
func (c *Client) PollAttestation(ctx context.Context, nonce string, maxAttempts int, interval time.Duration) (*Attestation, error) {
	c.logger.Info("Polling CCTP attestation for nonce %s", nonce)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}
		}

		metrics.AttestationPollAttempts.Inc()
		attestation, err := c.GetAttestation(ctx, nonce)
		if err != nil {
			return nil, err
		}
		if attestation != nil {
			c.logger.Info("Attestation ready after %d attempts", attempt+1)
			return attestation, nil
		}
	}

	metrics.AttestationTimeouts.Inc()
	return nil, ErrAttestationTimeout
}

// BuildReceiveMessage builds the unsigned receiveMessage parameters for the
// destination chain. Pure mapping; the resulting call is permissionless, so
// the auto-relayer or any other party may submit it.
func (c *Client) BuildReceiveMessage(attestation *Attestation, dest chains.Chain) ReceiveMessageParams {
	var messageTransmitter string
	if dest != chains.Sui {
		// Sui mints through a Move call, not an EVM contract
		messageTransmitter = MessageTransmitterBaseSepolia
	}

	return ReceiveMessageParams{
		MessageTransmitter:   messageTransmitter,
		Message:              attestation.Message,
		AttestationSignature: attestation.AttestationSignature,
	}
}
