package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/naisu-fi/naisu-agent/pkg/chains"
	"github.com/naisu-fi/naisu-agent/pkg/logger"
)

const (
	mainnet = "mainnet"
	testnet = "testnet"

	// DefaultNetwork is the default network to run against
	DefaultNetwork = testnet

	// DefaultEvmChain is the default source chain watched for intents
	DefaultEvmChain = "base_sepolia"

	// DefaultEvmRPCURL is the default source-chain RPC endpoint
	DefaultEvmRPCURL = "https://sepolia.base.org"

	// DefaultSuiRPCURL is the default Sui fullnode endpoint
	DefaultSuiRPCURL = "https://fullnode.testnet.sui.io"

	// DefaultPollingInterval defines the default poll-mode interval in seconds
	DefaultPollingInterval = 5

	// DefaultEventBufferSize defines the default event channel capacity
	DefaultEventBufferSize = 100

	// DefaultEventSendTimeout defines how long event delivery may stall in seconds
	DefaultEventSendTimeout = 30

	// DefaultAttestationMaxAttempts defines the default attestation poll bound
	DefaultAttestationMaxAttempts = 30

	// DefaultAttestationInterval defines the default attestation poll interval in seconds
	DefaultAttestationInterval = 5

	// DefaultAPIPort defines the default port for the API server
	DefaultAPIPort = "8080"

	// DefaultMetricsPort defines the default port for the metrics server
	DefaultMetricsPort = "9090"

	// DefaultProcessTimeout defines how long a SuiToEvm intent may run in minutes
	DefaultProcessTimeout = 10

	// DefaultCircuitBreakerEnabled defines whether the circuit breaker is enabled
	DefaultCircuitBreakerEnabled = true

	// DefaultCircuitBreakerThreshold defines the number of failures before the circuit breaker trips
	DefaultCircuitBreakerThreshold = 5

	// DefaultCircuitBreakerWindow defines the time window for the circuit breaker in seconds
	DefaultCircuitBreakerWindow = 60

	// DefaultCircuitBreakerReset defines the reset timeout for the circuit breaker in seconds
	DefaultCircuitBreakerReset = 30
)

// GetEnvNetwork returns the configured network from environment variables
func GetEnvNetwork() (string, error) {
	network := os.Getenv("NETWORK")
	if network == "" {
		network = DefaultNetwork
	}

	if network != mainnet && network != testnet {
		return "", fmt.Errorf("invalid NETWORK value: %s, must be 'mainnet' or 'testnet'", network)
	}

	return network, nil
}

// GetEnvEvmChain returns the source chain watched for intents
func GetEnvEvmChain() (chains.Chain, error) {
	value := os.Getenv("EVM_CHAIN")
	if value == "" {
		value = DefaultEvmChain
	}

	chain := chains.Chain(value)
	if !chain.IsEvm() {
		return "", fmt.Errorf("invalid EVM_CHAIN value: %s, must be a supported EVM chain", value)
	}
	return chain, nil
}

// GetEnvEvmRPCURL returns the source-chain RPC endpoint from environment variables
func GetEnvEvmRPCURL() string {
	rpcURL := os.Getenv("EVM_RPC_URL")
	if rpcURL == "" {
		return DefaultEvmRPCURL
	}
	return rpcURL
}

// GetEnvSuiRPCURL returns the Sui fullnode endpoint from environment variables
func GetEnvSuiRPCURL() string {
	rpcURL := os.Getenv("SUI_RPC_URL")
	if rpcURL == "" {
		return DefaultSuiRPCURL
	}
	return rpcURL
}

// GetEnvHookAddress returns the intent hook contract address. It is the one
// variable with no default: without it there is nothing to watch.
func GetEnvHookAddress() (string, error) {
	hookAddress := os.Getenv("HOOK_ADDRESS")
	if hookAddress == "" {
		return "", fmt.Errorf("HOOK_ADDRESS is required")
	}

	if !common.IsHexAddress(hookAddress) {
		return "", fmt.Errorf("invalid HOOK_ADDRESS value: %s, must be a valid Ethereum address", hookAddress)
	}
	return hookAddress, nil
}

// GetEnvPollingInterval returns the poll-mode interval from environment variables
func GetEnvPollingInterval() (time.Duration, error) {
	pollingInterval := os.Getenv("POLLING_INTERVAL")
	if pollingInterval == "" {
		return time.Duration(DefaultPollingInterval) * time.Second, nil
	}

	interval, err := strconv.Atoi(pollingInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid POLLING_INTERVAL value: %s, must be an integer", pollingInterval)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("POLLING_INTERVAL must be greater than 0")
	}
	return time.Duration(interval) * time.Second, nil
}

// GetEnvEventBufferSize returns the event channel capacity from environment variables
func GetEnvEventBufferSize() (int, error) {
	bufferSize := os.Getenv("EVENT_BUFFER_SIZE")
	if bufferSize == "" {
		return DefaultEventBufferSize, nil
	}

	size, err := strconv.Atoi(bufferSize)
	if err != nil {
		return 0, fmt.Errorf("invalid EVENT_BUFFER_SIZE value: %s, must be an integer", bufferSize)
	}
	if size <= 0 {
		return 0, fmt.Errorf("EVENT_BUFFER_SIZE must be greater than 0")
	}
	return size, nil
}

// GetEnvEventSendTimeout returns the delivery stall bound from environment variables
func GetEnvEventSendTimeout() (time.Duration, error) {
	sendTimeout := os.Getenv("EVENT_SEND_TIMEOUT")
	if sendTimeout == "" {
		return DefaultEventSendTimeout * time.Second, nil
	}

	parsed, err := time.ParseDuration(sendTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid EVENT_SEND_TIMEOUT value: %s, must be a valid duration string", sendTimeout)
	}
	return parsed, nil
}

// GetEnvAttestationURL returns the attestation service base URL, empty when
// the network default should be used
func GetEnvAttestationURL() string {
	return os.Getenv("ATTESTATION_URL")
}

// GetEnvAttestationMaxAttempts returns the attestation poll bound from environment variables
func GetEnvAttestationMaxAttempts() (int, error) {
	maxAttempts := os.Getenv("ATTESTATION_MAX_ATTEMPTS")
	if maxAttempts == "" {
		return DefaultAttestationMaxAttempts, nil
	}

	attempts, err := strconv.Atoi(maxAttempts)
	if err != nil {
		return 0, fmt.Errorf("invalid ATTESTATION_MAX_ATTEMPTS value: %s, must be an integer", maxAttempts)
	}
	if attempts <= 0 {
		return 0, fmt.Errorf("ATTESTATION_MAX_ATTEMPTS must be greater than 0")
	}
	return attempts, nil
}

// GetEnvAttestationInterval returns the attestation poll interval from environment variables
func GetEnvAttestationInterval() (time.Duration, error) {
	interval := os.Getenv("ATTESTATION_INTERVAL")
	if interval == "" {
		return DefaultAttestationInterval * time.Second, nil
	}

	parsed, err := time.ParseDuration(interval)
	if err != nil {
		return 0, fmt.Errorf("invalid ATTESTATION_INTERVAL value: %s, must be a valid duration string", interval)
	}
	return parsed, nil
}

// GetEnvAPIPort returns the API server port from environment variables
func GetEnvAPIPort() (string, error) {
	apiPort := os.Getenv("API_PORT")
	if apiPort == "" {
		return DefaultAPIPort, nil
	}

	if _, err := strconv.Atoi(apiPort); err != nil {
		return "", fmt.Errorf("invalid API_PORT value: %s, must be a valid integer", apiPort)
	}
	return apiPort, nil
}

// GetEnvMetricsPort returns the metrics server port from environment variables
func GetEnvMetricsPort() (string, error) {
	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		return DefaultMetricsPort, nil
	}

	if _, err := strconv.Atoi(metricsPort); err != nil {
		return "", fmt.Errorf("invalid METRICS_PORT value: %s, must be a valid integer", metricsPort)
	}
	return metricsPort, nil
}

// GetEnvMetricsAPIKey returns the optional bearer key guarding the metrics endpoint
func GetEnvMetricsAPIKey() string {
	return os.Getenv("METRICS_API_KEY")
}

// GetEnvProcessTimeout returns the SuiToEvm processing bound from environment variables
func GetEnvProcessTimeout() (time.Duration, error) {
	processTimeout := os.Getenv("PROCESS_TIMEOUT")
	if processTimeout == "" {
		return DefaultProcessTimeout * time.Minute, nil
	}

	parsed, err := time.ParseDuration(processTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid PROCESS_TIMEOUT value: %s, must be a valid duration string", processTimeout)
	}
	return parsed, nil
}

// GetEnvLogLevel returns the log level from environment variables
func GetEnvLogLevel() (logger.Level, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return logger.InfoLevel, nil
	}

	switch level {
	case "debug":
		return logger.DebugLevel, nil
	case "info":
		return logger.InfoLevel, nil
	case "notice":
		return logger.NoticeLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL value: %s, must be 'debug', 'info', 'notice' or 'error'", level)
}

// GetEnvLogColoring returns whether log coloring is enabled from environment variables
func GetEnvLogColoring() (bool, error) {
	coloring := os.Getenv("LOG_COLORING")
	if coloring == "" {
		return true, nil
	}

	if coloring == "true" {
		return true, nil
	} else if coloring == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid LOG_COLORING value: %s, must be 'true' or 'false'", coloring)
}

// GetEnvCircuitBreakerEnabled returns whether the circuit breaker is enabled from environment variables
func GetEnvCircuitBreakerEnabled() (bool, error) {
	enabled := os.Getenv("CIRCUIT_BREAKER_ENABLED")
	if enabled == "" {
		return DefaultCircuitBreakerEnabled, nil
	}

	if enabled == "true" {
		return true, nil
	} else if enabled == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid CIRCUIT_BREAKER_ENABLED value: %s, must be 'true' or 'false'", enabled)
}

// GetEnvCircuitBreakerThreshold returns the circuit breaker threshold from environment variables
func GetEnvCircuitBreakerThreshold() (int, error) {
	threshold := os.Getenv("CIRCUIT_BREAKER_THRESHOLD")
	if threshold == "" {
		return DefaultCircuitBreakerThreshold, nil
	}

	thresholdInt, err := strconv.Atoi(threshold)
	if err != nil {
		return 0, fmt.Errorf("invalid CIRCUIT_BREAKER_THRESHOLD value: %s, must be an integer", threshold)
	}
	if thresholdInt <= 0 {
		return 0, fmt.Errorf("CIRCUIT_BREAKER_THRESHOLD must be greater than 0")
	}
	return thresholdInt, nil
}

// GetEnvCircuitBreakerWindow returns the circuit breaker window duration from environment variables
func GetEnvCircuitBreakerWindow() (time.Duration, error) {
	window := os.Getenv("CIRCUIT_BREAKER_WINDOW")
	if window == "" {
		return DefaultCircuitBreakerWindow * time.Second, nil
	}

	parsed, err := time.ParseDuration(window)
	if err != nil {
		return 0, fmt.Errorf("invalid CIRCUIT_BREAKER_WINDOW value: %s, must be a valid duration string", window)
	}
	return parsed, nil
}

// GetEnvCircuitBreakerReset returns the circuit breaker reset timeout from environment variables
func GetEnvCircuitBreakerReset() (time.Duration, error) {
	reset := os.Getenv("CIRCUIT_BREAKER_RESET")
	if reset == "" {
		return DefaultCircuitBreakerReset * time.Second, nil
	}

	parsed, err := time.ParseDuration(reset)
	if err != nil {
		return 0, fmt.Errorf("invalid CIRCUIT_BREAKER_RESET value: %s, must be a valid duration string", reset)
	}
	return parsed, nil
}

// GetEnvScallopPackage returns an override for the Scallop package id
func GetEnvScallopPackage() string {
	return os.Getenv("SCALLOP_PACKAGE")
}

// GetEnvNaviPackage returns an override for the Navi package id
func GetEnvNaviPackage() string {
	return os.Getenv("NAVI_PACKAGE")
}
