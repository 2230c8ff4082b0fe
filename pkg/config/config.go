// Package config loads the agent configuration from environment variables,
// with a .env file as a convenience for local runs.
package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/naisu-fi/naisu-agent/pkg/chains"
	"github.com/naisu-fi/naisu-agent/pkg/logger"
)

// Config holds the configuration for the agent service
type Config struct {
	Network  string
	EvmChain chains.Chain

	EvmRPCURL        string
	HookAddress      string
	PollingInterval  time.Duration
	EventBufferSize  int
	EventSendTimeout time.Duration

	AttestationURL         string
	AttestationMaxAttempts int
	AttestationInterval    time.Duration

	SuiRPCURL      string
	ScallopPackage string
	NaviPackage    string

	APIPort        string
	MetricsPort    string
	MetricsAPIKey  string
	ProcessTimeout time.Duration

	CircuitBreaker CircuitBreakerConfig
	LoggerConfig   LoggerConfig
}

// CircuitBreakerConfig holds circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled        bool
	Threshold      int
	WindowDuration time.Duration
	ResetTimeout   time.Duration
}

// LoggerConfig holds the configuration for logging
type LoggerConfig struct {
	Level    logger.Level
	Coloring bool
}

// IsTestnet reports whether the agent runs against test networks
func (c *Config) IsTestnet() bool {
	return c.Network == testnet
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	network, err := GetEnvNetwork()
	if err != nil {
		return nil, err
	}

	evmChain, err := GetEnvEvmChain()
	if err != nil {
		return nil, err
	}

	hookAddress, err := GetEnvHookAddress()
	if err != nil {
		return nil, err
	}

	pollingInterval, err := GetEnvPollingInterval()
	if err != nil {
		return nil, err
	}

	eventBufferSize, err := GetEnvEventBufferSize()
	if err != nil {
		return nil, err
	}

	eventSendTimeout, err := GetEnvEventSendTimeout()
	if err != nil {
		return nil, err
	}

	attestationMaxAttempts, err := GetEnvAttestationMaxAttempts()
	if err != nil {
		return nil, err
	}

	attestationInterval, err := GetEnvAttestationInterval()
	if err != nil {
		return nil, err
	}

	apiPort, err := GetEnvAPIPort()
	if err != nil {
		return nil, err
	}

	metricsPort, err := GetEnvMetricsPort()
	if err != nil {
		return nil, err
	}

	processTimeout, err := GetEnvProcessTimeout()
	if err != nil {
		return nil, err
	}

	logLevel, err := GetEnvLogLevel()
	if err != nil {
		return nil, err
	}

	logColoring, err := GetEnvLogColoring()
	if err != nil {
		return nil, err
	}

	cbEnabled, err := GetEnvCircuitBreakerEnabled()
	if err != nil {
		return nil, err
	}

	cbThreshold, err := GetEnvCircuitBreakerThreshold()
	if err != nil {
		return nil, err
	}

	cbWindow, err := GetEnvCircuitBreakerWindow()
	if err != nil {
		return nil, err
	}

	cbReset, err := GetEnvCircuitBreakerReset()
	if err != nil {
		return nil, err
	}

	return &Config{
		Network:  network,
		EvmChain: evmChain,

		EvmRPCURL:        GetEnvEvmRPCURL(),
		HookAddress:      hookAddress,
		PollingInterval:  pollingInterval,
		EventBufferSize:  eventBufferSize,
		EventSendTimeout: eventSendTimeout,

		AttestationURL:         GetEnvAttestationURL(),
		AttestationMaxAttempts: attestationMaxAttempts,
		AttestationInterval:    attestationInterval,

		SuiRPCURL:      GetEnvSuiRPCURL(),
		ScallopPackage: GetEnvScallopPackage(),
		NaviPackage:    GetEnvNaviPackage(),

		APIPort:        apiPort,
		MetricsPort:    metricsPort,
		MetricsAPIKey:  GetEnvMetricsAPIKey(),
		ProcessTimeout: processTimeout,

		CircuitBreaker: CircuitBreakerConfig{
			Enabled:        cbEnabled,
			Threshold:      cbThreshold,
			WindowDuration: cbWindow,
			ResetTimeout:   cbReset,
		},
		LoggerConfig: LoggerConfig{
			Level:    logLevel,
			Coloring: logColoring,
		},
	}, nil
}
