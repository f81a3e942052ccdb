package config

import (
	"fmt"
	"time"
)

// AgentAdapter holds network settings used by the lock agent's API client.
type AgentAdapter struct {
	// HTTPAddress is the base address of the stayvault API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// PollInterval defines how often the agent polls access codes.
	PollInterval time.Duration
	// Login is the agent's service-account login.
	Login string
	// Password is the agent's service-account password.
	Password string
	// Addresses lists the escrow addresses whose locks the agent drives.
	Addresses []string
}

// AgentConfig is the top-level lock-agent configuration assembled from
// [StructuredConfig].
type AgentConfig struct {
	// Adapter contains transport addresses and timeouts.
	Adapter AgentAdapter
}

// GetAgentConfig builds and validates the lock-agent config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the agent runtime, and validates the resulting [AgentConfig].
func GetAgentConfig() (*AgentConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	agentCfg := &AgentConfig{
		Adapter: AgentAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			PollInterval:   cfg.Adapter.PollInterval,
			Login:          cfg.Adapter.Login,
			Password:       cfg.Adapter.Password,
			Addresses:      cfg.Adapter.Addresses,
		},
	}

	return agentCfg, agentCfg.validate()
}
