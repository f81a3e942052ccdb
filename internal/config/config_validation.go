// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies the
// server's startup invariants. An empty DSN is allowed: the server falls back
// to a local SQLite file.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey != "" && cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *AgentConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.PollInterval == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
