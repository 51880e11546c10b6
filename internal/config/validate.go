package config

import (
	"fmt"
	"strconv"

	"github.com/Siva2k2k/ES-TM-sub001/internal/model"

	"github.com/rs/zerolog"
)

const devJWTSecret = "default_super_secret_key"

// Validate checks the loaded configuration and resolves the consistency mode.
// TIMESHEET_CONSISTENCY_MODE wins; otherwise USE_TRANSACTIONS=false selects best_effort.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		if c.IsRelease() {
			return fmt.Errorf("auth: JWT_SECRET is required in release mode")
		}
		c.Auth.JWTSecret = devJWTSecret
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log: format must be json or console (got %q)", c.Log.Format)
	}

	mode, err := c.Workflow.resolveMode()
	if err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	c.Workflow.ConsistencyMode = string(mode)

	return nil
}

// Mode returns the resolved consistency mode. Call after Validate.
func (w WorkflowConfig) Mode() model.ConsistencyMode {
	return model.ConsistencyMode(w.ConsistencyMode)
}

func (w WorkflowConfig) resolveMode() (model.ConsistencyMode, error) {
	if w.ConsistencyMode != "" {
		return model.ParseConsistencyMode(w.ConsistencyMode)
	}
	if w.UseTransactions == "" {
		return model.ConsistencyTransactional, nil
	}
	use, err := strconv.ParseBool(w.UseTransactions)
	if err != nil {
		return "", fmt.Errorf("invalid USE_TRANSACTIONS %q", w.UseTransactions)
	}
	if !use {
		return model.ConsistencyBestEffort, nil
	}
	return model.ConsistencyTransactional, nil
}
