// Package config holds the tunables recognized by the decision engine and
// the simulator, and validates them fail-fast.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fleetsim/fleetsim/engine"
	"github.com/fleetsim/fleetsim/errs"
)

// Config mirrors the option table in the design spec. Zero-value fields are
// replaced with their documented defaults by Default(), not by the zero
// value itself, so a caller must go through Default()+overrides or
// Validate() will reject the zero Config.
type Config struct {
	// Step is the clock advance applied on each simulator tick.
	Step time.Duration
	// DecisionInterval is the minimum gap between Worker→Engine calls when
	// not idle-triggered.
	DecisionInterval time.Duration
	// DecisionHorizon is the lookahead window used by the engine when
	// estimating real capacity.
	DecisionHorizon time.Duration
	// ForecastHorizon bounds the simulated-time span of a forecast run.
	ForecastHorizon time.Duration
	// SpeedMultiplier converts sim-steps to real seconds: real = Step /
	// SpeedMultiplier. Zero means "as fast as possible" (no pacing sleep).
	SpeedMultiplier float64
	// Bias weights the SLA-failure fraction inside queue_weight.
	Bias float64

	// MinResourcesEnabled toggles the min_resources Infinite-promotion
	// override. Min/max resources are optional behavior; this makes that
	// optionality an explicit switch instead of an implicit nil-check on
	// queue data.
	MinResourcesEnabled bool
	// MaxResourcesEnabled toggles the max_resources Finite(0)-demotion
	// override fleet-wide, for every queue.
	MaxResourcesEnabled bool
	// ForceMaxEnabled toggles the same override, but scoped to only the
	// queues that individually opt in via Queue.ForceMax — lets an operator
	// force the cap on a handful of queues without enabling it everywhere.
	ForceMaxEnabled bool
}

// Default returns the documented defaults for live simulation use.
func Default() Config {
	return Config{
		Step:             time.Second,
		DecisionInterval: 10 * time.Minute,
		DecisionHorizon:  10 * time.Minute,
		ForecastHorizon:  8 * time.Hour,
		SpeedMultiplier:  1.0,
		Bias:             0.5,
	}
}

// EngineOverrides projects the resource-bound feature toggles onto the
// shape the decision engine itself accepts (engine.OverrideConfig), so the
// CLI and simulator wiring layer never has to construct that struct by hand.
func (c Config) EngineOverrides() engine.OverrideConfig {
	return engine.OverrideConfig{
		MinResourcesEnabled: c.MinResourcesEnabled,
		MaxResourcesEnabled: c.MaxResourcesEnabled,
		ForceMaxEnabled:     c.ForceMaxEnabled,
	}
}

// DefaultEngineHorizon is the decision-horizon default used when the engine
// is invoked outside of live simulation.
const DefaultEngineHorizon = time.Hour

// Validate checks every field and returns a single error aggregating every
// violation found, wrapping errs.ErrConfigurationInvalid, so a caller sees
// the whole set of problems in one pass rather than fixing them one at a
// time.
func (c Config) Validate() error {
	var problems []string
	if c.Step <= 0 {
		problems = append(problems, "step must be > 0")
	}
	if c.DecisionInterval <= 0 {
		problems = append(problems, "decision_interval must be > 0")
	}
	if c.DecisionHorizon <= 0 {
		problems = append(problems, "decision_horizon must be > 0")
	}
	if c.ForecastHorizon <= 0 {
		problems = append(problems, "forecast_horizon must be > 0")
	}
	if c.SpeedMultiplier < 0 {
		problems = append(problems, "speed_multiplier must be >= 0")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", errs.ErrConfigurationInvalid, strings.Join(problems, "; "))
	}
	return nil
}
