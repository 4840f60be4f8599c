// Package config loads the operator-facing tunables the grounding
// algorithm itself leaves as implementation choices (spec.md §9): the
// aggregate propagator's over-approximation strategy, whether an
// UnsatisfiableWarning is promoted to a fatal error, and an optional
// cap on Herbrand-instance count. Config is read once at driver
// startup and handed to the grounder as a value — the grounder stays
// a pure function of (Program, GrounderConfig), per §6.4.
package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// AggregateStrategy selects how the propagator's satisfiability
// oracle over-approximates #count/#sum for large domains (§4.6, §9).
type AggregateStrategy string

const (
	// StrategyBitset names a bitset-backed powerset enumeration of
	// element instances. The propagator has no such enumeration and
	// does not read AggregateStrategy, so it grounds exactly as
	// StrategyBoundOnly does.
	StrategyBitset AggregateStrategy = "bitset"
	// StrategyBoundOnly uses interval bounds on element counts/weights
	// without enumeration, which is what the propagator always does.
	StrategyBoundOnly AggregateStrategy = "bound-only"
)

// GrounderConfig controls a single grounding invocation. The zero
// value is not valid; use Default() or Load().
type GrounderConfig struct {
	// AggregateStrategy names the propagator's oracle strategy; the
	// grounder does not read it (see StrategyBitset).
	AggregateStrategy AggregateStrategy `mapstructure:"aggregate_strategy" yaml:"aggregate_strategy"`
	// DomainCutoff is an element-instance count paired with
	// AggregateStrategy; the grounder does not read it, and no
	// fallback between strategies takes place.
	DomainCutoff int `mapstructure:"domain_cutoff" yaml:"domain_cutoff"`
	// Strict promotes an UnsatisfiableWarning (§7) to a fatal error
	// instead of a warning attached to an otherwise-successful result.
	Strict bool `mapstructure:"strict" yaml:"strict"`
	// MaxInstances records a cap on the number of distinct ground
	// atoms in J/K (0 means unlimited). The grounder does not read it,
	// so no cap is enforced.
	MaxInstances int `mapstructure:"max_instances" yaml:"max_instances"`
}

// Default returns the configuration a fresh invocation uses absent
// any file or flag overrides.
func Default() GrounderConfig {
	return GrounderConfig{
		AggregateStrategy: StrategyBitset,
		DomainCutoff:      4096,
		Strict:            false,
		MaxInstances:      0,
	}
}

// BindFlags registers the config's cobra flags on cmd, bound through
// v so that file, environment, and flag values merge with viper's
// usual precedence (flag > env > file > default).
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().String("aggregate-strategy", string(StrategyBitset), "aggregate propagator strategy: bitset or bound-only")
	cmd.Flags().Int("domain-cutoff", 4096, "element-instance cutoff paired with the aggregate strategy (not read by the grounder)")
	cmd.Flags().Bool("strict", false, "treat UnsatisfiableWarning as a fatal error")
	cmd.Flags().Int("max-instances", 0, "cap on distinct ground atoms (0 = unlimited)")

	_ = v.BindPFlag("aggregate_strategy", cmd.Flags().Lookup("aggregate-strategy"))
	_ = v.BindPFlag("domain_cutoff", cmd.Flags().Lookup("domain-cutoff"))
	_ = v.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	_ = v.BindPFlag("max_instances", cmd.Flags().Lookup("max-instances"))
}

// Load builds a viper instance rooted at groundgo.yaml (searched in
// the working directory and $HOME/.groundgo), lets cmd's bound flags
// override it, and unmarshals the result into a GrounderConfig seeded
// with Default().
func Load(v *viper.Viper) (GrounderConfig, error) {
	cfg := Default()

	v.SetConfigName("groundgo")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.groundgo")
	v.SetDefault("aggregate_strategy", string(cfg.AggregateStrategy))
	v.SetDefault("domain_cutoff", cfg.DomainCutoff)
	v.SetDefault("strict", cfg.Strict)
	v.SetDefault("max_instances", cfg.MaxInstances)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, fmt.Errorf("config: reading groundgo.yaml: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return cfg, nil
}
