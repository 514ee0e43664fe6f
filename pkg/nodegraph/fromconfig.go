package nodegraph

import (
	"log/slog"

	"github.com/randalmurphal/nodegraph/pkg/nodegraph/config"
)

// File-driven construction: services that load their settings from a
// YAML/JSON file can build a Comparer or Validator straight from a
// config.Config instead of wiring options by hand.
//
// Recognized keys:
//
//	metrics: bool            enable OTel metrics (default false)
//	tracing: bool            enable OTel tracing (default false)
//	isolated_as_error: bool  promote isolation warnings (default false)

// ComparerFromConfig builds a Comparer from configuration.
// A nil logger disables logging regardless of configuration.
func ComparerFromConfig(cfg config.Config, logger *slog.Logger) *Comparer {
	return NewComparer(
		WithCompareLogger(logger),
		WithCompareMetrics(cfg.Bool("metrics", false)),
		WithCompareTracing(cfg.Bool("tracing", false)),
	)
}

// ValidatorFromConfig builds a Validator from configuration.
// Catalog wiring stays programmatic: pass it through opts.
func ValidatorFromConfig(cfg config.Config, logger *slog.Logger, opts ...ValidateOption) *Validator {
	vopts := []ValidatorOption{
		WithValidatorLogger(logger),
		WithValidatorMetrics(cfg.Bool("metrics", false)),
		WithValidatorTracing(cfg.Bool("tracing", false)),
		WithValidatorOptions(opts...),
	}
	if cfg.Bool("isolated_as_error", false) {
		vopts = append(vopts, WithValidatorOptions(WithIsolationAsError()))
	}
	return NewValidator(vopts...)
}
