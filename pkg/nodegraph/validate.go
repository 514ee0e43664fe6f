package nodegraph

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/randalmurphal/nodegraph/pkg/nodegraph/catalog"
	"github.com/randalmurphal/nodegraph/pkg/nodegraph/observability"
)

// Validation is the one boundary designed for untrusted input: it
// reports problems as data instead of panicking or returning errors,
// and distinguishes hard errors from advisory warnings.

// Issue kinds reported by validation.
const (
	IssueInvalidStructure   = "invalid_structure"
	IssueDanglingConnection = "dangling_connection"
	IssueIsolatedNode       = "isolated"
	IssueUnknownClass       = "unknown_class"
	IssueMissingInput       = "missing_input"
)

// Issue is one validation finding.
type Issue struct {
	// Kind is one of the Issue* constants.
	Kind string `json:"kind"`
	// NodeID names the offending node, when one can be named.
	NodeID string `json:"node_id,omitempty"`
	// Input names the offending input, when one can be named.
	Input string `json:"input,omitempty"`
	// TargetID is the referenced node id for dangling connections.
	TargetID string `json:"target_id,omitempty"`
	// Message is the human-readable description.
	Message string `json:"message"`
}

// Result aggregates validation findings. Valid is false iff Errors is
// non-empty; Warnings never affect validity.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// ValidateStructure checks that raw parsed input conforms to the wire
// graph shape: an object mapping node ids to objects with a string
// "class_type" and an object "inputs". An invalid input yields a
// single coarse error, not per-node detail.
func ValidateStructure(raw any) Result {
	if err := checkRawStructure(raw); err != nil {
		return Result{
			Valid: false,
			Errors: []Issue{{
				Kind:    IssueInvalidStructure,
				Message: err.Error(),
			}},
		}
	}
	return Result{Valid: true}
}

// ValidateConnections checks referential integrity of a hydrated
// graph: every connection's source node must exist. Each dangling
// reference produces one error naming the node, input, and target.
//
// It also flags isolated nodes as warnings. A node is isolated when it
// neither holds any connection-valued input nor is referenced as a
// connection source by any node: zero connections in or out.
func ValidateConnections(g *Graph) Result {
	var errors []Issue
	touched := make(map[string]struct{})

	for _, id := range g.order {
		node := g.nodes[id]
		names := make([]string, 0, len(node.Inputs))
		for name := range node.Inputs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			conn, ok := node.Inputs[name].Connection()
			if !ok {
				continue
			}
			touched[id] = struct{}{}
			touched[conn.SourceID] = struct{}{}
			if _, exists := g.nodes[conn.SourceID]; !exists {
				errors = append(errors, Issue{
					Kind:     IssueDanglingConnection,
					NodeID:   id,
					Input:    name,
					TargetID: conn.SourceID,
					Message:  fmt.Sprintf("node %q input %q references nonexistent node %q", id, name, conn.SourceID),
				})
			}
		}
	}

	var warnings []Issue
	for _, id := range g.order {
		if _, ok := touched[id]; !ok {
			warnings = append(warnings, Issue{
				Kind:    IssueIsolatedNode,
				NodeID:  id,
				Message: fmt.Sprintf("node %q has no incoming or outgoing connections", id),
			})
		}
	}

	return Result{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// validateConfig holds optional validation settings.
type validateConfig struct {
	isolationAsError bool
	catalog          *catalog.Catalog
}

// ValidateOption configures ValidateWorkflow behavior.
type ValidateOption func(*validateConfig)

// WithIsolationAsError promotes isolated-node warnings to errors.
func WithIsolationAsError() ValidateOption {
	return func(c *validateConfig) {
		c.isolationAsError = true
	}
}

// WithCatalog checks node class types against a catalog of known
// classes. Unknown classes and missing required inputs are reported as
// warnings; the workflow may still be valid for a pipeline with a
// larger class set.
func WithCatalog(cat *catalog.Catalog) ValidateOption {
	return func(c *validateConfig) {
		c.catalog = cat
	}
}

// ValidateWorkflow validates raw parsed input end to end. If the
// structure is invalid, the result carries only the structure error
// and no connection-level findings. Otherwise it merges connection
// errors, isolation warnings, and any catalog findings.
func ValidateWorkflow(raw any, opts ...ValidateOption) Result {
	var cfg validateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return validateWorkflow(raw, cfg)
}

func validateWorkflow(raw any, cfg validateConfig) Result {
	structure := ValidateStructure(raw)
	if !structure.Valid {
		return structure
	}

	// Structure is valid, so hydration cannot fail.
	g, err := FromMap(raw.(map[string]any))
	if err != nil {
		return Result{
			Valid:  false,
			Errors: []Issue{{Kind: IssueInvalidStructure, Message: err.Error()}},
		}
	}

	result := ValidateConnections(g)

	if cfg.catalog != nil {
		result.Warnings = append(result.Warnings, catalogFindings(g, cfg.catalog)...)
	}

	if cfg.isolationAsError {
		var warnings []Issue
		for _, w := range result.Warnings {
			if w.Kind == IssueIsolatedNode {
				result.Errors = append(result.Errors, w)
			} else {
				warnings = append(warnings, w)
			}
		}
		result.Warnings = warnings
		result.Valid = len(result.Errors) == 0
	}

	return result
}

// catalogFindings reports unknown class types and missing required
// inputs against a class catalog. Advisory only.
func catalogFindings(g *Graph, cat *catalog.Catalog) []Issue {
	var warnings []Issue
	for _, id := range g.order {
		node := g.nodes[id]
		class, known := cat.Get(node.ClassType)
		if !known {
			warnings = append(warnings, Issue{
				Kind:    IssueUnknownClass,
				NodeID:  id,
				Message: fmt.Sprintf("node %q has unknown class type %q", id, node.ClassType),
			})
			continue
		}
		for _, required := range class.RequiredInputs {
			if _, present := node.Inputs[required]; !present {
				warnings = append(warnings, Issue{
					Kind:    IssueMissingInput,
					NodeID:  id,
					Input:   required,
					Message: fmt.Sprintf("node %q (%s) is missing required input %q", id, node.ClassType, required),
				})
			}
		}
	}
	return warnings
}

// Validator runs workflow validation with optional logging, metrics,
// and tracing, mirroring Comparer. The plain ValidateWorkflow function
// has none of that overhead.
type Validator struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	cfg     validateConfig
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithValidatorLogger sets the logger for validation outcomes.
// Nil (the default) disables logging.
func WithValidatorLogger(logger *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		v.logger = logger
	}
}

// WithValidatorMetrics enables OpenTelemetry metrics for validations.
func WithValidatorMetrics(enabled bool) ValidatorOption {
	return func(v *Validator) {
		if enabled {
			v.metrics = observability.NewMetricsRecorder()
		} else {
			v.metrics = observability.NoopMetrics{}
		}
	}
}

// WithValidatorTracing enables OpenTelemetry tracing for validations.
func WithValidatorTracing(enabled bool) ValidatorOption {
	return func(v *Validator) {
		if enabled {
			v.spans = observability.NewSpanManager()
		} else {
			v.spans = observability.NoopSpanManager{}
		}
	}
}

// WithValidatorOptions applies ValidateWorkflow options (catalog,
// isolation policy) to every validation the Validator runs.
func WithValidatorOptions(opts ...ValidateOption) ValidatorOption {
	return func(v *Validator) {
		for _, opt := range opts {
			opt(&v.cfg)
		}
	}
}

// NewValidator creates a Validator. All observability is disabled
// until switched on through options.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateWorkflow validates raw input under the configured
// instrumentation. The result semantics are identical to the package
// function.
func (v *Validator) ValidateWorkflow(ctx context.Context, raw any) Result {
	ctx, span := v.spans.StartValidateSpan(ctx)

	result := validateWorkflow(raw, v.cfg)

	v.metrics.RecordValidation(ctx, len(result.Errors), len(result.Warnings))
	observability.LogValidation(v.logger, result.Valid, len(result.Errors), len(result.Warnings))
	v.spans.EndSpanWithError(span, nil)

	return result
}
