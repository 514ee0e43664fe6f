/*
Package nodegraph provides an in-memory model and mutation API for
directed node graphs serialized as a flat JSON map of node id to node.

# Overview

A graph is a mapping from string node ids to nodes. Each node carries a
class type tag, named inputs (literals or connections to other nodes'
output ports), and optional display metadata. The package provides CRUD
over nodes and input-edges, traversal queries, referential-integrity
validation, and, at its core, a structural equivalence engine that
decides whether two graphs represent the same computation regardless of
how their nodes are named.

The wire format is the flat map itself: no envelope, no version field.

	{
	  "1": {"class_type": "VAELoader", "inputs": {"vae_name": "m.safetensors"}},
	  "2": {"class_type": "KSampler", "inputs": {"steps": 20, "model": ["1", 0]}}
	}

A 2-element [string, number] array in inputs always means a connection
(source node id, output port); everything else is a literal.

# Basic Usage

Build a graph, wire nodes, query edges:

	g := nodegraph.New()
	loader := g.AddNode("VAELoader", map[string]nodegraph.InputValue{
	    "vae_name": nodegraph.Literal("m.safetensors"),
	})
	sampler := g.AddNode("KSampler", map[string]nodegraph.InputValue{
	    "steps": nodegraph.Literal(20),
	})
	g.AddEdge(loader, 0, sampler, "model")

	g.HasConnection(loader, sampler) // true
	g.EdgesTo(sampler)               // [{loader 0 sampler model}]

Or hydrate from serialized form:

	g, err := nodegraph.FromJSON(data)

# Structural Equivalence

EquivalentTo decides whether two graphs are the same up to node-id
renaming; StructuralDiff explains how they differ:

	diffs := subject.StructuralDiff(reference)
	for _, d := range diffs {
	    fmt.Println(d.Type, d.Details)
	}

Nodes are grouped by class type, and same-class nodes are paired across
graphs by a canonical content hash in which connections are encoded by
the class type they point at, not the id. The matching is greedy rather
than optimal bipartite matching: with several structurally different
same-class nodes it may pair suboptimally and report one illustrative
mismatch instead of all of them. That trade of completeness for
determinism and speed is deliberate.

Use a Comparer for instrumented comparisons:

	comparer := nodegraph.NewComparer(
	    nodegraph.WithCompareLogger(logger),
	    nodegraph.WithCompareMetrics(true),
	)
	diffs := comparer.Compare(ctx, subject, reference)

# Validation

Validation is the boundary for untrusted input. It returns findings as
data and never panics:

	result := nodegraph.ValidateWorkflow(raw)
	if !result.Valid {
	    for _, issue := range result.Errors {
	        fmt.Println(issue.Message)
	    }
	}

Dangling connection references are errors; nodes with no connections in
or out are advisory warnings. A catalog of known class types can be
supplied with WithCatalog for additional advisory checks.

# Error Handling

Three regimes, matching how each failure class arises:

  - API misuse (duplicate explicit id, edge to a missing node, setting
    an input on a missing node) panics with an error wrapping
    ErrDuplicateNodeID or ErrNodeNotFound.
  - Expected absence (removing a missing node or edge, querying a
    missing node) is a silent no-op or a false second return.
  - Untrusted input is reported as data through validation, or as a
    returned error wrapping ErrMalformedJSON / ErrInvalidStructure at
    the ingestion boundary.

# Thread Safety

  - Graph is NOT safe for concurrent mutation; use a single goroutine
    or serialize externally. Deep-copy-on-read prevents aliasing bugs,
    not data races.
  - Comparer and Validator are safe for concurrent use.
  - archive.Store implementations are safe for concurrent use.

# Subpackages

  - archive: revisioned snapshot storage (memory, SQLite)
  - catalog: registry of known node class types
  - config: typed settings extraction from YAML/JSON
  - observability: logging, metrics, and tracing helpers
*/
package nodegraph
