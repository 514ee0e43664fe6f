package nodegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPipeline builds the two-node loader -> sampler graph used
// throughout the edge tests.
func buildPipeline(t *testing.T) (*Graph, string, string) {
	t.Helper()
	g := New()
	loader := g.AddNode("VAELoader", map[string]InputValue{
		"vae_name": Literal("m.safetensors"),
	}, WithID("1"))
	sampler := g.AddNode("KSampler", map[string]InputValue{
		"steps": Literal(20),
	}, WithID("2"))
	g.AddEdge(loader, 0, sampler, "model")
	return g, loader, sampler
}

// TestGraph_AddEdge tests edge creation as a connection input.
func TestGraph_AddEdge(t *testing.T) {
	g, loader, sampler := buildPipeline(t)

	node, _ := g.Node(sampler)
	conn, ok := node.Inputs["model"].Connection()
	require.True(t, ok)
	assert.Equal(t, loader, conn.SourceID)
	assert.Equal(t, 0, conn.Port)
}

// TestGraph_AddEdge_MissingEndpoint_Panics tests that edges to or from
// missing nodes panic.
func TestGraph_AddEdge_MissingEndpoint_Panics(t *testing.T) {
	g := New()
	id := g.AddNode("KSampler", nil)

	assert.PanicsWithError(t, "nodegraph: node not found: nope", func() {
		g.AddEdge("nope", 0, id, "model")
	})
	assert.PanicsWithError(t, "nodegraph: node not found: nope", func() {
		g.AddEdge(id, 0, "nope", "model")
	})
}

// TestGraph_AddEdge_OverwritesPriorValue tests that a connection
// silently replaces whatever the input held, literal or connection.
func TestGraph_AddEdge_OverwritesPriorValue(t *testing.T) {
	g := New()
	a := g.AddNode("CLIPLoader", nil)
	b := g.AddNode("VAELoader", nil)
	dst := g.AddNode("KSampler", map[string]InputValue{
		"model": Literal("placeholder"),
	})

	g.AddEdge(a, 0, dst, "model")
	node, _ := g.Node(dst)
	conn, _ := node.Inputs["model"].Connection()
	assert.Equal(t, a, conn.SourceID)

	g.AddEdge(b, 1, dst, "model")
	node, _ = g.Node(dst)
	conn, _ = node.Inputs["model"].Connection()
	assert.Equal(t, b, conn.SourceID)
	assert.Equal(t, 1, conn.Port)
}

// TestGraph_RemoveEdge tests connection removal and its no-op cases.
func TestGraph_RemoveEdge(t *testing.T) {
	t.Run("removes a connection", func(t *testing.T) {
		g, _, sampler := buildPipeline(t)
		g.RemoveEdge(sampler, "model")

		node, _ := g.Node(sampler)
		_, has := node.Inputs["model"]
		assert.False(t, has)
	})

	t.Run("never deletes a literal", func(t *testing.T) {
		g, _, sampler := buildPipeline(t)
		g.RemoveEdge(sampler, "steps")

		node, _ := g.Node(sampler)
		_, has := node.Inputs["steps"]
		assert.True(t, has)
	})

	t.Run("no-op on absent node or input", func(t *testing.T) {
		g, _, sampler := buildPipeline(t)
		assert.NotPanics(t, func() {
			g.RemoveEdge("nope", "model")
			g.RemoveEdge(sampler, "nope")
		})
	})
}

// TestGraph_Edges tests the derived edge scan.
func TestGraph_Edges(t *testing.T) {
	g, loader, sampler := buildPipeline(t)

	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, Edge{
		SourceID:    loader,
		SourcePort:  0,
		TargetID:    sampler,
		TargetInput: "model",
	}, edges[0])
}

// TestGraph_Edges_Empty verifies literal-only graphs have no edges.
func TestGraph_Edges_Empty(t *testing.T) {
	g := New()
	g.AddNode("KSampler", map[string]InputValue{"steps": Literal(20)})
	assert.Empty(t, g.Edges())
}

// TestGraph_EdgesFrom_EdgesTo tests directional filters.
func TestGraph_EdgesFrom_EdgesTo(t *testing.T) {
	g := New()
	a := g.AddNode("CheckpointLoader", nil)
	b := g.AddNode("KSampler", nil)
	c := g.AddNode("KSampler", nil)
	g.AddEdge(a, 0, b, "model")
	g.AddEdge(a, 0, c, "model")
	g.AddEdge(b, 0, c, "latent")

	assert.Len(t, g.EdgesFrom(a), 2)
	assert.Len(t, g.EdgesFrom(b), 1)
	assert.Empty(t, g.EdgesFrom(c))

	assert.Len(t, g.EdgesTo(c), 2)
	assert.Len(t, g.EdgesTo(b), 1)
	assert.Empty(t, g.EdgesTo(a))
}

// TestGraph_HasConnection tests source/target pair lookup.
func TestGraph_HasConnection(t *testing.T) {
	g, loader, sampler := buildPipeline(t)

	assert.True(t, g.HasConnection(loader, sampler))
	assert.False(t, g.HasConnection(sampler, loader))
	assert.False(t, g.HasConnection(loader, "nope"))
}
