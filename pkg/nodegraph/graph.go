package nodegraph

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Graph is the sole source of truth for node existence and node input
// state. It maps string node ids to nodes and tracks insertion order so
// queries iterate deterministically.
//
// Graph is NOT safe for concurrent mutation. Use a single goroutine, or
// serialize access externally. Every query method returns deep copies,
// so values handed out never alias internal state; the only way to
// mutate a graph is through its mutation methods.
//
// Example:
//
//	g := nodegraph.New()
//	loader := g.AddNode("VAELoader", map[string]nodegraph.InputValue{
//	    "vae_name": nodegraph.Literal("m.safetensors"),
//	})
//	sampler := g.AddNode("KSampler", map[string]nodegraph.InputValue{
//	    "steps": nodegraph.Literal(20),
//	})
//	g.AddEdge(loader, 0, sampler, "model")
type Graph struct {
	id    string
	nodes map[string]*Node
	order []string
}

// New creates an empty graph with a generated unique id.
// The id identifies the graph instance in logs, traces, and snapshot
// archives; it plays no part in structural equivalence.
func New() *Graph {
	return &Graph{
		id:    uuid.New().String(),
		nodes: make(map[string]*Node),
	}
}

// ID returns the graph's unique instance id.
func (g *Graph) ID() string {
	return g.id
}

// nodeConfig holds optional AddNode settings.
type nodeConfig struct {
	id    string
	title string
}

// NodeOption configures AddNode behavior.
type NodeOption func(*nodeConfig)

// WithID assigns an explicit node id instead of an auto-generated one.
// AddNode panics if the id already exists.
//
// Mixing explicit non-numeric ids with auto-generated ones is the
// caller's responsibility: auto-generation only avoids collisions with
// integer-parseable ids.
func WithID(id string) NodeOption {
	return func(c *nodeConfig) {
		c.id = id
	}
}

// WithTitle sets the node's display title. Titles never affect
// structural equivalence.
func WithTitle(title string) NodeOption {
	return func(c *nodeConfig) {
		c.title = title
	}
}

// AddNode inserts a node and returns its id.
//
// Panics if:
//   - classType is empty
//   - an explicit id (via WithID) already exists in the graph
//
// Without WithID, the id is NextID(). The inputs map is deep-copied;
// the caller keeps ownership of the map it passed in.
func (g *Graph) AddNode(classType string, inputs map[string]InputValue, opts ...NodeOption) string {
	if classType == "" {
		panic("nodegraph: class type cannot be empty")
	}

	var cfg nodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	id := cfg.id
	if id == "" {
		id = g.NextID()
	} else if _, exists := g.nodes[id]; exists {
		panic(fmt.Errorf("nodegraph: %w: %s", ErrDuplicateNodeID, id))
	}

	node := &Node{
		ClassType: classType,
		Inputs:    make(map[string]InputValue, len(inputs)),
	}
	for name, v := range inputs {
		node.Inputs[name] = v.clone()
	}
	if cfg.title != "" {
		node.Meta = &Meta{Title: cfg.title}
	}

	g.nodes[id] = node
	g.order = append(g.order, id)
	return id
}

// NextID returns one more than the largest integer-parseable node id,
// as a string. If no id parses as an integer the result is "1".
//
// The value is recomputed from current contents on every call, so it
// stays correct after arbitrary removals. It does not guard against
// collisions with non-numeric custom ids.
func (g *Graph) NextID() string {
	max := 0
	for id := range g.nodes {
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// RemoveNode deletes a node and detaches every connection pointing at
// it: any other node's input holding a connection with the removed id
// as source is deleted. Downstream nodes survive with that input now
// absent (cascading detachment, not cascading deletion).
//
// Removing an absent id is a no-op.
func (g *Graph) RemoveNode(id string) {
	if _, exists := g.nodes[id]; !exists {
		return
	}

	delete(g.nodes, id)
	for i, ordered := range g.order {
		if ordered == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	for _, node := range g.nodes {
		for name, v := range node.Inputs {
			if conn, ok := v.Connection(); ok && conn.SourceID == id {
				delete(node.Inputs, name)
			}
		}
	}
}

// SetInput sets a single input on an existing node, replacing any
// prior value. Panics if the node does not exist.
func (g *Graph) SetInput(id, name string, value InputValue) {
	node, exists := g.nodes[id]
	if !exists {
		panic(fmt.Errorf("nodegraph: %w: %s", ErrNodeNotFound, id))
	}
	node.Inputs[name] = value.clone()
}

// RemoveInput deletes an input from a node regardless of whether it
// holds a literal or a connection. No-op if the node or input is
// absent.
func (g *Graph) RemoveInput(id, name string) {
	node, exists := g.nodes[id]
	if !exists {
		return
	}
	delete(node.Inputs, name)
}

// Node returns a deep copy of the node with the given id.
// The second result is false if the node does not exist.
func (g *Graph) Node(id string) (*Node, bool) {
	node, exists := g.nodes[id]
	if !exists {
		return nil, false
	}
	return node.Clone(), true
}

// Nodes returns a deep copy of the full id -> node mapping.
func (g *Graph) Nodes() map[string]*Node {
	out := make(map[string]*Node, len(g.nodes))
	for id, node := range g.nodes {
		out[id] = node.Clone()
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// NodeRef pairs a node id with a deep copy of its node.
type NodeRef struct {
	ID   string
	Node *Node
}

// FindNodesByClass returns all nodes with the given class type, in
// insertion order.
func (g *Graph) FindNodesByClass(classType string) []NodeRef {
	var refs []NodeRef
	for _, id := range g.order {
		if node := g.nodes[id]; node.ClassType == classType {
			refs = append(refs, NodeRef{ID: id, Node: node.Clone()})
		}
	}
	return refs
}
