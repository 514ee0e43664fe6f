package nodegraph

import "fmt"

// Edge is a derived view of a connection: the value produced at
// SourcePort of SourceID feeds TargetInput of TargetID.
//
// Edges are never stored. They are recomputed from node inputs on
// every query, so they can never drift from the connections that
// define them.
type Edge struct {
	SourceID    string
	SourcePort  int
	TargetID    string
	TargetInput string
}

// AddEdge connects SourcePort srcPort of node srcID to input dstInput
// of node dstID, unconditionally overwriting any prior value (literal
// or connection) at that input.
//
// Panics if either endpoint node does not exist.
func (g *Graph) AddEdge(srcID string, srcPort int, dstID, dstInput string) {
	if _, exists := g.nodes[srcID]; !exists {
		panic(fmt.Errorf("nodegraph: %w: %s", ErrNodeNotFound, srcID))
	}
	dst, exists := g.nodes[dstID]
	if !exists {
		panic(fmt.Errorf("nodegraph: %w: %s", ErrNodeNotFound, dstID))
	}
	dst.Inputs[dstInput] = Connect(srcID, srcPort)
}

// RemoveEdge clears the connection held by input inputName of node
// dstID. It is a no-op if the node is absent, the input is absent, or
// the input holds a literal: this operation never deletes a literal.
func (g *Graph) RemoveEdge(dstID, inputName string) {
	node, exists := g.nodes[dstID]
	if !exists {
		return
	}
	if v, present := node.Inputs[inputName]; present && v.IsConnection() {
		delete(node.Inputs, inputName)
	}
}

// Edges scans every node's inputs and materializes all connections as
// edges, in node insertion order (input order within a node is
// unspecified). Cost is O(nodes x inputs-per-node).
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, id := range g.order {
		node := g.nodes[id]
		for name, v := range node.Inputs {
			if conn, ok := v.Connection(); ok {
				edges = append(edges, Edge{
					SourceID:    conn.SourceID,
					SourcePort:  conn.Port,
					TargetID:    id,
					TargetInput: name,
				})
			}
		}
	}
	return edges
}

// EdgesFrom returns every edge whose source is srcID.
func (g *Graph) EdgesFrom(srcID string) []Edge {
	var edges []Edge
	for _, e := range g.Edges() {
		if e.SourceID == srcID {
			edges = append(edges, e)
		}
	}
	return edges
}

// EdgesTo returns every edge whose target is dstID.
func (g *Graph) EdgesTo(dstID string) []Edge {
	var edges []Edge
	for _, e := range g.Edges() {
		if e.TargetID == dstID {
			edges = append(edges, e)
		}
	}
	return edges
}

// HasConnection reports whether any edge exists from srcID to dstID,
// regardless of port or input name.
func (g *Graph) HasConnection(srcID, dstID string) bool {
	for _, e := range g.Edges() {
		if e.SourceID == srcID && e.TargetID == dstID {
			return true
		}
	}
	return false
}
