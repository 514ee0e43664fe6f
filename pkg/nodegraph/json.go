package nodegraph

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Wire format: a JSON object whose keys are node ids and whose values
// are {"class_type": string, "inputs": object, "_meta"?: {"title"?: string}}.
// There is no envelope or version field; the object is the graph.

// FromJSON parses serialized graph text and hydrates a Graph.
//
// A parse failure wraps ErrMalformedJSON; parseable input that does
// not have the graph shape wraps ErrInvalidStructure. Both are fatal
// to the call: there is no partial load.
func FromJSON(data []byte) (*Graph, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &StructureError{Detail: "workflow must be an object mapping node ids to nodes"}
	}
	return FromMap(m)
}

// FromMap hydrates a Graph from an already-parsed object of the wire
// shape. The input is deep-copied, so the graph owns its own state
// regardless of what the caller does with raw afterwards.
//
// Returns an error wrapping ErrInvalidStructure if raw does not have
// the graph shape.
func FromMap(raw map[string]any) (*Graph, error) {
	if err := checkRawStructure(raw); err != nil {
		return nil, err
	}

	g := New()
	for _, id := range sortedNodeIDs(raw) {
		entry := raw[id].(map[string]any)
		node := &Node{
			ClassType: entry["class_type"].(string),
			Inputs:    make(map[string]InputValue),
		}
		for name, value := range entry["inputs"].(map[string]any) {
			node.Inputs[name] = inputValueFromRaw(deepCopyValue(value))
		}
		if meta, ok := entry["_meta"].(map[string]any); ok {
			if title, ok := meta["title"].(string); ok {
				node.Meta = &Meta{Title: title}
			}
		}
		g.nodes[id] = node
		g.order = append(g.order, id)
	}
	return g, nil
}

// checkRawStructure verifies raw conforms to the wire shape. It
// returns a *StructureError naming the first violation, or nil.
func checkRawStructure(raw any) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return &StructureError{Detail: "workflow must be an object mapping node ids to nodes"}
	}
	for id, value := range m {
		entry, ok := value.(map[string]any)
		if !ok {
			return &StructureError{Detail: fmt.Sprintf("node %q must be an object", id)}
		}
		if _, ok := entry["class_type"].(string); !ok {
			return &StructureError{Detail: fmt.Sprintf("node %q missing string field \"class_type\"", id)}
		}
		if _, ok := entry["inputs"].(map[string]any); !ok {
			return &StructureError{Detail: fmt.Sprintf("node %q missing object field \"inputs\"", id)}
		}
	}
	return nil
}

// sortedNodeIDs orders ids numerically when they parse as integers,
// with non-numeric ids after, lexically. JSON objects carry no order,
// so hydration needs a deterministic one.
func sortedNodeIDs(raw map[string]any) []string {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aErr := strconv.Atoi(ids[i])
		b, bErr := strconv.Atoi(ids[j])
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}

// ToMap projects the graph back to the wire shape as a plain object.
// The result is a deep, aliasing-free snapshot.
func (g *Graph) ToMap() map[string]any {
	out := make(map[string]any, len(g.nodes))
	for id, node := range g.nodes {
		inputs := make(map[string]any, len(node.Inputs))
		for name, v := range node.Inputs {
			if conn, ok := v.Connection(); ok {
				inputs[name] = []any{conn.SourceID, conn.Port}
			} else {
				lit, _ := v.Literal()
				inputs[name] = deepCopyValue(lit)
			}
		}
		entry := map[string]any{
			"class_type": node.ClassType,
			"inputs":     inputs,
		}
		if node.Meta != nil {
			entry["_meta"] = map[string]any{"title": node.Meta.Title}
		}
		out[id] = entry
	}
	return out
}

// ToJSON serializes the graph to compact wire-format JSON.
func (g *Graph) ToJSON() ([]byte, error) {
	return json.Marshal(g.ToMap())
}

// ToJSONIndent serializes the graph to wire-format JSON indented with
// the given number of spaces. Zero or negative indent is compact.
func (g *Graph) ToJSONIndent(indent int) ([]byte, error) {
	if indent <= 0 {
		return g.ToJSON()
	}
	return json.MarshalIndent(g.ToMap(), "", strings.Repeat(" ", indent))
}
