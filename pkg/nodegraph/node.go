package nodegraph

import (
	"encoding/json"
	"fmt"
)

// Node is a single operation in a graph: a class tag plus named inputs.
// Nodes are identified by their id in the owning Graph, not by a field
// on the node itself.
//
// Nodes returned from Graph query methods are deep copies. Mutating them
// never affects the graph; use the Graph mutation methods instead.
type Node struct {
	// ClassType identifies the node's operation (e.g. "KSampler").
	// Many nodes in a graph may share a class type.
	ClassType string

	// Inputs maps input names to their values. Each value is either a
	// literal or a connection to another node's output port.
	Inputs map[string]InputValue

	// Meta holds optional display-only annotations. It never affects
	// structural equivalence.
	Meta *Meta
}

// Meta carries display-only node annotations.
type Meta struct {
	// Title is a human-readable label for the node.
	Title string
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ClassType: n.ClassType,
		Inputs:    make(map[string]InputValue, len(n.Inputs)),
	}
	for name, v := range n.Inputs {
		c.Inputs[name] = v.clone()
	}
	if n.Meta != nil {
		meta := *n.Meta
		c.Meta = &meta
	}
	return c
}

// Connection references another node's output port.
// An input holding a Connection receives the value produced at
// Port of the node with SourceID.
type Connection struct {
	// SourceID is the id of the node producing the value.
	SourceID string
	// Port is the zero-based output port index on the source node.
	Port int
}

// inputKind discriminates the InputValue union.
type inputKind uint8

const (
	kindLiteral inputKind = iota
	kindConnection
)

// InputValue is a tagged union: either a literal JSON value or a
// Connection to another node's output port. The zero value is the
// literal null.
//
// Construct values with Literal or Connect:
//
//	n.Inputs["steps"] = nodegraph.Literal(20)
//	n.Inputs["model"] = nodegraph.Connect("4", 0)
type InputValue struct {
	kind    inputKind
	literal any
	conn    Connection
}

// Literal creates an InputValue holding a literal JSON value
// (string, number, bool, nil, or nested array/object).
//
// A literal must never itself be a 2-element array of (string, number):
// on the wire that shape is reserved for connections and would be
// decoded as one.
//
// Numeric literals keep the Go type they were constructed with; after a
// serialization round trip every JSON number comes back as float64, the
// way encoding/json decodes untyped values. The wire bytes and
// structural equivalence are unaffected, since both compare canonical
// JSON rather than Go representations.
func Literal(v any) InputValue {
	return InputValue{kind: kindLiteral, literal: v}
}

// Connect creates an InputValue referencing output port of the node
// with the given id.
func Connect(sourceID string, port int) InputValue {
	return InputValue{kind: kindConnection, conn: Connection{SourceID: sourceID, Port: port}}
}

// IsConnection reports whether the value is a connection.
func (v InputValue) IsConnection() bool {
	return v.kind == kindConnection
}

// Connection returns the connection and true if the value is one.
func (v InputValue) Connection() (Connection, bool) {
	if v.kind != kindConnection {
		return Connection{}, false
	}
	return v.conn, true
}

// Literal returns the literal value and true if the value is one.
func (v InputValue) Literal() (any, bool) {
	if v.kind != kindLiteral {
		return nil, false
	}
	return v.literal, true
}

// clone returns a deep copy of the value. Connections are plain value
// types; literals may hold nested maps/slices from decoded JSON.
func (v InputValue) clone() InputValue {
	if v.kind == kindLiteral {
		return InputValue{kind: kindLiteral, literal: deepCopyValue(v.literal)}
	}
	return v
}

// MarshalJSON encodes a connection as a 2-element [id, port] array and
// a literal as itself.
func (v InputValue) MarshalJSON() ([]byte, error) {
	if v.kind == kindConnection {
		return json.Marshal([2]any{v.conn.SourceID, v.conn.Port})
	}
	return json.Marshal(v.literal)
}

// UnmarshalJSON decodes an input value, classifying any 2-element
// array of (string, number) as a Connection. Everything else is a
// literal. This closed-world rule matches the wire format: no literal
// may legitimately have the connection shape.
func (v *InputValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = inputValueFromRaw(raw)
	return nil
}

// inputValueFromRaw classifies a decoded JSON value as a connection or
// a literal.
func inputValueFromRaw(raw any) InputValue {
	if id, port, ok := connectionShape(raw); ok {
		return Connect(id, port)
	}
	return InputValue{kind: kindLiteral, literal: raw}
}

// connectionShape reports whether raw is a 2-element array of
// (string, number), the wire encoding of a Connection.
func connectionShape(raw any) (string, int, bool) {
	arr, ok := raw.([]any)
	if !ok || len(arr) != 2 {
		return "", 0, false
	}
	id, ok := arr[0].(string)
	if !ok {
		return "", 0, false
	}
	switch p := arr[1].(type) {
	case float64:
		return id, int(p), true
	case int:
		return id, p, true
	default:
		return "", 0, false
	}
}

// deepCopyValue copies decoded-JSON shaped values (maps, slices,
// scalars). Scalars are immutable and returned as-is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		c := make(map[string]any, len(val))
		for k, e := range val {
			c[k] = deepCopyValue(e)
		}
		return c
	case []any:
		c := make([]any, len(val))
		for i, e := range val {
			c[i] = deepCopyValue(e)
		}
		return c
	default:
		return val
	}
}

// String returns a compact description, mostly for logs and tests.
func (v InputValue) String() string {
	if v.kind == kindConnection {
		return fmt.Sprintf("connection(%s:%d)", v.conn.SourceID, v.conn.Port)
	}
	return fmt.Sprintf("literal(%v)", v.literal)
}
