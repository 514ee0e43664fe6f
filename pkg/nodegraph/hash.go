package nodegraph

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Content hashing gives every node a canonical, id-independent string
// so same-class nodes can be paired across graphs despite arbitrary id
// permutation. Connections are encoded by the class type of the node
// they point at (not its id); literals by their canonical JSON.

// canonicalLiteral renders a literal as compact JSON. encoding/json
// sorts map keys, so the encoding is stable across input orderings.
func canonicalLiteral(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Non-JSON-encodable literals only arise from programmatic
		// construction; fall back to a printable form.
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// normalizeConnection encodes a connection as "classType:port" using
// the owning graph's nodes to resolve the source class type. A
// dangling source resolves to an empty class type; validation reports
// those separately.
func normalizeConnection(g *Graph, conn Connection) string {
	classType := ""
	if node, exists := g.nodes[conn.SourceID]; exists {
		classType = node.ClassType
	}
	return fmt.Sprintf("%s:%d", classType, conn.Port)
}

// contentHash builds the canonical per-node string: for each input
// name in lexicographic order, "name:encodedValue", joined with ";".
func contentHash(g *Graph, node *Node) string {
	names := make([]string, 0, len(node.Inputs))
	for name := range node.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		v := node.Inputs[name]
		var encoded string
		if conn, ok := v.Connection(); ok {
			encoded = normalizeConnection(g, conn)
		} else {
			lit, _ := v.Literal()
			encoded = canonicalLiteral(lit)
		}
		parts = append(parts, name+":"+encoded)
	}
	return strings.Join(parts, ";")
}
