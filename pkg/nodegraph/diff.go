package nodegraph

import (
	"fmt"
	"sort"
)

// DiffType classifies a structural difference between two graphs.
type DiffType string

// Diff record types, from coarse (node counts) to fine (single input).
const (
	// DiffClassCountMismatch: both graphs contain the class type but
	// with different node counts.
	DiffClassCountMismatch DiffType = "class_type_count_mismatch"

	// DiffMissingNodeType: the reference contains nodes of a class
	// type the subject lacks entirely.
	DiffMissingNodeType DiffType = "missing_node_type"

	// DiffExtraNodeType: the subject contains nodes of a class type
	// the reference lacks entirely.
	DiffExtraNodeType DiffType = "extra_node_type"

	// DiffInputMismatch: a matched node pair disagrees on a literal
	// input (missing, extra, or different value), or one side holds a
	// connection where the other holds a direct value.
	DiffInputMismatch DiffType = "input_mismatch"

	// DiffConnectionMismatch: a matched node pair's connections for an
	// input resolve to different "classType:port" targets.
	DiffConnectionMismatch DiffType = "connection_mismatch"
)

// Diff is one explainable difference between a subject graph and a
// reference graph. Expected reflects the reference side, Actual the
// subject side.
type Diff struct {
	Type      DiffType `json:"type"`
	ClassType string   `json:"class_type,omitempty"`
	InputName string   `json:"input_name,omitempty"`
	Expected  any      `json:"expected,omitempty"`
	Actual    any      `json:"actual,omitempty"`
	Details   string   `json:"details"`
}

// classNode pairs a node id with the graph's own node record.
// Internal to the diff engine; never handed to callers.
type classNode struct {
	id   string
	node *Node
}

// EquivalentTo reports whether g and ref represent the same
// computation up to node-id renaming: same class-type multiset and
// matching input/connection shape. Connections compare by the class
// type of the node they point at, never by id.
//
// The relation is reflexive and invariant under bijective id renaming.
// With three or more same-class nodes whose hashes tie, the greedy
// matcher may pair suboptimally and report a false mismatch; that is
// an accepted trade of completeness for determinism and speed.
func (g *Graph) EquivalentTo(ref *Graph) bool {
	return len(g.StructuralDiff(ref)) == 0
}

// StructuralDiff compares g (subject) against ref (reference) and
// returns an ordered list of differences, empty when the graphs are
// structurally equivalent.
//
// Class types are visited in sorted order. A count mismatch for a
// class suppresses finer-grained diffs for that class: once counts
// disagree the graphs cannot be equivalent there, and input-level
// entries would only add noise. When several same-class nodes fail to
// match by content hash, only the first unmatched pair is explained.
func (g *Graph) StructuralDiff(ref *Graph) []Diff {
	subjectByClass := g.groupByClass()
	referenceByClass := ref.groupByClass()

	classTypes := make(map[string]struct{})
	for ct := range subjectByClass {
		classTypes[ct] = struct{}{}
	}
	for ct := range referenceByClass {
		classTypes[ct] = struct{}{}
	}
	sorted := make([]string, 0, len(classTypes))
	for ct := range classTypes {
		sorted = append(sorted, ct)
	}
	sort.Strings(sorted)

	var diffs []Diff
	for _, classType := range sorted {
		subjectNodes := subjectByClass[classType]
		referenceNodes := referenceByClass[classType]

		switch {
		case len(subjectNodes) == 0:
			diffs = append(diffs, Diff{
				Type:      DiffMissingNodeType,
				ClassType: classType,
				Expected:  len(referenceNodes),
				Actual:    0,
				Details:   fmt.Sprintf("missing node type %q: reference has %d, subject has none", classType, len(referenceNodes)),
			})
		case len(referenceNodes) == 0:
			diffs = append(diffs, Diff{
				Type:      DiffExtraNodeType,
				ClassType: classType,
				Expected:  0,
				Actual:    len(subjectNodes),
				Details:   fmt.Sprintf("extra node type %q: subject has %d, reference has none", classType, len(subjectNodes)),
			})
		case len(subjectNodes) != len(referenceNodes):
			diffs = append(diffs, Diff{
				Type:      DiffClassCountMismatch,
				ClassType: classType,
				Expected:  len(referenceNodes),
				Actual:    len(subjectNodes),
				Details:   fmt.Sprintf("node type %q count differs: subject has %d, reference has %d", classType, len(subjectNodes), len(referenceNodes)),
			})
		case len(subjectNodes) == 1:
			diffs = append(diffs, diffNodeInputs(g, subjectNodes[0], ref, referenceNodes[0], classType)...)
		default:
			diffs = append(diffs, matchMultiNodeClass(g, subjectNodes, ref, referenceNodes, classType)...)
		}
	}
	return diffs
}

// groupByClass partitions the graph's nodes by class type, preserving
// insertion order within each group.
func (g *Graph) groupByClass() map[string][]classNode {
	groups := make(map[string][]classNode)
	for _, id := range g.order {
		node := g.nodes[id]
		groups[node.ClassType] = append(groups[node.ClassType], classNode{id: id, node: node})
	}
	return groups
}

// matchMultiNodeClass pairs same-class nodes across graphs by content
// hash. The match is greedy: subject nodes in insertion order each
// take the first hash-equal unmatched reference node. Anything left
// unmatched is a real difference; the first unmatched pair gets a full
// input diff as the illustrative explanation, and remaining unmatched
// pairs are not enumerated.
func matchMultiNodeClass(subject *Graph, subjectNodes []classNode, reference *Graph, referenceNodes []classNode, classType string) []Diff {
	referenceHashes := make([]string, len(referenceNodes))
	for i, rn := range referenceNodes {
		referenceHashes[i] = contentHash(reference, rn.node)
	}

	matched := make([]bool, len(referenceNodes))
	var unmatched []classNode
	for _, sn := range subjectNodes {
		hash := contentHash(subject, sn.node)
		found := false
		for j := range referenceNodes {
			if !matched[j] && referenceHashes[j] == hash {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			unmatched = append(unmatched, sn)
		}
	}

	if len(unmatched) == 0 {
		return nil
	}

	// Counts are equal here, so an unmatched subject node implies an
	// unmatched reference node.
	for j := range referenceNodes {
		if !matched[j] {
			return diffNodeInputs(subject, unmatched[0], reference, referenceNodes[j], classType)
		}
	}
	return nil
}

// diffNodeInputs compares one subject node against one reference node
// input by input, over the union of their input names in sorted order.
//
// Connections are normalized against their own graph's id -> class map
// before comparing, so two connections to differently-named nodes of
// the same class are equal. Literal disagreement keeps three distinct
// framings: missing in subject, extra in subject, and value differs.
func diffNodeInputs(subject *Graph, subjectNode classNode, reference *Graph, referenceNode classNode, classType string) []Diff {
	names := make(map[string]struct{})
	for name := range subjectNode.node.Inputs {
		names[name] = struct{}{}
	}
	for name := range referenceNode.node.Inputs {
		names[name] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	var diffs []Diff
	for _, name := range sorted {
		subjectVal, subjectHas := subjectNode.node.Inputs[name]
		referenceVal, referenceHas := referenceNode.node.Inputs[name]

		subjectConn, subjectIsConn := subjectVal.Connection()
		referenceConn, referenceIsConn := referenceVal.Connection()

		switch {
		case subjectIsConn && referenceIsConn:
			actual := normalizeConnection(subject, subjectConn)
			expected := normalizeConnection(reference, referenceConn)
			if actual != expected {
				diffs = append(diffs, Diff{
					Type:      DiffConnectionMismatch,
					ClassType: classType,
					InputName: name,
					Expected:  expected,
					Actual:    actual,
					Details:   fmt.Sprintf("input %q connects to %s, reference expects %s", name, actual, expected),
				})
			}

		case subjectIsConn != referenceIsConn:
			diffs = append(diffs, Diff{
				Type:      DiffInputMismatch,
				ClassType: classType,
				InputName: name,
				Expected:  describeInput(referenceVal, referenceHas),
				Actual:    describeInput(subjectVal, subjectHas),
				Details:   fmt.Sprintf("input %q type mismatch: one side is a connection, the other a direct value", name),
			})

		default:
			// Both literal-or-absent.
			subjectLit, _ := subjectVal.Literal()
			referenceLit, _ := referenceVal.Literal()
			switch {
			case !subjectHas && referenceHas:
				diffs = append(diffs, Diff{
					Type:      DiffInputMismatch,
					ClassType: classType,
					InputName: name,
					Expected:  referenceLit,
					Actual:    nil,
					Details:   fmt.Sprintf("missing input %q: reference expects %s", name, canonicalLiteral(referenceLit)),
				})
			case subjectHas && !referenceHas:
				diffs = append(diffs, Diff{
					Type:      DiffInputMismatch,
					ClassType: classType,
					InputName: name,
					Expected:  nil,
					Actual:    subjectLit,
					Details:   fmt.Sprintf("unexpected input %q with value %s", name, canonicalLiteral(subjectLit)),
				})
			case canonicalLiteral(subjectLit) != canonicalLiteral(referenceLit):
				diffs = append(diffs, Diff{
					Type:      DiffInputMismatch,
					ClassType: classType,
					InputName: name,
					Expected:  referenceLit,
					Actual:    subjectLit,
					Details:   fmt.Sprintf("input %q differs: got %s, expected %s", name, canonicalLiteral(subjectLit), canonicalLiteral(referenceLit)),
				})
			}
		}
	}
	return diffs
}

// describeInput renders one side of a type-mismatched input for the
// Expected/Actual fields.
func describeInput(v InputValue, present bool) any {
	if !present {
		return nil
	}
	if conn, ok := v.Connection(); ok {
		return fmt.Sprintf("connection(%s:%d)", conn.SourceID, conn.Port)
	}
	lit, _ := v.Literal()
	return lit
}
