package nodegraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ingestion boundary.
var (
	// ErrMalformedJSON indicates the input text could not be parsed as JSON.
	ErrMalformedJSON = errors.New("malformed JSON")

	// ErrInvalidStructure indicates parsed input does not have the
	// workflow graph shape (map of id -> {class_type, inputs}).
	ErrInvalidStructure = errors.New("invalid workflow structure")
)

// Sentinel errors for programmer-contract violations. These are the
// values wrapped by the panics raised on API misuse, so callers that
// recover can still test with errors.Is.
var (
	// ErrDuplicateNodeID indicates AddNode was given an explicit id
	// that already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrNodeNotFound indicates an operation referenced a node id that
	// does not exist in the graph.
	ErrNodeNotFound = errors.New("node not found")
)

// StructureError explains why raw input failed structural validation.
// It wraps ErrInvalidStructure for errors.Is support.
type StructureError struct {
	// Detail describes the first shape violation encountered.
	Detail string
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	return fmt.Sprintf("invalid workflow structure: %s", e.Detail)
}

// Unwrap returns ErrInvalidStructure for errors.Is support.
func (e *StructureError) Unwrap() error {
	return ErrInvalidStructure
}
