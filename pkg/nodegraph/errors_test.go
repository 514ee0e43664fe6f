package nodegraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStructureError_Unwrap verifies errors.Is sees the sentinel
// through the typed wrapper.
func TestStructureError_Unwrap(t *testing.T) {
	err := &StructureError{Detail: "node \"1\" must be an object"}

	assert.True(t, errors.Is(err, ErrInvalidStructure))
	assert.Contains(t, err.Error(), "invalid workflow structure")
	assert.Contains(t, err.Error(), `node "1" must be an object`)

	var se *StructureError
	assert.True(t, errors.As(err, &se))
}

// TestSentinels verifies the sentinel messages stay stable; callers
// match on them with errors.Is, not string comparison, but the text
// appears in logs.
func TestSentinels(t *testing.T) {
	assert.EqualError(t, ErrMalformedJSON, "malformed JSON")
	assert.EqualError(t, ErrInvalidStructure, "invalid workflow structure")
	assert.EqualError(t, ErrDuplicateNodeID, "duplicate node id")
	assert.EqualError(t, ErrNodeNotFound, "node not found")
}
