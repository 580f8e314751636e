// Package matcher ranks advocates against free-text queries by cosine
// similarity of their embeddings.
package matcher

import (
	"fmt"

	"github.com/perbu/advomatch/pkg/advocate"
)

// State is the lifecycle of an Index.
type State int32

const (
	Uninitialized State = iota
	Initializing
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Entry pairs an advocate with the embedding of its description.
type Entry struct {
	Advocate  advocate.Advocate
	Embedding []float32
}

// Result is a scored search hit.
type Result struct {
	Advocate advocate.Advocate
	Score    float64
}

// ContractViolation is the panic value raised when vectors of different
// dimensions are compared. It means the index and the query were embedded
// by different models, which no caller can recover from.
type ContractViolation struct {
	A, B int
}

func (c *ContractViolation) Error() string {
	return fmt.Sprintf("matcher: vector dimension mismatch: %d != %d", c.A, c.B)
}
