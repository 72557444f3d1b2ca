package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Revision counts grid changes of one document. Readers on other goroutines
// (the viewer server) load it without taking the document lock.
type Revision struct {
	n atomic.Uint64
}

// Next advances the counter and returns the new value.
func (r *Revision) Next() uint64 {
	return r.n.Add(1)
}

// Load returns the current value.
func (r *Revision) Load() uint64 {
	return r.n.Load()
}

func newDocumentID() string {
	return uuid.NewString()
}
