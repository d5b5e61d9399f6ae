package taxonomy

import "sync/atomic"

// Holder publishes the current taxonomy to concurrent readers.
// Each pipeline run takes one snapshot with Load and uses it throughout,
// so a reload never splits a run across two alias tables.
type Holder struct {
	current atomic.Pointer[Taxonomy]
}

// NewHolder returns a Holder serving t.
func NewHolder(t *Taxonomy) *Holder {
	h := &Holder{}
	h.current.Store(t)
	return h
}

// Load returns the taxonomy currently in effect.
func (h *Holder) Load() *Taxonomy {
	return h.current.Load()
}

// Swap installs t and returns the previous taxonomy.
func (h *Holder) Swap(t *Taxonomy) *Taxonomy {
	return h.current.Swap(t)
}
