package core

// EntityID is a unique identifier for game entities
type EntityID uint64

// IDAllocator hands out monotonic entity ids for one session.
// Units, buildings and resource nodes share the id space so a bare id
// names at most one entity.
type IDAllocator struct {
	last EntityID
}

// Next returns the next unused id. Zero is never returned.
func (a *IDAllocator) Next() EntityID {
	a.last++
	return a.last
}

// Last returns the most recently issued id.
func (a *IDAllocator) Last() EntityID {
	return a.last
}
