package ecs

import "github.com/kamstrup/intmap"

// Commands buffers structural changes requested while a system runs so they
// can be applied once the system returns.
type Commands struct {
	remover func(Ref)
	removes []Ref
	seen    *intmap.Map[uint64, struct{}]
	defers  []func()
}

// NewCommands creates a buffer whose queued removals are applied with remover.
func NewCommands(remover func(Ref)) *Commands {
	return &Commands{
		remover: remover,
		seen:    intmap.New[uint64, struct{}](16),
	}
}

// Remove queues a removal. Queuing the same ref twice removes it once.
func (c *Commands) Remove(ref Ref) {
	if ref.IsNil() {
		return
	}
	if _, dup := c.seen.Get(ref.Key()); dup {
		return
	}
	c.seen.Put(ref.Key(), struct{}{})
	c.removes = append(c.removes, ref)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.removes) + len(c.defers)
}

// Flush applies removals, then deferred functions, and resets the buffer.
// Work queued while flushing is applied before Flush returns.
func (c *Commands) Flush() {
	for len(c.removes) > 0 || len(c.defers) > 0 {
		removes, defers := c.removes, c.defers
		c.removes, c.defers = nil, nil
		c.seen.Clear()

		for _, ref := range removes {
			if c.remover != nil {
				c.remover(ref)
			}
		}
		for _, fn := range defers {
			fn()
		}
	}
}
