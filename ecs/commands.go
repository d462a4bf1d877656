package ecs

// Commands buffers structural changes to a World so they can be requested
// from inside a running system and applied once it has finished.
type Commands[E Handle] struct {
	ops    []entityCommand[E]
	defers []deferCommand
}

// NewCommands creates an empty command buffer.
func NewCommands[E Handle]() *Commands[E] {
	return &Commands[E]{}
}

type commandKind uint8

const (
	commandAdd commandKind = iota
	commandDelete
)

type entityCommand[E Handle] struct {
	kind   commandKind
	entity E
}

type deferCommand struct {
	fn func()
}

// Add queues adding entity to the World.
func (c *Commands[E]) Add(entity E) {
	c.ops = append(c.ops, entityCommand[E]{kind: commandAdd, entity: entity})
}

// Delete queues deleting entity from the World.
func (c *Commands[E]) Delete(entity E) {
	c.ops = append(c.ops, entityCommand[E]{kind: commandDelete, entity: entity})
}

// Reindex queues a delete followed by an add of entity, so that every view
// re-tests it after its components were changed in place.
func (c *Commands[E]) Reindex(entity E) {
	c.Delete(entity)
	c.Add(entity)
}

// Defer queues a function to run after all entity changes have been applied.
func (c *Commands[E]) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Len returns the number of queued commands.
func (c *Commands[E]) Len() int {
	return len(c.ops) + len(c.defers)
}

// Flush applies queued entity changes to world in the order they were queued,
// runs deferred functions, and resets the buffer.
func (c *Commands[E]) Flush(world *World[E]) {
	for _, op := range c.ops {
		switch op.kind {
		case commandAdd:
			world.AddEntity(op.entity)
		case commandDelete:
			world.DeleteEntity(op.entity)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	clear(c.ops)
	c.ops = c.ops[:0]
	c.defers = c.defers[:0]
}
