package ecs

// Commands provides a buffer for deferred scene mutations that are applied at
// the end of a frame. Systems iterating a collector snapshot queue structural
// changes here instead of mutating the scene mid-iteration.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []Component
}

type addComponentCommand struct {
	entity    EntityId
	component Component
}

type removeComponentCommand struct {
	entity EntityId
	kind   Kind
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...Component) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// RemoveEntity queues an entity removal.
func (c *Commands) RemoveEntity(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component Component) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, kind Kind) {
	c.removes = append(c.removes, removeComponentCommand{
		entity: entity,
		kind:   kind,
	})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all commands to the scene in the order removals, detaches,
// attaches, spawns, defers, then resets the buffer.
func (c *Commands) Flush(scene *Scene) {
	deletedEntities := make(map[EntityId]bool, len(c.deletes))

	for _, id := range c.deletes {
		scene.RemoveEntity(id)
		deletedEntities[id] = true
	}

	for _, cmd := range c.removes {
		if !deletedEntities[cmd.entity] {
			scene.RemoveComponent(cmd.entity, cmd.kind)
		}
	}

	for _, cmd := range c.adds {
		if !deletedEntities[cmd.entity] {
			scene.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		scene.Spawn(cmd.components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
