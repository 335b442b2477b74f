package ecs

import (
	"runtime"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// Collector maintains the live set of entities matching a Signature. It seeds
// itself with one scan of the store and afterwards changes only in response to
// scene events, so a system reading it pays O(matching entities) per tick.
//
// The scene holds the collector only weakly. Call Close when done; a collector
// that is dropped without Close has its subscription cancelled once it is
// garbage collected.
type Collector struct {
	scene     *Scene
	signature Signature
	sub       *Subscription

	dense []EntityId
	index *intmap.Map[EntityId, int]
}

// NewCollector creates a collector for the given kinds. An empty signature
// panics.
func NewCollector(scene *Scene, kinds ...Kind) *Collector {
	signature := NewSignature(kinds...)
	if signature.Len() == 0 {
		panic("collector signature must contain at least one kind")
	}

	c := &Collector{
		scene:     scene,
		signature: signature,
		index:     intmap.New[EntityId, int](64),
	}
	c.seed()

	ref := weak.Make(c)
	c.sub = scene.Subscribe(func(evt Event) {
		if live := ref.Value(); live != nil {
			live.handle(evt)
		}
	})
	runtime.AddCleanup(c, func(sub *Subscription) { sub.Close() }, c.sub)

	scene.logger.Debug("collector created",
		zap.String("signature", signature.Format(scene.Registry())),
		zap.Uint64("signature_hash", signature.Hash()),
		zap.Int("seeded", len(c.dense)),
	)
	return c
}

// seed scans the smallest per-kind set among the signature's kinds.
func (c *Collector) seed() {
	kinds := c.signature.kinds
	smallest := kinds[0]
	for _, k := range kinds[1:] {
		if c.scene.Count(k) < c.scene.Count(smallest) {
			smallest = k
		}
	}
	for _, id := range c.scene.EntitiesWith(smallest) {
		if c.matches(id) {
			c.insert(id)
		}
	}
}

func (c *Collector) handle(evt Event) {
	switch evt.Type {
	case ComponentAdded:
		if c.signature.Contains(evt.Kind) && c.matches(evt.Entity) {
			c.insert(evt.Entity)
		}
	case ComponentRemoved:
		if c.signature.Contains(evt.Kind) {
			c.remove(evt.Entity)
		}
	case EntityRemoved:
		c.remove(evt.Entity)
	}
}

func (c *Collector) matches(id EntityId) bool {
	for _, k := range c.signature.kinds {
		if !c.scene.HasComponent(id, k) {
			return false
		}
	}
	return true
}

func (c *Collector) insert(id EntityId) {
	if c.index.Has(id) {
		return
	}
	c.index.Put(id, len(c.dense))
	c.dense = append(c.dense, id)
}

func (c *Collector) remove(id EntityId) {
	idx, ok := c.index.Get(id)
	if !ok {
		return
	}
	last := len(c.dense) - 1
	moved := c.dense[last]
	c.dense[idx] = moved
	c.index.Put(moved, idx)
	c.dense = c.dense[:last]
	c.index.Del(id)
}

// Signature returns the collector's signature.
func (c *Collector) Signature() Signature {
	return c.signature
}

// Entities returns a snapshot of the matching entities. The order is
// unspecified but does not change unless the scene is mutated.
func (c *Collector) Entities() []EntityId {
	return slices.Clone(c.dense)
}

// AppendEntities appends the matching entities to dst and returns it. Systems
// use it to snapshot into a reused buffer before acting on components.
func (c *Collector) AppendEntities(dst []EntityId) []EntityId {
	return append(dst, c.dense...)
}

// Len returns the number of matching entities.
func (c *Collector) Len() int {
	return len(c.dense)
}

// Contains reports whether id currently matches.
func (c *Collector) Contains(id EntityId) bool {
	return c.index.Has(id)
}

// Close unsubscribes the collector from its scene. The cache is no longer
// maintained afterwards.
func (c *Collector) Close() error {
	if c.sub.Active() {
		c.sub.Close()
		c.scene.logger.Debug("collector closed", zap.Uint64("signature_hash", c.signature.Hash()))
	}
	return nil
}
