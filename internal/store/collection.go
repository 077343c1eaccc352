package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Position says where Add inserts a new entity.
type Position int

const (
	Append Position = iota
	Prepend
)

// Result tells callers whether a mutation addressed by id actually happened.
type Result int

const (
	NotFound Result = iota
	Updated
	Deleted
	Unchanged
)

func (r Result) String() string {
	switch r {
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	case Unchanged:
		return "unchanged"
	default:
		return "not_found"
	}
}

// Entity is implemented by the pointer type of every record a Collection holds.
type Entity[T any] interface {
	*T
	EntityID() string
	AssignID(id string)
}

func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Collection is a named, ordered, optionally persisted list of entities.
// Mutations are visible immediately; writing them to storage is left to Flush.
type Collection[T any, P Entity[T]] struct {
	persisted
	items []T
	ids   func() string
}

// NewCollection creates an empty collection persisted under name.
func NewCollection[T any, P Entity[T]](name string, opts Options) *Collection[T, P] {
	c := &Collection[T, P]{ids: opts.IDs}
	if c.ids == nil {
		c.ids = newUUID
	}
	c.init(name, opts)
	return c
}

// Load replaces the in-memory state with the persisted blob, or with defaults when
// nothing has been stored yet. Installed defaults count as unflushed changes.
func (c *Collection[T, P]) Load(ctx context.Context, defaults []T) error {
	var stored []T
	found, err := c.read(ctx, &stored)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if found {
		c.items = nonNil(stored)
	} else {
		c.items = nonNil(slices.Clone(defaults))
		if len(defaults) > 0 {
			c.touch()
		}
	}
	c.mu.Unlock()
	return nil
}

// NewID returns a fresh id from the collection's generator.
func (c *Collection[T, P]) NewID() string {
	return c.ids()
}

// Add assigns a new id to entity, inserts it at pos and returns the stored copy.
func (c *Collection[T, P]) Add(entity T, pos Position) T {
	P(&entity).AssignID(c.ids())

	c.mu.Lock()
	if pos == Prepend {
		c.items = slices.Insert(c.items, 0, entity)
	} else {
		c.items = append(c.items, entity)
	}
	c.touch()
	c.mu.Unlock()

	c.notify()
	return entity
}

// Get returns the entity with the given id.
func (c *Collection[T, P]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Update applies fn to the entity in place. The id can not be changed.
func (c *Collection[T, P]) Update(id string, fn func(*T)) Result {
	res, _ := c.Modify(id, func(t *T) error {
		fn(t)
		return nil
	})
	return res
}

// Modify applies fn to a copy of the entity and stores the copy only if fn succeeds.
// A failing fn leaves the collection untouched and yields Unchanged with fn's error.
func (c *Collection[T, P]) Modify(id string, fn func(*T) error) (Result, error) {
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return NotFound, nil
	}
	next := c.items[i]
	if err := fn(&next); err != nil {
		c.mu.Unlock()
		return Unchanged, err
	}
	P(&next).AssignID(id)
	c.items[i] = next
	c.touch()
	c.mu.Unlock()

	c.notify()
	return Updated, nil
}

// Patch merges a partial JSON document into the entity. Fields absent from partial keep
// their values.
func (c *Collection[T, P]) Patch(id string, partial []byte) (Result, error) {
	return c.Modify(id, func(t *T) error {
		if err := json.Unmarshal(partial, t); err != nil {
			return fmt.Errorf("invalid patch for %s: %w", c.name, err)
		}
		return nil
	})
}

// Delete removes the entity with the given id.
func (c *Collection[T, P]) Delete(id string) Result {
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return NotFound
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.touch()
	c.mu.Unlock()

	c.notify()
	return Deleted
}

// Mutate replaces the whole collection with the result of fn in one step. fn receives a
// copy it may modify freely.
func (c *Collection[T, P]) Mutate(fn func(items []T) []T) {
	c.mu.Lock()
	c.items = nonNil(fn(slices.Clone(c.items)))
	c.touch()
	c.mu.Unlock()

	c.notify()
}

// List returns a snapshot of the collection in stored order.
func (c *Collection[T, P]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return nonNil(slices.Clone(c.items))
}

func (c *Collection[T, P]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Flush writes the collection to storage if it changed since the last flush.
func (c *Collection[T, P]) Flush(ctx context.Context) error {
	return c.flush(ctx, func() any { return c.items })
}

func (c *Collection[T, P]) index(id string) int {
	return slices.IndexFunc(c.items, func(t T) bool {
		return P(&t).EntityID() == id
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
