package store

import (
	"context"
	"slices"
)

// IDSet is a persisted, insertion-ordered set of ids, e.g. the user's saved fixers.
type IDSet struct {
	persisted
	ids []string
}

func NewIDSet(name string, opts Options) *IDSet {
	s := &IDSet{}
	s.init(name, opts)
	return s
}

func (s *IDSet) Load(ctx context.Context, defaults []string) error {
	var stored []string
	found, err := s.read(ctx, &stored)
	if err != nil {
		return err
	}
	if !found {
		stored = defaults
	}

	s.mu.Lock()
	s.ids = s.ids[:0]
	for _, id := range stored {
		if id != "" && !slices.Contains(s.ids, id) {
			s.ids = append(s.ids, id)
		}
	}
	if !found && len(s.ids) > 0 {
		s.touch()
	}
	s.mu.Unlock()
	return nil
}

func (s *IDSet) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// Add inserts id at the end. Adding an id that is already present is Unchanged.
func (s *IDSet) Add(id string) Result {
	s.mu.Lock()
	if slices.Contains(s.ids, id) {
		s.mu.Unlock()
		return Unchanged
	}
	s.ids = append(s.ids, id)
	s.touch()
	s.mu.Unlock()

	s.notify()
	return Updated
}

func (s *IDSet) Remove(id string) Result {
	s.mu.Lock()
	i := slices.Index(s.ids, id)
	if i < 0 {
		s.mu.Unlock()
		return NotFound
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	s.touch()
	s.mu.Unlock()

	s.notify()
	return Deleted
}

// Toggle adds id if it is missing and removes it otherwise. It reports whether id is
// in the set afterwards.
func (s *IDSet) Toggle(id string) bool {
	s.mu.Lock()
	saved := true
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		saved = false
	} else {
		s.ids = append(s.ids, id)
	}
	s.touch()
	s.mu.Unlock()

	s.notify()
	return saved
}

func (s *IDSet) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.ids...)
}

func (s *IDSet) Flush(ctx context.Context) error {
	return s.flush(ctx, func() any { return nonNil(s.ids) })
}
