package store

import "context"

// Singleton is a single persisted record, such as the app settings.
type Singleton[T any] struct {
	persisted
	value T
}

func NewSingleton[T any](name string, opts Options) *Singleton[T] {
	s := &Singleton[T]{}
	s.init(name, opts)
	return s
}

// Load reads the persisted value. Fields missing from an older blob keep the value
// they have in def.
func (s *Singleton[T]) Load(ctx context.Context, def T) error {
	value := def
	if _, err := s.read(ctx, &value); err != nil {
		return err
	}
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
	return nil
}

func (s *Singleton[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Update applies fn to a copy of the value and keeps the copy if fn succeeds.
func (s *Singleton[T]) Update(fn func(*T) error) (T, error) {
	s.mu.Lock()
	next := s.value
	if err := fn(&next); err != nil {
		current := s.value
		s.mu.Unlock()
		return current, err
	}
	s.value = next
	s.touch()
	s.mu.Unlock()

	s.notify()
	return next, nil
}

func (s *Singleton[T]) Flush(ctx context.Context) error {
	return s.flush(ctx, func() any { return s.value })
}
