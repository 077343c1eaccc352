package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"local-market-backend/internal/kv"
)

// SchemaVersion is the shape version written into every persisted envelope.
const SchemaVersion = 1

// ErrUnsupportedVersion is returned by Load when the stored blob was written by a newer build.
var ErrUnsupportedVersion = errors.New("store: persisted blob has an unsupported version")

// Scheduler is told that a named store has unflushed changes. Implementations must not block.
type Scheduler interface {
	Schedule(name string)
}

// Flushable is a store whose in-memory state can be written back to storage.
type Flushable interface {
	Name() string
	Dirty() bool
	Flush(ctx context.Context) error
}

// Options wires a store to its storage and background flusher. Both are optional:
// a store without storage is purely in-memory.
type Options struct {
	Storage   kv.Storage
	Scheduler Scheduler
	// IDs overrides the id generator, mainly for tests.
	IDs func() string
}

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// persisted is the shared persistence state of every store kind.
// rev is bumped under mu on every mutation; flushed is the last rev written to storage.
type persisted struct {
	name      string
	storage   kv.Storage
	scheduler Scheduler

	mu      sync.RWMutex
	flushMu sync.Mutex
	rev     uint64
	flushed atomic.Uint64
}

func (p *persisted) init(name string, opts Options) {
	p.name = name
	p.storage = opts.Storage
	p.scheduler = opts.Scheduler
}

// Name is the key the store is persisted under.
func (p *persisted) Name() string {
	return p.name
}

// Dirty reports whether the store holds changes that have not been flushed yet.
func (p *persisted) Dirty() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rev != p.flushed.Load()
}

// touch must be called with mu held for writing.
func (p *persisted) touch() {
	p.rev++
}

func (p *persisted) notify() {
	if p.scheduler != nil && p.storage != nil {
		p.scheduler.Schedule(p.name)
	}
}

// read loads the blob into dst. It returns false when nothing was stored yet.
func (p *persisted) read(ctx context.Context, dst any) (bool, error) {
	if p.storage == nil {
		return false, nil
	}
	raw, err := p.storage.Get(ctx, p.name)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", p.name, err)
	}

	data, err := unwrap(raw)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", p.name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", p.name, err)
	}
	return true, nil
}

// unwrap strips the version envelope. Blobs written before the envelope existed are
// accepted as version 0.
func unwrap(raw []byte) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err == nil {
		_, hasVersion := fields["version"]
		_, hasData := fields["data"]
		if hasVersion && hasData && len(fields) == 2 {
			var env envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return nil, err
			}
			if env.Version > SchemaVersion {
				return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
			}
			return env.Data, nil
		}
	}
	return raw, nil
}

// flush writes the value returned by snapshot when the store is dirty. snapshot runs with
// mu held for reading.
func (p *persisted) flush(ctx context.Context, snapshot func() any) error {
	if p.storage == nil {
		return nil
	}
	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	p.mu.RLock()
	rev := p.rev
	if rev == p.flushed.Load() {
		p.mu.RUnlock()
		return nil
	}
	data, err := json.Marshal(snapshot())
	p.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", p.name, err)
	}

	blob, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", p.name, err)
	}
	if err := p.storage.Set(ctx, p.name, blob); err != nil {
		return err
	}
	p.flushed.Store(rev)
	return nil
}
