// Package memkv implements the key/value storage capability with
// in-process maps. It backs tests and the single-node "memory" mode; the
// map is striped by key hash so concurrent chunk writes don't contend on
// one lock.
package memkv

import (
	"context"
	"path"
	"sync"

	"github.com/anthanhphan/go-object-store/internal/port"
	"github.com/spaolacci/murmur3"
)

const stripeCount = 16

// entry is one stored value. Text and binary share the keyspace and are
// distinguished by stored type.
type entry struct {
	binary bool
	str    string
	bin    []byte
}

type stripe struct {
	mu     sync.RWMutex
	values map[string]entry
	lists  map[string][]string
}

// Adapter is an in-process port.KeyValueStore.
type Adapter struct {
	stripes [stripeCount]*stripe
}

var _ port.KeyValueStore = (*Adapter)(nil)

// New creates an empty in-memory store.
func New() *Adapter {
	a := &Adapter{}
	for i := range a.stripes {
		a.stripes[i] = &stripe{
			values: make(map[string]entry),
			lists:  make(map[string][]string),
		}
	}
	return a
}

// stripeFor hashes the key to its lock stripe.
func (a *Adapter) stripeFor(key string) *stripe {
	return a.stripes[murmur3.Sum32([]byte(key))%stripeCount]
}

func (a *Adapter) Get(_ context.Context, key string) (string, error) {
	st := a.stripeFor(key)
	st.mu.RLock()
	defer st.mu.RUnlock()

	e, ok := st.values[key]
	if !ok {
		return "", port.ErrKeyNotFound
	}
	if e.binary {
		return string(e.bin), nil
	}
	return e.str, nil
}

func (a *Adapter) GetBinary(_ context.Context, key string) ([]byte, error) {
	st := a.stripeFor(key)
	st.mu.RLock()
	defer st.mu.RUnlock()

	e, ok := st.values[key]
	if !ok {
		return nil, port.ErrKeyNotFound
	}
	if !e.binary {
		return []byte(e.str), nil
	}
	out := make([]byte, len(e.bin))
	copy(out, e.bin)
	return out, nil
}

func (a *Adapter) Set(_ context.Context, key string, value string) error {
	st := a.stripeFor(key)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.values[key] = entry{str: value}
	return nil
}

func (a *Adapter) SetBinary(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	st := a.stripeFor(key)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.values[key] = entry{binary: true, bin: stored}
	return nil
}

func (a *Adapter) AppendToList(_ context.Context, listKey string, value string) error {
	st := a.stripeFor(listKey)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.lists[listKey] = append(st.lists[listKey], value)
	return nil
}

func (a *Adapter) GetFullList(_ context.Context, listKey string) ([]string, error) {
	st := a.stripeFor(listKey)
	st.mu.RLock()
	defer st.mu.RUnlock()

	list := st.lists[listKey]
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

// ListKeys matches scalar and list keys against a glob-style pattern.
func (a *Adapter) ListKeys(_ context.Context, pattern string) ([]string, error) {
	var keys []string
	for _, st := range a.stripes {
		st.mu.RLock()
		for key := range st.values {
			if ok, _ := path.Match(pattern, key); ok {
				keys = append(keys, key)
			}
		}
		for key := range st.lists {
			if ok, _ := path.Match(pattern, key); ok {
				keys = append(keys, key)
			}
		}
		st.mu.RUnlock()
	}
	return keys, nil
}
