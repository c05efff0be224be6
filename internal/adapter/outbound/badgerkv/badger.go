// Package badgerkv implements the key/value storage capability on an
// embedded BadgerDB, giving the single-node deployment a persistent local
// backend behind the same contract as the Redis adapter.
package badgerkv

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/anthanhphan/go-object-store/internal/config"
	"github.com/anthanhphan/go-object-store/internal/port"
	badger "github.com/dgraph-io/badger/v3"
)

// Stored value type tags. Text and binary share the keyspace; the tag byte
// preserves which form was written.
const (
	tagText   byte = 0
	tagBinary byte = 1
)

// List elements live at "!list\x00{listKey}\x00{seq}" with a big-endian
// sequence number so prefix iteration returns them in append order.
const listPrefix = "!list\x00"

// Adapter is a BadgerDB-backed port.KeyValueStore.
type Adapter struct {
	db *badger.DB

	// listMu serializes appends; Badger transactions alone would make
	// concurrent read-increment-write appends conflict.
	listMu sync.Mutex
}

var _ port.KeyValueStore = (*Adapter)(nil)

// New opens (or creates) the Badger store in the configured directory.
func New(cfg config.BadgerConfig) (*Adapter, error) {
	opts := badger.DefaultOptions(cfg.DataDir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &Adapter{db: db}, nil
}

// Close flushes and closes the store.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) get(key string) ([]byte, error) {
	var value []byte
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, port.ErrKeyNotFound
		}
		return nil, err
	}
	if len(value) < 1 {
		return nil, fmt.Errorf("corrupt value for key %q", key)
	}
	return value, nil
}

func (a *Adapter) set(key string, tag byte, payload []byte) error {
	value := make([]byte, 1+len(payload))
	value[0] = tag
	copy(value[1:], payload)
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (a *Adapter) Get(_ context.Context, key string) (string, error) {
	value, err := a.get(key)
	if err != nil {
		return "", err
	}
	return string(value[1:]), nil
}

func (a *Adapter) GetBinary(_ context.Context, key string) ([]byte, error) {
	value, err := a.get(key)
	if err != nil {
		return nil, err
	}
	return value[1:], nil
}

func (a *Adapter) Set(_ context.Context, key string, value string) error {
	return a.set(key, tagText, []byte(value))
}

func (a *Adapter) SetBinary(_ context.Context, key string, value []byte) error {
	return a.set(key, tagBinary, value)
}

func listElementPrefix(listKey string) []byte {
	return []byte(listPrefix + listKey + "\x00")
}

func (a *Adapter) AppendToList(_ context.Context, listKey string, value string) error {
	a.listMu.Lock()
	defer a.listMu.Unlock()

	return a.db.Update(func(txn *badger.Txn) error {
		prefix := listElementPrefix(listKey)

		// Next sequence number is one past the last existing element.
		var seq uint64
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse-seek to the highest key under the prefix.
		seek := append(append([]byte{}, prefix...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
		it.Seek(seek)
		if it.ValidForPrefix(prefix) {
			last := it.Item().Key()
			seq = binary.BigEndian.Uint64(last[len(prefix):]) + 1
		}

		key := make([]byte, len(prefix)+8)
		copy(key, prefix)
		binary.BigEndian.PutUint64(key[len(prefix):], seq)
		return txn.Set(key, []byte(value))
	})
}

func (a *Adapter) GetFullList(_ context.Context, listKey string) ([]string, error) {
	var out []string
	err := a.db.View(func(txn *badger.Txn) error {
		prefix := listElementPrefix(listKey)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			out = append(out, string(value))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListKeys matches scalar and list keys against a glob-style pattern. A
// list is reported once under its logical name; its element keys are an
// implementation detail and never surfaced.
func (a *Adapter) ListKeys(_ context.Context, pattern string) ([]string, error) {
	var keys []string
	seenLists := make(map[string]bool)
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		listP := []byte(listPrefix)
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			if bytes.HasPrefix(key, listP) {
				// Element key layout: prefix + name + "\x00" + 8-byte seq.
				rest := key[len(listP):]
				if len(rest) < 9 {
					continue
				}
				name := string(rest[:len(rest)-9])
				if seenLists[name] {
					continue
				}
				seenLists[name] = true
				if ok, _ := path.Match(pattern, name); ok {
					keys = append(keys, name)
				}
				continue
			}
			if ok, _ := path.Match(pattern, string(key)); ok {
				keys = append(keys, string(it.Item().KeyCopy(nil)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
