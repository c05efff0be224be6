package memkv

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/anthanhphan/go-object-store/internal/port"
	"github.com/stretchr/testify/assert"
)

func TestAdapter_ScalarRoundTrip(t *testing.T) {
	a := New()
	ctx := context.Background()

	assert.NoError(t, a.Set(ctx, "text-key", "hello"))
	got, err := a.Get(ctx, "text-key")
	assert.NoError(t, err)
	assert.Equal(t, "hello", got)

	payload := []byte{0x00, 0xff, 0x10}
	assert.NoError(t, a.SetBinary(ctx, "bin-key", payload))
	gotBin, err := a.GetBinary(ctx, "bin-key")
	assert.NoError(t, err)
	assert.Equal(t, payload, gotBin)

	// Stored copy is isolated from caller mutation.
	payload[0] = 0x42
	gotBin2, _ := a.GetBinary(ctx, "bin-key")
	assert.Equal(t, byte(0x00), gotBin2[0])
}

func TestAdapter_NotFound(t *testing.T) {
	a := New()
	ctx := context.Background()

	_, err := a.Get(ctx, "absent")
	assert.ErrorIs(t, err, port.ErrKeyNotFound)

	_, err = a.GetBinary(ctx, "absent")
	assert.ErrorIs(t, err, port.ErrKeyNotFound)
}

func TestAdapter_SharedKeyspace(t *testing.T) {
	a := New()
	ctx := context.Background()

	// Binary overwrite of a text key wins, and both read forms work.
	assert.NoError(t, a.Set(ctx, "k", "text"))
	assert.NoError(t, a.SetBinary(ctx, "k", []byte("binary")))

	got, err := a.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "binary", got)
}

func TestAdapter_ListAppendOrder(t *testing.T) {
	a := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.NoError(t, a.AppendToList(ctx, "names", fmt.Sprintf("file-%d", i)))
	}

	list, err := a.GetFullList(ctx, "names")
	assert.NoError(t, err)
	assert.Equal(t, []string{"file-0", "file-1", "file-2", "file-3", "file-4"}, list)

	empty, err := a.GetFullList(ctx, "no-such-list")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAdapter_ListKeys(t *testing.T) {
	a := New()
	ctx := context.Background()

	_ = a.SetBinary(ctx, "chunk:f.bin:0", []byte("a"))
	_ = a.SetBinary(ctx, "chunk:f.bin:1", []byte("b"))
	_ = a.Set(ctx, "meta:f.bin", "{}")
	_ = a.AppendToList(ctx, "uploaded_files", "f.bin")

	keys, err := a.ListKeys(ctx, "chunk:f.bin:*")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"chunk:f.bin:0", "chunk:f.bin:1"}, keys)

	all, err := a.ListKeys(ctx, "*")
	assert.NoError(t, err)
	assert.Contains(t, all, "meta:f.bin")
	assert.Contains(t, all, "uploaded_files")
}

func TestAdapter_ConcurrentWrites(t *testing.T) {
	a := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("chunk:par.bin:%d", i)
			_ = a.SetBinary(ctx, key, []byte{byte(i)})
		}(i)
	}
	wg.Wait()

	for i := 0; i < 64; i++ {
		got, err := a.GetBinary(ctx, fmt.Sprintf("chunk:par.bin:%d", i))
		assert.NoError(t, err)
		assert.Equal(t, []byte{byte(i)}, got)
	}
}

func TestAdapter_NotFoundIsSentinel(t *testing.T) {
	a := New()
	_, err := a.Get(context.Background(), "x")
	assert.True(t, errors.Is(err, port.ErrKeyNotFound))
}
