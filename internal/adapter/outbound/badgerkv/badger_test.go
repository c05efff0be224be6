package badgerkv

import (
	"context"
	"fmt"
	"testing"

	"github.com/anthanhphan/go-object-store/internal/config"
	"github.com/anthanhphan/go-object-store/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := New(config.BadgerConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestAdapter_ScalarRoundTrip(t *testing.T) {
	a := newTestAdapter(t)
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
}

func TestAdapter_NotFound(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	_, err := a.Get(ctx, "absent")
	assert.ErrorIs(t, err, port.ErrKeyNotFound)

	_, err = a.GetBinary(ctx, "absent")
	assert.ErrorIs(t, err, port.ErrKeyNotFound)
}

func TestAdapter_ListAppendOrder(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		assert.NoError(t, a.AppendToList(ctx, "names", fmt.Sprintf("file-%d", i)))
	}

	list, err := a.GetFullList(ctx, "names")
	assert.NoError(t, err)
	require.Len(t, list, 12)
	for i, got := range list {
		assert.Equal(t, fmt.Sprintf("file-%d", i), got)
	}

	empty, err := a.GetFullList(ctx, "no-such-list")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAdapter_ListKeysSurfacesListNames(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	_ = a.SetBinary(ctx, "chunk:f.bin:0", []byte("a"))
	_ = a.Set(ctx, "meta:f.bin", "{}")
	_ = a.AppendToList(ctx, "uploaded_files", "f.bin")
	_ = a.AppendToList(ctx, "uploaded_files", "g.bin")

	// A list appears once under its logical name; its element keys are
	// never surfaced.
	keys, err := a.ListKeys(ctx, "*")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"chunk:f.bin:0", "meta:f.bin", "uploaded_files"}, keys)

	chunkKeys, err := a.ListKeys(ctx, "chunk:*")
	assert.NoError(t, err)
	assert.Equal(t, []string{"chunk:f.bin:0"}, chunkKeys)
}

func TestAdapter_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a, err := New(config.BadgerConfig{DataDir: dir})
	require.NoError(t, err)
	require.NoError(t, a.SetBinary(ctx, "chunk:p.bin:0", []byte("durable")))
	require.NoError(t, a.AppendToList(ctx, "uploaded_files", "p.bin"))
	require.NoError(t, a.Close())

	reopened, err := New(config.BadgerConfig{DataDir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetBinary(ctx, "chunk:p.bin:0")
	assert.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)

	list, err := reopened.GetFullList(ctx, "uploaded_files")
	assert.NoError(t, err)
	assert.Equal(t, []string{"p.bin"}, list)
}
