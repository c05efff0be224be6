package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/anthanhphan/go-object-store/internal/port"
	"github.com/anthanhphan/go-object-store/pkg/checksum"
)

// Concrete end-to-end scenario: a 1024-byte pseudo-random buffer split
// into 256-byte chunks must produce exactly four chunk keys and survive a
// byte- and digest-identical round trip.
func TestStoreService_ConcreteScenario(t *testing.T) {
	svc, backend := newRoundTripService()
	ctx := context.Background()

	content := randomBytes(t, 1024)
	wantDigest := checksum.SHA1Hex(content)

	meta, err := svc.Upload(ctx, "test-buffer-file.txt", bytes.NewReader(content), 256, 4)
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if meta.TotalChunks != 4 {
		t.Fatalf("TotalChunks = %d, want 4", meta.TotalChunks)
	}
	if meta.Checksum != wantDigest {
		t.Fatalf("stored checksum %s, want %s", meta.Checksum, wantDigest)
	}

	// Chunk index totalChunks must be absent.
	for i := 0; i < 4; i++ {
		if _, err := backend.GetBinary(ctx, buildChunkKey("test-buffer-file.txt", i)); err != nil {
			t.Fatalf("chunk %d missing: %v", i, err)
		}
	}
	if _, err := backend.GetBinary(ctx, buildChunkKey("test-buffer-file.txt", 4)); !errors.Is(err, port.ErrKeyNotFound) {
		t.Fatalf("chunk index 4 should be absent, got %v", err)
	}

	got, err := svc.Download(ctx, "test-buffer-file.txt", 4)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatal("downloaded bytes differ from original")
	}
	if checksum.SHA1Hex(got) != wantDigest {
		t.Fatal("downloaded digest differs from original")
	}
}

func TestStoreService_ListFiles(t *testing.T) {
	svc, _ := newRoundTripService()
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := svc.Upload(ctx, name, bytes.NewReader([]byte("content of "+name)), 8, 1); err != nil {
			t.Fatalf("Upload(%s) error: %v", name, err)
		}
	}

	files, err := svc.ListFiles(ctx)
	if err != nil {
		t.Fatalf("ListFiles() error: %v", err)
	}

	seen := map[string]bool{}
	for _, name := range files {
		seen[name] = true
	}
	for _, want := range []string{"a.txt", "b.txt", "c.txt"} {
		if !seen[want] {
			t.Errorf("ListFiles() missing %q, got %v", want, files)
		}
	}
}

func TestStoreService_GetMetadata(t *testing.T) {
	svc, _ := newRoundTripService()
	ctx := context.Background()

	content := []byte("metadata subject")
	if _, err := svc.Upload(ctx, "meta.txt", bytes.NewReader(content), 8, 1); err != nil {
		t.Fatalf("Upload() error: %v", err)
	}

	meta, err := svc.GetMetadata(ctx, "meta.txt")
	if err != nil {
		t.Fatalf("GetMetadata() error: %v", err)
	}
	if meta.FileName != "meta.txt" || meta.TotalSize != int64(len(content)) {
		t.Errorf("unexpected metadata %+v", meta)
	}

	if _, err := svc.GetMetadata(ctx, "nope.txt"); !errors.Is(err, port.ErrFileNotFound) {
		t.Errorf("GetMetadata(missing) error = %v, want ErrFileNotFound", err)
	}
}

// Re-uploading the same name overwrites: last writer wins.
func TestStoreService_ReuploadOverwrites(t *testing.T) {
	svc, _ := newRoundTripService()
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "twice.bin", bytes.NewReader(bytes.Repeat([]byte("a"), 600)), 256, 1); err != nil {
		t.Fatalf("first Upload() error: %v", err)
	}
	second := bytes.Repeat([]byte("b"), 100)
	if _, err := svc.Upload(ctx, "twice.bin", bytes.NewReader(second), 256, 1); err != nil {
		t.Fatalf("second Upload() error: %v", err)
	}

	got, err := svc.Download(ctx, "twice.bin", 1)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if !bytes.Equal(got, second) {
		t.Fatal("download returned stale content after re-upload")
	}
}

// A shrinking re-upload must not leave the previous upload's chunks at
// indexes at or above the new chunk count.
func TestStoreService_ShrinkingReuploadTrimsStaleChunks(t *testing.T) {
	svc, backend := newRoundTripService()
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "shrink.bin", bytes.NewReader(randomBytes(t, 1000)), 256, 1); err != nil {
		t.Fatalf("first Upload() error: %v", err)
	}

	second := bytes.Repeat([]byte("z"), 100)
	meta, err := svc.Upload(ctx, "shrink.bin", bytes.NewReader(second), 256, 1)
	if err != nil {
		t.Fatalf("second Upload() error: %v", err)
	}
	if meta.TotalChunks != 1 {
		t.Fatalf("TotalChunks = %d, want 1", meta.TotalChunks)
	}

	// Indexes 1..3 held the first upload's payloads; they must now read
	// back absent or empty.
	for i := 1; i < 4; i++ {
		data, getErr := backend.GetBinary(ctx, buildChunkKey("shrink.bin", i))
		if getErr == nil && len(data) > 0 {
			t.Errorf("chunk index %d still holds %d bytes after shrinking re-upload", i, len(data))
		}
	}

	got, err := svc.Download(ctx, "shrink.bin", 1)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if !bytes.Equal(got, second) {
		t.Fatal("download returned stale content after shrinking re-upload")
	}
}
