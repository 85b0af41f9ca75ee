package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCallsBackAfterWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.stl")
	require.NoError(t, os.WriteFile(file, []byte("solid a\nendsolid a\n"), 0o644))

	fw, err := New(20*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 4)
	require.NoError(t, fw.Watch(file, func(path string) { changed <- path }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Run(ctx)

	require.NoError(t, os.WriteFile(file, []byte("solid b\nendsolid b\n"), 0o644))

	select {
	case path := <-changed:
		abs, _ := filepath.Abs(file)
		assert.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.stl")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	fw, err := New(10*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 4)
	require.NoError(t, fw.Watch(file, func(path string) { changed <- path }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case path := <-changed:
		t.Fatalf("unexpected callback for %s", path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := New(time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch(filepath.Join(t.TempDir(), "missing", "scene.stl"), func(string) {})
	assert.Error(t, err)
}
