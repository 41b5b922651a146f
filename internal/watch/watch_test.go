package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/sqlbundle/internal/logging"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		op   fsnotify.Op
		file string
		want bool
	}{
		{"write sql", fsnotify.Write, "/w/a.sql", true},
		{"create ini", fsnotify.Create, "/w/settings.ini", true},
		{"remove yaml", fsnotify.Remove, "/w/settings.yaml", true},
		{"rename yml", fsnotify.Rename, "/w/settings.yml", true},
		{"write env", fsnotify.Write, "/w/prod.env", true},
		{"upper case extension", fsnotify.Write, "/w/A.SQL", true},
		{"chmod only", fsnotify.Chmod, "/w/a.sql", false},
		{"other extension", fsnotify.Write, "/w/notes.md", false},
		{"editor swap file", fsnotify.Write, "/w/.a.sql.swp", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Relevant(fsnotify.Event{Name: tt.file, Op: tt.op}))
		})
	}
}

func TestWatcher_Excluded(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "builds")
	w := New(root, []string{out}, 0, logging.NewNullLogger(), func(context.Context) {})

	assert.True(t, w.excluded(filepath.Join(out, "a.sql")))
	assert.True(t, w.excluded(out))
	assert.False(t, w.excluded(filepath.Join(root, "builds2", "a.sql")))
	assert.False(t, w.excluded(filepath.Join(root, "a.sql")))

	assert.True(t, w.skipDir(filepath.Join(root, ".git")))
	assert.False(t, w.skipDir(filepath.Join(root, "src")))
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "builds"), 0755))

	var builds atomic.Int32
	rebuilt := make(chan struct{}, 10)
	w := New(root, []string{filepath.Join(root, "builds")}, 20*time.Millisecond, logging.NewNullLogger(), func(context.Context) {
		builds.Add(1)
		rebuilt <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "builds", "general.sql"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.sql"), []byte("select 1 from rdb$database;"), 0644))

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a rebuild after writing a.sql")
	}

	cancel()
	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, builds.Load(), int32(1))
}
