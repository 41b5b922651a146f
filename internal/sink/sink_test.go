package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/internal/logging"
)

func newFS() *filesystem.MemoryFileSystem {
	return filesystem.NewMemoryFileSystem("/work")
}

func readFile(t *testing.T, fsys *filesystem.MemoryFileSystem, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSink_Append(t *testing.T) {
	fsys := newFS()
	s := New(fsys, "out/a.sql", Append, logging.NewNullLogger())

	require.NoError(t, s.Write("first"))
	require.NoError(t, s.Write("second"))
	assert.Equal(t, "first\nsecond\n", readFile(t, fsys, "out/a.sql"), "append streams before close")

	require.NoError(t, s.Close())
	assert.True(t, s.Written())
	assert.Equal(t, "first\nsecond\n", readFile(t, fsys, "out/a.sql"))
}

func TestSink_Prepend(t *testing.T) {
	fsys := newFS()
	s := New(fsys, "drop_a.sql", Prepend, logging.NewNullLogger())

	for _, chunk := range []string{"drop procedure p1;", "drop table t1;", "drop sequence s1;"} {
		require.NoError(t, s.Write(chunk))
	}
	require.NoError(t, s.Close())

	assert.True(t, s.Written())
	assert.Equal(t, "drop sequence s1;\ndrop table t1;\ndrop procedure p1;\n", readFile(t, fsys, "drop_a.sql"))
}

func TestSink_LazyCreate(t *testing.T) {
	for _, mode := range []Mode{Append, Prepend} {
		t.Run(mode.String(), func(t *testing.T) {
			fsys := newFS()
			New(fsys, "a.sql", mode, logging.NewNullLogger())

			_, err := fsys.Stat("a.sql")
			assert.Error(t, err, "no file before the first chunk")
		})
	}
}

func TestSink_EmptyRemovesFile(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		stale  bool
	}{
		{"no chunks", nil, false},
		{"empty string chunk", []string{""}, false},
		{"several empty chunks", []string{"", ""}, false},
		{"stale file from earlier run", nil, true},
		{"stale file and empty chunk", []string{""}, true},
	}

	for _, mode := range []Mode{Append, Prepend} {
		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				fsys := newFS()
				if tt.stale {
					fsys.AddFile("a.sql", "old content\n")
				}

				s := New(fsys, "a.sql", mode, logging.NewNullLogger())
				for _, c := range tt.chunks {
					require.NoError(t, s.Write(c))
				}
				require.NoError(t, s.Close())

				assert.False(t, s.Written())
				_, err := fsys.Stat("a.sql")
				assert.Error(t, err, "file must not exist")
			})
		}
	}
}

func TestSink_WhitespaceChunkKeepsFile(t *testing.T) {
	for _, mode := range []Mode{Append, Prepend} {
		t.Run(mode.String(), func(t *testing.T) {
			fsys := newFS()
			s := New(fsys, "a.sql", mode, logging.NewNullLogger())

			require.NoError(t, s.Write(""))
			require.NoError(t, s.Write("  "))
			require.NoError(t, s.Close())

			assert.True(t, s.Written())
			_, err := fsys.Stat("a.sql")
			assert.NoError(t, err)
		})
	}
}

func TestSink_EmptyChunkAmongData(t *testing.T) {
	fsys := newFS()
	s := New(fsys, "a.sql", Append, logging.NewNullLogger())

	require.NoError(t, s.Write(""))
	require.NoError(t, s.Write("x"))
	require.NoError(t, s.Close())

	assert.Equal(t, "\nx\n", readFile(t, fsys, "a.sql"))
}

func TestSink_WriteAfterClose(t *testing.T) {
	s := New(newFS(), "a.sql", Append, logging.NewNullLogger())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "second close is a no-op")

	err := s.Write("x")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSink_LogsWrittenFile(t *testing.T) {
	logger := logging.NewCaptureLogger()
	s := New(newFS(), "a.sql", Prepend, logger)

	require.NoError(t, s.Write("x"))
	require.NoError(t, s.Close())

	assert.True(t, logger.Contains(logging.LevelVerbose, "a.sql"))
}

func TestSink_Lines(t *testing.T) {
	fsys := newFS()
	s := New(fsys, "a.sql", Append, logging.NewNullLogger())
	assert.Equal(t, 0, s.Lines())

	require.NoError(t, s.Write("create table t1 (id integer);\n"))
	assert.Equal(t, 2, s.Lines(), "chunk line plus separator")

	require.NoError(t, s.Write("one\ntwo"))
	assert.Equal(t, 4, s.Lines())
	require.NoError(t, s.Close())
}
