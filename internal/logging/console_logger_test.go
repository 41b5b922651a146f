package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_Verbose_WhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, true, true)
	logger.Verbose("test message: %s", "value")

	output := buf.String()
	assert.Contains(t, output, "DBG")
	assert.Contains(t, output, "test message: value")
}

func TestConsoleLogger_Verbose_WhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, false, true)
	logger.Verbose("test message: %s", "value")

	assert.Empty(t, buf.String())
}

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l *ConsoleLogger)
		level string
		text  string
	}{
		{"info", func(l *ConsoleLogger) { l.Info("info message: %s", "value") }, "INF", "info message: value"},
		{"warn", func(l *ConsoleLogger) { l.Warn("rule %q is not defined", "x") }, "WRN", `rule "x" is not defined`},
		{"error", func(l *ConsoleLogger) { l.Error("error message") }, "ERR", "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewConsoleLoggerTo(&buf, false, true))
			output := buf.String()
			assert.Contains(t, output, tt.level)
			assert.Contains(t, output, tt.text)
		})
	}
}

func TestConsoleLogger_PercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, false, true)
	logger.Info("100% done")

	assert.Contains(t, buf.String(), "100% done")
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, true, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 30)
	for i, line := range lines {
		if !strings.Contains(line, "message") && !strings.Contains(line, "verbose") && !strings.Contains(line, "error") {
			t.Errorf("Line %d appears corrupted: %q", i, line)
		}
	}
}

func TestNullLogger_ConcurrentSafety(t *testing.T) {
	logger := NewNullLogger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Warn("warn %d", id)
			logger.Error("error %d", id)
		}(i)
	}

	// Should complete without panic
	wg.Wait()
}

func TestCaptureLogger(t *testing.T) {
	logger := NewCaptureLogger()
	logger.Info("started %s", "a")
	logger.Warn("rule %q is not defined", "b")
	logger.Warn("plain warning")
	logger.Error("failed")

	assert.Len(t, logger.Entries(), 4)
	assert.Equal(t, []string{`rule "b" is not defined`, "plain warning"}, logger.Messages(LevelWarn))
	assert.True(t, logger.Contains(LevelError, "fail"))
	assert.False(t, logger.Contains(LevelInfo, "fail"))
}
