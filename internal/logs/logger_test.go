package logs

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	t.Run("LevelFiltering", func(t *testing.T) {
		logger := NewLogger(10, INFO, nil)
		logger.Debug("should not be logged")
		logger.Info("should be logged")
		logger.Warn("should be logged")
		logger.Error("should be logged")

		entries := logger.GetLast(10)
		assert.Len(t, entries, 3, "Logger should have ignored DEBUG but kept INFO, WARN, and ERROR")
		assert.Equal(t, INFO, entries[0].Level)
		assert.Equal(t, WARN, entries[1].Level)
		assert.Equal(t, ERROR, entries[2].Level)
	})

	t.Run("RingBufferBehavior", func(t *testing.T) {
		logger := NewLogger(2, DEBUG, nil)

		logger.Info("first")
		logger.Info("second")
		logger.Info("third")

		entries := logger.GetLast(10)
		assert.Len(t, entries, 2, "Logger should only keep maxSize entries")
		assert.Equal(t, "second", entries[0].Message)
		assert.Equal(t, "third", entries[1].Message)
	})

	t.Run("ConcurrentLogging", func(t *testing.T) {
		logger := NewLogger(100, DEBUG, nil)
		var wg sync.WaitGroup
		numLogs := 50

		for i := 0; i < numLogs; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				logger.Info("concurrent log", zap.Int("n", i))
			}(i)
		}
		wg.Wait()

		assert.Len(t, logger.GetLast(100), numLogs)
	})

	t.Run("GetLastBoundaries", func(t *testing.T) {
		logger := NewLogger(10, DEBUG, nil)
		for i := 1; i <= 3; i++ {
			logger.Info("msg" + strconv.Itoa(i))
		}

		assert.Len(t, logger.GetLast(10), 3)
		assert.Len(t, logger.GetLast(3), 3)
		assert.Empty(t, logger.GetLast(-1))

		lastTwo := logger.GetLast(2)
		require.Len(t, lastTwo, 2)
		assert.Equal(t, "msg2", lastTwo[0].Message)
		assert.Equal(t, "msg3", lastTwo[1].Message)
	})

	t.Run("DeepCopyProtection", func(t *testing.T) {
		logger := NewLogger(10, DEBUG, nil)
		logger.Info("original message")

		entries := logger.GetLast(1)
		entries[0].Message = "modified message"

		assert.Equal(t, "original message", logger.GetLast(1)[0].Message)
	})

	t.Run("FieldsAreRecorded", func(t *testing.T) {
		logger := NewLogger(10, DEBUG, nil)
		logger.Warn("bad request", zap.String("path", "/v1/weekly"), zap.Int("status", 400))

		entry := logger.GetLast(1)[0]
		assert.Equal(t, "/v1/weekly", entry.Fields["path"])
		assert.Equal(t, int64(400), entry.Fields["status"])
	})

	t.Run("ZeroCapacityKeepsNothing", func(t *testing.T) {
		logger := NewLogger(0, DEBUG, nil)
		logger.Info("dropped")
		assert.Empty(t, logger.GetLast(10))
	})
}

func TestLogger_ForwardsToZap(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := NewLogger(10, INFO, zap.New(core))

	logger.Debug("filtered")
	logger.Error("export failed", zap.String("reason", "boom"))

	require.Equal(t, 1, observed.Len())
	got := observed.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, got.Level)
	assert.Equal(t, "export failed", got.Message)
	assert.Equal(t, "boom", got.ContextMap()["reason"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel(" Warn "))
	assert.Equal(t, ERROR, ParseLevel("ERROR"))
	assert.Equal(t, INFO, ParseLevel("verbose"))
}

func TestNewZap(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		z, err := NewZap(DEBUG, format, "bp-advisor")
		require.NoError(t, err)
		assert.True(t, z.Core().Enabled(zapcore.DebugLevel))
	}

	z, err := NewZap(WARN, "json", "")
	require.NoError(t, err)
	assert.False(t, z.Core().Enabled(zapcore.InfoLevel))
}
