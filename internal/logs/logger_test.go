package logs

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("LevelFiltering", func(t *testing.T) {
		logger := NewLogger(10, INFO)
		// Minimum level is INFO
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
		// max size is 2 so adding a 3rd entry shall push out the first entry (FIFO)
		logger := NewLogger(2, DEBUG)

		logger.Info("first")
		logger.Info("second")
		logger.Info("third")

		entries := logger.GetLast(10)
		assert.Len(t, entries, 2, "Logger should only keep maxSize entries")
		assert.Equal(t, "second", entries[0].Message)
		assert.Equal(t, "third", entries[1].Message)
	})

	t.Run("ConcurrentLogging", func(t *testing.T) {
		//50 different goroutines logging simultaneously
		logger := NewLogger(100, DEBUG)
		var wg sync.WaitGroup
		numLogs := 50

		for i := 0; i < numLogs; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				logger.Info("concurrent log " + strconv.Itoa(i))
			}(i)
		}
		wg.Wait()

		entries := logger.GetLast(100)
		assert.Len(t, entries, numLogs, "Logger should have all concurrent log entries")
	})

	t.Run("GetLastBoundaries", func(t *testing.T) {
		logger := NewLogger(10, DEBUG)
		logger.Info("msg1")
		logger.Info("msg2")
		logger.Info("msg3")

		assert.Len(t, logger.GetLast(10), 3)
		assert.Len(t, logger.GetLast(3), 3)
		assert.Empty(t, logger.GetLast(0))
		assert.Empty(t, logger.GetLast(-1))

		lastTwo := logger.GetLast(2)
		assert.Len(t, lastTwo, 2)
		assert.Equal(t, "msg2", lastTwo[0].Message)
		assert.Equal(t, "msg3", lastTwo[1].Message)
	})

	t.Run("DeepCopyProtection", func(t *testing.T) {
		logger := NewLogger(10, DEBUG)
		logger.Info("original message")

		entries := logger.GetLast(1)
		entries[0].Message = "modified message"

		entriesAfterModification := logger.GetLast(1)
		assert.Equal(t, "original message", entriesAfterModification[0].Message, "Modifying retrieved entries should not affect internal log storage")
	})

	t.Run("FormattedVariants", func(t *testing.T) {
		logger := NewLogger(10, DEBUG)
		logger.Debugf("d %d", 1)
		logger.Infof("i %s", "two")
		logger.Warnf("w %v", 3.5)
		logger.Errorf("e %q", "x")

		entries := logger.GetLast(4)
		require.Len(t, entries, 4)
		assert.Equal(t, "d 1", entries[0].Message)
		assert.Equal(t, "i two", entries[1].Message)
		assert.Equal(t, "w 3.5", entries[2].Message)
		assert.Equal(t, `e "x"`, entries[3].Message)
	})

	t.Run("ChildSharesBuffer", func(t *testing.T) {
		logger := NewLogger(10, INFO)
		child := logger.With("api")

		logger.Info("from root")
		child.Info("from child")
		child.Debug("filtered like the parent")

		entries := logger.GetLast(10)
		require.Len(t, entries, 2)
		assert.Equal(t, "", entries[0].Component)
		assert.Equal(t, "api", entries[1].Component)
		assert.Equal(t, entries, child.GetLast(10))
	})

	t.Run("OutputMirror", func(t *testing.T) {
		var out bytes.Buffer
		logger := NewLogger(10, INFO)
		logger.SetOutput(&out)

		logger.With("server").Warn("listening")
		logger.Debug("dropped")

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "WARN")
		assert.Contains(t, lines[0], "[server] listening")

		logger.SetOutput(nil)
		logger.Info("quiet")
		assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 1)
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		logger := NewLogger(0, DEBUG)
		assert.NotPanics(t, func() { logger.Info("nowhere to go") })
		assert.Empty(t, logger.GetLast(10))
	})
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, WARN, lvl)

	lvl, err = ParseLevel(" Debug ")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
