package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestLogger_CapturesOutput(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.Info("fetched work items", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "fetched work items")
	assert.Contains(t, out, "count=3")
}

func TestTestLogger_DebugEnabled(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.Debug("query issued", "query", "title:HMI")

	assert.Contains(t, buf.String(), "query issued")
}

func TestNew_NonDebugSuppressesInfo(t *testing.T) {
	logger := New(false, "")

	// Warn-level logger drops Info; nothing observable to assert beyond
	// it not panicking with a nil file writer.
	logger.Info("ignored")
	logger.Warn("kept")
	assert.False(t, logger.debug)
}
