package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{
		info:  log.New(&buf, "[INFO] ", 0),
		warn:  log.New(&buf, "[WARN] ", 0),
		error: log.New(&buf, "[ERROR] ", 0),
	}

	logger.Info("post %s published", "p-1")
	logger.Warn("image %s missing", "k")
	logger.Error("failed to delete post %d: %s", 404, "not found")

	out := buf.String()
	assert.Contains(t, out, "[INFO] post p-1 published")
	assert.Contains(t, out, "[WARN] image k missing")
	assert.Contains(t, out, "[ERROR] failed to delete post 404: not found")
}

func TestLogger_MultipleCalls(t *testing.T) {
	logger := New()

	assert.NotPanics(t, func() {
		logger.Info("Info 1")
		logger.Error("Error 1")
		logger.Warn("Warn 1")
	})
}
