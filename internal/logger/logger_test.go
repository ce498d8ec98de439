package logger

import (
	"bytes"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
)

func TestNewWritesLogfmtWithServiceFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Service: "campaignhub", Version: "test", Level: "info", Output: &buf})

	level.Info(l).Log("msg", "hello")

	out := buf.String()
	assert.Contains(t, out, "service=campaignhub")
	assert.Contains(t, out, "version=test")
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "ts=")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Service: "campaignhub", Level: "warn", Output: &buf})

	level.Info(l).Log("msg", "dropped")
	level.Debug(l).Log("msg", "dropped")
	assert.Empty(t, buf.String())

	level.Error(l).Log("msg", "kept")
	assert.Contains(t, buf.String(), "msg=kept")
}
