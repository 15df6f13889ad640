package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "test message arg")
	assert.NotContains(t, buf.String(), "time=")
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("provider %s failed", "arxiv")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "provider arxiv failed")
}

func TestSection_WhenVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Fan-out")

	assert.Contains(t, buf.String(), "=== Fan-out ===")
}

func TestWith_AddsAttributes(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	entry := With("run", "abc123")
	entry.Debug("normalized %d items", 4)
	entry.Warn("slow")

	out := buf.String()
	assert.Contains(t, out, "run=abc123")
	assert.Contains(t, out, "normalized 4 items")
	assert.Contains(t, out, "msg=slow")
}
