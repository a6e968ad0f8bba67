package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return buf
}

func TestSetVerbose_Toggles(t *testing.T) {
	resetLogger(t)

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_PrintsWhenVerbose(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Debug("dispatching %s to %s", "add", "criticism")

	assert.Equal(t, "[DEBUG] dispatching add to criticism\n", buf.String())
}

func TestDebug_SilentWhenNotVerbose(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(false)

	Debug("dispatching add")

	assert.Zero(t, buf.Len())
}

func TestInfo_PrintsWhenVerbose(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Info("restored %d staged uploads", 3)

	assert.Equal(t, "[INFO] restored 3 staged uploads\n", buf.String())
}

func TestWarn_PrintsWhenVerbose(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Warn("staging db unavailable, using memory store")

	assert.Equal(t, "[WARN] staging db unavailable, using memory store\n", buf.String())
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	resetLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("worker %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}
