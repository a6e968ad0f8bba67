package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReporter_InitiallyEmpty(t *testing.T) {
	r := NewReporter()

	assert.Empty(t, r.Current())
}

func TestReporter_ReportAndCurrent(t *testing.T) {
	now := time.Now()
	r := NewReporterWithClock(DefaultStatusTTL, func() time.Time { return now })

	r.Report("Saved ✓")

	assert.Equal(t, "Saved ✓", r.Current())
}

func TestReporter_Reportf(t *testing.T) {
	now := time.Now()
	r := NewReporterWithClock(DefaultStatusTTL, func() time.Time { return now })

	r.Reportf("%q deleted", "Economy")

	assert.Equal(t, `"Economy" deleted`, r.Current())
}

func TestReporter_ExpiresAfterTTL(t *testing.T) {
	now := time.Now()
	r := NewReporterWithClock(DefaultStatusTTL, func() time.Time { return now })

	r.Report("Saved ✓")
	now = now.Add(DefaultStatusTTL + time.Millisecond)

	assert.Empty(t, r.Current())
}

func TestReporter_VisibleUntilTTL(t *testing.T) {
	now := time.Now()
	r := NewReporterWithClock(DefaultStatusTTL, func() time.Time { return now })

	r.Report("Saved ✓")
	now = now.Add(DefaultStatusTTL)

	assert.Equal(t, "Saved ✓", r.Current())
}

func TestReporter_NewMessageResetsTTL(t *testing.T) {
	now := time.Now()
	r := NewReporterWithClock(DefaultStatusTTL, func() time.Time { return now })

	r.Report("first")
	now = now.Add(2 * time.Second)
	r.Report("second")
	now = now.Add(2 * time.Second)

	assert.Equal(t, "second", r.Current())
}

func TestReporter_Clear(t *testing.T) {
	now := time.Now()
	r := NewReporterWithClock(DefaultStatusTTL, func() time.Time { return now })

	r.Report("Saved ✓")
	r.Clear()

	assert.Empty(t, r.Current())
}
