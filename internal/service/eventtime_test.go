package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wazai-maps/internal/models"
)

func mustClock(t *testing.T, tz string) *EventClock {
	t.Helper()
	clock, err := NewEventClock(tz)
	require.NoError(t, err)
	return clock
}

func TestEventClockResolvesByCountry(t *testing.T) {
	clock := mustClock(t, "UTC")

	tw, ok := clock.Resolve("2025-08-09T10:00:00", models.CountryTaiwan)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 9, 2, 0, 0, 0, time.UTC), tw.UTC())

	jp, ok := clock.Resolve("2025-08-10T00:30:00", models.CountryJapan)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 9, 15, 30, 0, 0, time.UTC), jp.UTC())

	other, ok := clock.Resolve("2025-08-09T10:00:00", models.CountryDefault)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 9, 10, 0, 0, 0, time.UTC), other.UTC())
}

func TestEventClockLayouts(t *testing.T) {
	clock := mustClock(t, "")
	assert.Equal(t, DefaultDisplayTimezone, clock.Name())

	for _, raw := range []string{
		"2025-08-09T10:00:00.123",
		"2025-08-09T10:00:00",
		"2025-08-09T10:00",
		"2025-08-09 10:00:00",
		"2025-08-09",
		"2025-08-09T10:00:00+02:00",
		"2025-08-09T10:00:00Z",
	} {
		_, ok := clock.Resolve(raw, models.CountryTaiwan)
		assert.True(t, ok, raw)
	}

	for _, raw := range []string{"", "   ", "tomorrow", "2025-13-40T10:00:00", "09/08/2025"} {
		_, ok := clock.Resolve(raw, models.CountryTaiwan)
		assert.False(t, ok, raw)
	}
}

func TestEventClockExplicitOffsetWins(t *testing.T) {
	clock := mustClock(t, "Asia/Taipei")
	got, ok := clock.Resolve("2025-08-09T10:00:00+02:00", models.CountryJapan)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 9, 8, 0, 0, 0, time.UTC), got.UTC())
}

func TestEventClockZoneLabel(t *testing.T) {
	clock := mustClock(t, "America/New_York")
	assert.Equal(t, "Taipei", clock.ZoneLabel(models.CountryTaiwan))
	assert.Equal(t, "Tokyo", clock.ZoneLabel(models.CountryJapan))
	assert.Equal(t, "New York", clock.ZoneLabel(models.CountryDefault))
	assert.Equal(t, "UTC", mustClock(t, "UTC").ZoneLabel(models.CountryDefault))
}

func TestNewEventClockRejectsUnknownZone(t *testing.T) {
	_, err := NewEventClock("Mars/Olympus_Mons")
	assert.Error(t, err)
}
