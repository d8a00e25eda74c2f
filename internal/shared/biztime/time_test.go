package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFormatDate(t *testing.T) {
	require.NoError(t, Init("Asia/Kolkata"))
	t.Cleanup(func() { _ = Init("") })

	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)

	// 00:00 IST is 18:30 UTC the previous day
	assert.Equal(t, time.Date(2024, 2, 29, 18, 30, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-03-01", FormatDate(d))
}

func TestDayAndMonthBoundaries(t *testing.T) {
	require.NoError(t, Init("UTC"))

	at := time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), StartOfDayUTC(at))
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), EndOfDayUTC(at))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonthUTC(2024, time.February))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), EndOfMonthUTC(2024, time.February))
}

func TestInitRejectsUnknownZone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus"))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("03/01/2024")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	require.NoError(t, Init("Asia/Kolkata"))
	t.Cleanup(func() { _ = Init("") })

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01T08:30:00Z", time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)},
		{"2024-03-01T14:00", time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 2, 29, 18, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDateTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDateTime("yesterday")
	assert.Error(t, err)
}
