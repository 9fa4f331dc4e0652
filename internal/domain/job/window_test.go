package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		days      int
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{name: "default lookback", wantStart: "2026-07-18", wantEnd: "2026-10-16"},
		{name: "custom days", days: 7, wantStart: "2026-10-09", wantEnd: "2026-10-16"},
		{name: "explicit range", start: "2026-01-01", end: "2026-01-31", wantStart: "2026-01-01", wantEnd: "2026-01-31"},
		{name: "single day", start: "2026-01-01", end: "2026-01-01", wantStart: "2026-01-01", wantEnd: "2026-01-01"},
		{name: "start after end", start: "2026-02-01", end: "2026-01-31", wantErr: true},
		{name: "only start", start: "2026-02-01", wantErr: true},
		{name: "bad date", start: "01/02/2026", end: "2026-01-31", wantErr: true},
		{name: "negative days", days: -1, wantErr: true},
		{name: "too many days", days: MaxLookbackDays + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ResolveWindow(today, tt.start, tt.end, tt.days)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParams)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DateRange{Start: tt.wantStart, End: tt.wantEnd}, w.Range())
		})
	}
}

func TestLookback_WholeDays(t *testing.T) {
	now := time.Date(2026, 10, 16, 23, 59, 59, 0, time.UTC)

	w := Lookback(now, 90)

	assert.Equal(t, 90*24*time.Hour, w.End.Sub(w.Start))
	assert.Equal(t, 0, w.Start.Hour())
}

func TestPreviousDay(t *testing.T) {
	local := time.FixedZone("UTC+3", 3*60*60)
	// 01:30 по UTC+3 - это еще 15 октября по UTC
	now := time.Date(2026, 10, 16, 1, 30, 0, 0, local)

	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), PreviousDay(now))
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), PreviousDay(today))
}

func TestToday(t *testing.T) {
	d := Today()
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 0, d.Hour())
}
