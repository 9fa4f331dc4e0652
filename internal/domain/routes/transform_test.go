package routes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_Defaults(t *testing.T) {
	var a Activity
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1001}`), &a))
	fetched := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	r := Transform(a, fetched)

	assert.Equal(t, "1001", r.ActivityID)
	assert.Equal(t, "other", r.ActivityType)
	assert.Zero(t, r.DistanceKM)
	assert.Zero(t, r.DurationMinutes)
	assert.Zero(t, r.CO2SavedKG)
	assert.Zero(t, r.Points)
	assert.Nil(t, r.UserID)
	assert.Nil(t, r.CityID)
	assert.Nil(t, r.StartedAt)
	assert.Nil(t, r.EndedAt)
	assert.Nil(t, r.StartLat)
	assert.Nil(t, r.Polyline)
	assert.Equal(t, fetched, r.FetchedAt)
}

func TestTransform_FullRecord(t *testing.T) {
	raw := `{
		"id": "a-1",
		"user_id": 77,
		"city_id": "madrid",
		"activity_type": " Bike ",
		"distance_km": 12.5,
		"duration_minutes": 41,
		"co2_saved_kg": 2.1,
		"points": 125,
		"started_at": "2026-10-15T07:00:00+02:00",
		"ended_at": "2026-10-15T07:41:00+02:00",
		"start_lat": 40.41, "start_lng": -3.70,
		"end_lat": 40.45, "end_lng": -3.69,
		"polyline": "abc"
	}`
	var a Activity
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	r := Transform(a, time.Time{})

	assert.Equal(t, "a-1", r.ActivityID)
	assert.Equal(t, "77", *r.UserID)
	assert.Equal(t, "madrid", *r.CityID)
	assert.Equal(t, "bike", r.ActivityType)
	assert.Equal(t, 12.5, r.DistanceKM)
	assert.Equal(t, 41.0, r.DurationMinutes)
	assert.Equal(t, 125, r.Points)
	require.NotNil(t, r.StartedAt)
	assert.Equal(t, time.Date(2026, 10, 15, 5, 0, 0, 0, time.UTC), *r.StartedAt)
	assert.Equal(t, "abc", *r.Polyline)
}

func TestTransform_LegacyTransportMode(t *testing.T) {
	mode := "walk"
	r := Transform(Activity{ID: "1", TransportMode: &mode}, time.Time{})
	assert.Equal(t, "walk", r.ActivityType)

	empty := ""
	r = Transform(Activity{ID: "1", ActivityType: &empty, TransportMode: &mode}, time.Time{})
	assert.Equal(t, "walk", r.ActivityType)
}

func TestRoute_ValuesMatchTable(t *testing.T) {
	r := Transform(Activity{ID: "1"}, time.Now())
	v := r.Values()

	require.Len(t, v, len(Table.Columns))
	assert.Equal(t, "1", v[0])
	assert.Nil(t, v[1], "user_id")
	assert.Nil(t, v[14], "polyline")
}
