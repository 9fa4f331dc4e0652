package routes

import (
	"time"

	"mobisync/internal/batch"
	"mobisync/internal/upstream"
)

const (
	Domain = "routes"

	DefaultPerPage = 100
	MaxPerPage     = 500

	defaultActivityType = "other"
)

// Activity запись активности в ответе trip backend
type Activity struct {
	ID              upstream.ID `json:"id"`
	UserID          upstream.ID `json:"user_id"`
	CityID          upstream.ID `json:"city_id"`
	ActivityType    *string     `json:"activity_type"`
	TransportMode   *string     `json:"transport_mode"` // устаревшее имя activity_type
	DistanceKM      *float64    `json:"distance_km"`
	DurationMinutes *float64    `json:"duration_minutes"`
	CO2SavedKG      *float64    `json:"co2_saved_kg"`
	Points          *int        `json:"points"`
	StartedAt       *time.Time  `json:"started_at"`
	EndedAt         *time.Time  `json:"ended_at"`
	StartLat        *float64    `json:"start_lat"`
	StartLng        *float64    `json:"start_lng"`
	EndLat          *float64    `json:"end_lat"`
	EndLng          *float64    `json:"end_lng"`
	Polyline        *string     `json:"polyline"`
}

// activityPage конверт страницы /api/v1/activities
type activityPage struct {
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
	TotalPages int        `json:"total_pages"`
	TotalCount int        `json:"total_count"`
	Activities []Activity `json:"activities"`
}

func (p activityPage) toPage() upstream.Page[Activity] {
	return upstream.Page[Activity]{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
		TotalCount: p.TotalCount,
		Records:    p.Activities,
	}
}

// Route строка activity_routes
type Route struct {
	ActivityID      string
	UserID          *string
	CityID          *string
	ActivityType    string
	DistanceKM      float64
	DurationMinutes float64
	CO2SavedKG      float64
	Points          int
	StartedAt       *time.Time
	EndedAt         *time.Time
	StartLat        *float64
	StartLng        *float64
	EndLat          *float64
	EndLng          *float64
	Polyline        *string
	FetchedAt       time.Time
}

var Table = batch.Table{
	Name: "activity_routes",
	Columns: []string{
		"activity_id", "user_id", "city_id", "activity_type",
		"distance_km", "duration_minutes", "co2_saved_kg", "points",
		"started_at", "ended_at", "start_lat", "start_lng", "end_lat", "end_lng",
		"polyline", "fetched_at",
	},
	ConflictKey: []string{"activity_id"},
}

func (r Route) Values() []any {
	return []any{
		r.ActivityID, batch.Nullable(r.UserID), batch.Nullable(r.CityID), r.ActivityType,
		r.DistanceKM, r.DurationMinutes, r.CO2SavedKG, r.Points,
		batch.Nullable(r.StartedAt), batch.Nullable(r.EndedAt),
		batch.Nullable(r.StartLat), batch.Nullable(r.StartLng),
		batch.Nullable(r.EndLat), batch.Nullable(r.EndLng),
		batch.Nullable(r.Polyline), r.FetchedAt,
	}
}
