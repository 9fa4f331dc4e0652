package routes

import (
	"strings"
	"time"

	"mobisync/internal/upstream"
)

// Transform переводит активность в строку activity_routes.
//
//	id               -> activity_id
//	activity_type    отсутствует -> transport_mode, затем "other"
//	distance_km, duration_minutes, co2_saved_kg, points отсутствуют -> 0
//	user_id, city_id, координаты, started_at, ended_at, polyline отсутствуют -> NULL
func Transform(a Activity, fetchedAt time.Time) Route {
	return Route{
		ActivityID:      string(a.ID),
		UserID:          a.UserID.Ptr(),
		CityID:          a.CityID.Ptr(),
		ActivityType:    activityType(a),
		DistanceKM:      orZero(a.DistanceKM),
		DurationMinutes: orZero(a.DurationMinutes),
		CO2SavedKG:      orZero(a.CO2SavedKG),
		Points:          orZero(a.Points),
		StartedAt:       utcPtr(a.StartedAt),
		EndedAt:         utcPtr(a.EndedAt),
		StartLat:        a.StartLat,
		StartLng:        a.StartLng,
		EndLat:          a.EndLat,
		EndLng:          a.EndLng,
		Polyline:        a.Polyline,
		FetchedAt:       fetchedAt,
	}
}

// TransformAll применяет Transform ко всем записям обхода
func TransformAll(records []upstream.Fetched[Activity]) []Route {
	out := make([]Route, 0, len(records))
	for _, r := range records {
		out = append(out, Transform(r.Record, r.SyncedAt))
	}
	return out
}

func activityType(a Activity) string {
	for _, v := range []*string{a.ActivityType, a.TransportMode} {
		if v != nil {
			if s := strings.ToLower(strings.TrimSpace(*v)); s != "" {
				return s
			}
		}
	}
	return defaultActivityType
}

func orZero[T int | float64](p *T) T {
	if p == nil {
		return 0
	}
	return *p
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
