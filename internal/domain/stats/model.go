package stats

import (
	"time"

	"mobisync/internal/batch"
)

const (
	DailyDomain       = "daily_stats"
	LeaderboardDomain = "leaderboard"

	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 1000
)

// Global ответ /api/v1/stats/global
type Global struct {
	Date            *string  `json:"date"`
	TotalUsers      *int     `json:"total_users"`
	ActiveUsers     *int     `json:"active_users"`
	TotalActivities *int     `json:"total_activities"`
	TotalDistanceKM *float64 `json:"total_distance_km"`
	TotalCO2SavedKG *float64 `json:"total_co2_saved_kg"`
	TotalPoints     *int     `json:"total_points"`
}

// Entry запись /api/v1/leaderboard
type Entry struct {
	Company         *string  `json:"company"`
	Rank            *int     `json:"rank"`
	TotalPoints     *int     `json:"total_points"`
	TotalCO2SavedKG *float64 `json:"total_co2_saved_kg"`
	TotalDistanceKM *float64 `json:"total_distance_km"`
	Participants    *int     `json:"participants"`
	LogoURL         *string  `json:"logo_url"`
}

// DailyStat строка daily_stats
type DailyStat struct {
	Date            time.Time
	TotalUsers      int
	ActiveUsers     int
	TotalActivities int
	TotalDistanceKM float64
	TotalCO2SavedKG float64
	TotalPoints     int
}

var DailyTable = batch.Table{
	Name: "daily_stats",
	Columns: []string{
		"date", "total_users", "active_users", "total_activities",
		"total_distance_km", "total_co2_saved_kg", "total_points",
	},
	ConflictKey: []string{"date"},
}

func (d DailyStat) Values() []any {
	return []any{
		d.Date, d.TotalUsers, d.ActiveUsers, d.TotalActivities,
		d.TotalDistanceKM, d.TotalCO2SavedKG, d.TotalPoints,
	}
}

// LeaderboardEntry строка leaderboard_entries
type LeaderboardEntry struct {
	CompanyName     string
	Rank            int
	TotalPoints     int
	TotalCO2SavedKG float64
	TotalDistanceKM float64
	Participants    int
	LogoURL         *string
}

var LeaderboardTable = batch.Table{
	Name: "leaderboard_entries",
	Columns: []string{
		"company_name", "rank", "total_points", "total_co2_saved_kg",
		"total_distance_km", "participants", "logo_url",
	},
	ConflictKey: []string{"company_name"},
}

func (e LeaderboardEntry) Values() []any {
	return []any{
		e.CompanyName, e.Rank, e.TotalPoints, e.TotalCO2SavedKG,
		e.TotalDistanceKM, e.Participants, batch.Nullable(e.LogoURL),
	}
}
