package stats

import (
	"strings"
	"time"

	"mobisync/internal/domain/job"
)

// TransformGlobal переводит глобальную статистику в строку daily_stats.
// date отсутствует -> today, YYYY-MM-DD или RFC3339 -> сутки UTC, иначе ключ пустой
// и строка отбрасывается при записи. Счетчики отсутствуют -> 0.
func TransformGlobal(g Global, today time.Time) DailyStat {
	date := job.Day(today)
	if g.Date != nil && strings.TrimSpace(*g.Date) != "" {
		date = parseDay(strings.TrimSpace(*g.Date))
	}

	return DailyStat{
		Date:            date,
		TotalUsers:      orZero(g.TotalUsers),
		ActiveUsers:     orZero(g.ActiveUsers),
		TotalActivities: orZero(g.TotalActivities),
		TotalDistanceKM: orZero(g.TotalDistanceKM),
		TotalCO2SavedKG: orZero(g.TotalCO2SavedKG),
		TotalPoints:     orZero(g.TotalPoints),
	}
}

// TransformLeaderboard company -> company_name, rank отсутствует -> позиция в списке с 1.
// Запись без company остается с пустым ключом и отбрасывается при записи.
func TransformLeaderboard(entries []Entry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(entries))
	for i, e := range entries {
		rank := i + 1
		if e.Rank != nil {
			rank = *e.Rank
		}

		var name string
		if e.Company != nil {
			name = strings.TrimSpace(*e.Company)
		}

		out = append(out, LeaderboardEntry{
			CompanyName:     name,
			Rank:            rank,
			TotalPoints:     orZero(e.TotalPoints),
			TotalCO2SavedKG: orZero(e.TotalCO2SavedKG),
			TotalDistanceKM: orZero(e.TotalDistanceKM),
			Participants:    orZero(e.Participants),
			LogoURL:         e.LogoURL,
		})
	}
	return out
}

// parseDay нулевое время, если формат не распознан
func parseDay(s string) time.Time {
	if d, err := time.Parse(job.DateLayout, s); err == nil {
		return d
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return job.Day(t)
	}
	return time.Time{}
}

func orZero[T int | float64](p *T) T {
	if p == nil {
		return 0
	}
	return *p
}
