package job

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"
)

const (
	DateLayout = "2006-01-02"

	DefaultLookbackDays = 90
	MaxLookbackDays     = 365
)

// DateRange окно синхронизации в календарных днях UTC, обе границы включительно
type DateRange struct {
	Start string `json:"start" example:"2026-01-01"`
	End   string `json:"end" example:"2026-03-31"`
}

// Window окно синхронизации
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Range() DateRange {
	return DateRange{Start: w.Start.Format(DateLayout), End: w.End.Format(DateLayout)}
}

// Today полночь текущих суток UTC
func Today() time.Time {
	return Day(utc.Now().Time)
}

// Day усекает момент до полуночи UTC
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PreviousDay предыдущие календарные сутки UTC
func PreviousDay(today time.Time) time.Time {
	return Day(today).AddDate(0, 0, -1)
}

// Lookback окно из days целых суток, заканчивающееся today
func Lookback(today time.Time, days int) Window {
	end := Day(today)
	return Window{Start: end.AddDate(0, 0, -days), End: end}
}

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidParams, s)
	}
	return t, nil
}

// ResolveWindow применяет политику окна: явные start/end, иначе days, иначе 90 дней.
func ResolveWindow(today time.Time, start, end string, days int) (Window, error) {
	if start != "" || end != "" {
		if start == "" || end == "" {
			return Window{}, fmt.Errorf("%w: start and end must be set together", ErrInvalidParams)
		}
		s, err := ParseDate(start)
		if err != nil {
			return Window{}, err
		}
		e, err := ParseDate(end)
		if err != nil {
			return Window{}, err
		}
		if s.After(e) {
			return Window{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidParams, start, end)
		}
		return Window{Start: s, End: e}, nil
	}

	if days == 0 {
		days = DefaultLookbackDays
	}
	if days < 1 || days > MaxLookbackDays {
		return Window{}, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidParams, MaxLookbackDays)
	}
	return Lookback(today, days), nil
}
