package safety

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"mobisync/internal/domain/job"
)

// DecodePayload разбирает тело запроса. Неизвестные поля игнорируются.
func DecodePayload(raw []byte) (Payload, error) {
	var p Payload
	if len(bytes.TrimSpace(raw)) == 0 {
		return p, fmt.Errorf("%w: empty body", job.ErrInvalidPayload)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("%w: %v", job.ErrInvalidPayload, err)
	}
	return p, nil
}

// Validate проверяет payload относительно текущего года
func Validate(p Payload, currentYear int) error {
	if strings.TrimSpace(p.CityID) == "" {
		return fmt.Errorf("%w: city_id is required", job.ErrInvalidPayload)
	}
	if len(p.Records) == 0 {
		return fmt.Errorf("%w: records must not be empty", job.ErrInvalidPayload)
	}
	if len(p.Records) > MaxRecords {
		return fmt.Errorf("%w: at most %d records allowed, got %d", job.ErrInvalidPayload, MaxRecords, len(p.Records))
	}

	maxYear := currentYear + 1
	for i, r := range p.Records {
		if r.Year == nil {
			return fmt.Errorf("%w: records[%d]: year is required", job.ErrInvalidPayload, i)
		}
		if *r.Year < MinYear || *r.Year > maxYear {
			return fmt.Errorf("%w: records[%d]: year %d must be between %d and %d",
				job.ErrInvalidPayload, i, *r.Year, MinYear, maxYear)
		}
		for name, v := range r.counts() {
			if v != nil && *v < 0 {
				return fmt.Errorf("%w: records[%d]: %s must not be negative", job.ErrInvalidPayload, i, name)
			}
		}
	}
	return nil
}

func (r Record) counts() map[string]*int {
	return map[string]*int{
		"total_crashes":         r.TotalCrashes,
		"total_injuries":        r.TotalInjuries,
		"total_fatalities":      r.TotalFatalities,
		"pedestrian_fatalities": r.PedestrianFatalities,
		"cyclist_fatalities":    r.CyclistFatalities,
	}
}
