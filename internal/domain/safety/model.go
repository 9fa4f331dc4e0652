package safety

import "mobisync/internal/batch"

const (
	Domain = "safety"

	MinYear       = 1900
	MaxRecords    = 500
	DefaultSource = "manual"
)

// Payload тело POST /api/v1/sync/safety
type Payload struct {
	CityID  string   `json:"city_id"`
	Source  *string  `json:"source,omitempty"`
	Records []Record `json:"records"`
}

// Record годовая статистика аварийности. Отсутствующий счетчик хранится как NULL.
type Record struct {
	Year                 *int `json:"year"`
	TotalCrashes         *int `json:"total_crashes"`
	TotalInjuries        *int `json:"total_injuries"`
	TotalFatalities      *int `json:"total_fatalities"`
	PedestrianFatalities *int `json:"pedestrian_fatalities"`
	CyclistFatalities    *int `json:"cyclist_fatalities"`
}

// AnnualRecord строка safety_annual_records
type AnnualRecord struct {
	CityID               string
	Year                 int
	TotalCrashes         *int
	TotalInjuries        *int
	TotalFatalities      *int
	PedestrianFatalities *int
	CyclistFatalities    *int
	Source               string
}

var Table = batch.Table{
	Name: "safety_annual_records",
	Columns: []string{
		"city_id", "year", "total_crashes", "total_injuries", "total_fatalities",
		"pedestrian_fatalities", "cyclist_fatalities", "source",
	},
	ConflictKey: []string{"city_id", "year"},
}

func (r AnnualRecord) Values() []any {
	return []any{
		r.CityID, r.Year,
		batch.Nullable(r.TotalCrashes), batch.Nullable(r.TotalInjuries), batch.Nullable(r.TotalFatalities),
		batch.Nullable(r.PedestrianFatalities), batch.Nullable(r.CyclistFatalities),
		r.Source,
	}
}
