package airquality

import (
	"time"

	"mobisync/internal/batch"
)

const (
	Domain = "air_quality"

	// DefaultConcurrency одновременные запросы к сети мониторинга
	DefaultConcurrency = 4
)

// City город из каталога: ID - ключ в хранилище, Code - параметр city для upstream
type City struct {
	ID   string `toml:"id"`
	Code string `toml:"code"`
	Name string `toml:"name"`
}

// DailySummary ответ /api/v1/daily-summary
type DailySummary struct {
	PM25Avg           *float64 `json:"pm25Avg"`
	PM10Avg           *float64 `json:"pm10Avg"`
	NO2Avg            *float64 `json:"no2Avg"`
	O3Avg             *float64 `json:"o3Avg"`
	AQI               *int     `json:"aqi"`
	StationsReporting *int     `json:"stationsReporting"`
}

// Summary сводка города в ответе задачи
type Summary struct {
	PM25Avg           float64  `json:"pm25Avg"`
	PM10Avg           *float64 `json:"pm10Avg,omitempty"`
	NO2Avg            *float64 `json:"no2Avg,omitempty"`
	O3Avg             *float64 `json:"o3Avg,omitempty"`
	AQI               *int     `json:"aqi,omitempty"`
	StationsReporting int      `json:"stationsReporting"`
}

// Reading строка air_quality_readings
type Reading struct {
	CityID            string
	Date              time.Time
	PM25Avg           float64
	PM10Avg           *float64
	NO2Avg            *float64
	O3Avg             *float64
	AQI               *int
	StationsReporting int
}

var Table = batch.Table{
	Name: "air_quality_readings",
	Columns: []string{
		"city_id", "date", "pm25_avg", "pm10_avg", "no2_avg", "o3_avg",
		"aqi", "stations_reporting",
	},
	ConflictKey: []string{"city_id", "date"},
}

func (r Reading) Values() []any {
	return []any{
		r.CityID, r.Date, r.PM25Avg,
		batch.Nullable(r.PM10Avg), batch.Nullable(r.NO2Avg), batch.Nullable(r.O3Avg),
		batch.Nullable(r.AQI), r.StationsReporting,
	}
}

func (r Reading) Summary() *Summary {
	return &Summary{
		PM25Avg:           r.PM25Avg,
		PM10Avg:           r.PM10Avg,
		NO2Avg:            r.NO2Avg,
		O3Avg:             r.O3Avg,
		AQI:               r.AQI,
		StationsReporting: r.StationsReporting,
	}
}
