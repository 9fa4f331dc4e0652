package airquality

import (
	"time"

	"mobisync/internal/domain/job"
)

// HasData ответ без pm25Avg означает отсутствие данных по городу
func (d *DailySummary) HasData() bool {
	return d != nil && d.PM25Avg != nil
}

// Transform строит строку для города с данными. ok=false - данных нет, строки не будет.
// pm10Avg, no2Avg, o3Avg, aqi отсутствуют -> NULL, stationsReporting -> 0.
func Transform(cityID string, date time.Time, d *DailySummary) (Reading, bool) {
	if !d.HasData() {
		return Reading{}, false
	}
	var stations int
	if d.StationsReporting != nil {
		stations = *d.StationsReporting
	}
	return Reading{
		CityID:            cityID,
		Date:              job.Day(date),
		PM25Avg:           *d.PM25Avg,
		PM10Avg:           d.PM10Avg,
		NO2Avg:            d.NO2Avg,
		O3Avg:             d.O3Avg,
		AQI:               d.AQI,
		StationsReporting: stations,
	}, true
}
