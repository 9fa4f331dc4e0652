package job

import (
	"mobisync/internal/domain/airquality"
	"mobisync/internal/domain/companies"
	"mobisync/internal/domain/routes"
	"mobisync/internal/domain/safety"
	"mobisync/internal/domain/stats"
)

type routesInput struct {
	Start   string `query:"start" example:"2026-07-01" doc:"Начало окна YYYY-MM-DD, только вместе с end"`
	End     string `query:"end" example:"2026-07-31" doc:"Конец окна YYYY-MM-DD включительно"`
	Days    int    `query:"days" example:"90" doc:"Глубина окна в днях, 1..365, по умолчанию 90"`
	PerPage int    `query:"per_page" example:"100" doc:"Размер страницы upstream, 1..500, по умолчанию 100"`
}

type routesOutput struct {
	Status int
	Body   routesResponse
}

type routesResponse struct {
	routes.Report
}

type statsInput struct {
	Limit int `query:"limit" example:"50" doc:"Количество записей лидерборда"`
}

type statsOutput struct {
	Status int
	Body   statsResponse
}

type statsResponse struct {
	stats.Report
}

type companiesOutput struct {
	Status int
	Body   companiesResponse
}

type companiesResponse struct {
	companies.Report
}

type airQualityInput struct {
	Date string `query:"date" example:"2026-10-15" doc:"Дата YYYY-MM-DD, по умолчанию предыдущие сутки UTC"`
}

type airQualityOutput struct {
	Status int
	Body   airQualityResponse
}

type airQualityResponse struct {
	airquality.Report
}

type safetyInput struct {
	RawBody []byte `contentType:"application/json"`
}

type safetyOutput struct {
	Status int
	Body   safetyResponse
}

type safetyResponse struct {
	safety.Report
}
