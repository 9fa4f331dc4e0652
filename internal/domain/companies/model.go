package companies

import (
	"mobisync/internal/batch"
	"mobisync/internal/upstream"
)

const (
	CompaniesDomain  = "companies"
	FacilitiesDomain = "facilities"

	defaultFacilityType = "other"
)

var (
	companyKeys  = []string{"companies", "data", "items"}
	facilityKeys = []string{"facilities", "data", "items"}
)

type Company struct {
	ID            upstream.ID `json:"id"`
	Name          *string     `json:"name"`
	Industry      *string     `json:"industry"`
	CityID        upstream.ID `json:"city_id"`
	EmployeeCount *int        `json:"employee_count"`
	Website       *string     `json:"website"`
	Active        *bool       `json:"active"`
}

type Facility struct {
	ID        upstream.ID `json:"id"`
	CompanyID upstream.ID `json:"company_id"`
	Name      *string     `json:"name"`
	Type      *string     `json:"type"`
	Address   *string     `json:"address"`
	Latitude  *float64    `json:"latitude"`
	Longitude *float64    `json:"longitude"`
	Capacity  *int        `json:"capacity"`
}

// CompanyRow строка companies
type CompanyRow struct {
	ID            string
	Name          string
	Industry      *string
	CityID        *string
	EmployeeCount int
	Website       *string
	Active        bool
}

var CompanyTable = batch.Table{
	Name:        "companies",
	Columns:     []string{"id", "name", "industry", "city_id", "employee_count", "website", "active"},
	ConflictKey: []string{"id"},
}

func (c CompanyRow) Values() []any {
	return []any{
		c.ID, c.Name, batch.Nullable(c.Industry), batch.Nullable(c.CityID),
		c.EmployeeCount, batch.Nullable(c.Website), c.Active,
	}
}

// FacilityRow строка facilities
type FacilityRow struct {
	ID           string
	CompanyID    *string
	Name         string
	FacilityType string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	Capacity     int
}

var FacilityTable = batch.Table{
	Name: "facilities",
	Columns: []string{
		"id", "company_id", "name", "facility_type", "address",
		"latitude", "longitude", "capacity",
	},
	ConflictKey: []string{"id"},
}

func (f FacilityRow) Values() []any {
	return []any{
		f.ID, batch.Nullable(f.CompanyID), f.Name, f.FacilityType, batch.Nullable(f.Address),
		batch.Nullable(f.Latitude), batch.Nullable(f.Longitude), f.Capacity,
	}
}
