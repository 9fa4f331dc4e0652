package companies

import "strings"

// TransformCompany
//
//	name           отсутствует -> ""
//	employee_count отсутствует -> 0
//	industry, city_id, website отсутствуют -> NULL
//	active         отсутствует -> true
func TransformCompany(c Company) CompanyRow {
	active := true
	if c.Active != nil {
		active = *c.Active
	}
	var employees int
	if c.EmployeeCount != nil {
		employees = *c.EmployeeCount
	}
	return CompanyRow{
		ID:            string(c.ID),
		Name:          deref(c.Name),
		Industry:      c.Industry,
		CityID:        c.CityID.Ptr(),
		EmployeeCount: employees,
		Website:       c.Website,
		Active:        active,
	}
}

// TransformFacility type -> facility_type (по умолчанию "other"), capacity -> 0,
// company_id, address, координаты -> NULL
func TransformFacility(f Facility) FacilityRow {
	kind := strings.ToLower(strings.TrimSpace(deref(f.Type)))
	if kind == "" {
		kind = defaultFacilityType
	}
	var capacity int
	if f.Capacity != nil {
		capacity = *f.Capacity
	}
	return FacilityRow{
		ID:           string(f.ID),
		CompanyID:    f.CompanyID.Ptr(),
		Name:         deref(f.Name),
		FacilityType: kind,
		Address:      f.Address,
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
		Capacity:     capacity,
	}
}

func TransformCompanies(cs []Company) []CompanyRow {
	out := make([]CompanyRow, 0, len(cs))
	for _, c := range cs {
		out = append(out, TransformCompany(c))
	}
	return out
}

func TransformFacilities(fs []Facility) []FacilityRow {
	out := make([]FacilityRow, 0, len(fs))
	for _, f := range fs {
		out = append(out, TransformFacility(f))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
