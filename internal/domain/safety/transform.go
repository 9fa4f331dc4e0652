package safety

import "strings"

// Transform строки для проверенного payload. source отсутствует -> "manual".
func Transform(p Payload) []AnnualRecord {
	source := DefaultSource
	if p.Source != nil && strings.TrimSpace(*p.Source) != "" {
		source = strings.TrimSpace(*p.Source)
	}
	cityID := strings.TrimSpace(p.CityID)

	out := make([]AnnualRecord, 0, len(p.Records))
	for _, r := range p.Records {
		out = append(out, AnnualRecord{
			CityID:               cityID,
			Year:                 *r.Year,
			TotalCrashes:         r.TotalCrashes,
			TotalInjuries:        r.TotalInjuries,
			TotalFatalities:      r.TotalFatalities,
			PedestrianFatalities: r.PedestrianFatalities,
			CyclistFatalities:    r.CyclistFatalities,
			Source:               source,
		})
	}
	return out
}
