package config

import (
	"fmt"

	"mobisync/internal/domain/airquality"

	"github.com/BurntSushi/toml"
)

type cityCatalog struct {
	Cities []airquality.City `toml:"city"`
}

// LoadCities читает каталог городов из TOML:
//
//	[[city]]
//	id = "madrid"
//	code = "MAD"
//	name = "Madrid"
func LoadCities(path string) ([]airquality.City, error) {
	var cat cityCatalog
	if _, err := toml.DecodeFile(path, &cat); err != nil {
		return nil, fmt.Errorf("decode cities file %s: %w", path, err)
	}
	for i, c := range cat.Cities {
		if c.ID == "" {
			return nil, fmt.Errorf("cities file %s: city #%d has no id", path, i+1)
		}
		if c.Code == "" {
			cat.Cities[i].Code = c.ID
		}
	}
	return cat.Cities, nil
}
