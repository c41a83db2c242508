package geo

import "strings"

// CountryCode 封闭的国家集合（ISO 3166-1 alpha-3）。
type CountryCode string

const (
	Ukraine    CountryCode = "UKR"
	Russia     CountryCode = "RUS"
	Belarus    CountryCode = "BLR"
	Poland     CountryCode = "POL"
	Moldova    CountryCode = "MDA"
	Romania    CountryCode = "ROU"
	Georgia    CountryCode = "GEO"
	Armenia    CountryCode = "ARM"
	Azerbaijan CountryCode = "AZE"
	Turkey     CountryCode = "TUR"
	Iran       CountryCode = "IRN"
	Syria      CountryCode = "SYR"
)

var allCountries = []CountryCode{
	Ukraine, Russia, Belarus, Poland, Moldova, Romania,
	Georgia, Armenia, Azerbaijan, Turkey, Iran, Syria,
}

// AllCountries 返回副本。
func AllCountries() []CountryCode {
	out := make([]CountryCode, len(allCountries))
	copy(out, allCountries)
	return out
}

func (c CountryCode) Known() bool {
	for _, v := range allCountries {
		if v == c {
			return true
		}
	}
	return false
}

func (c CountryCode) String() string {
	return string(c)
}

func ParseCountry(s string) (CountryCode, error) {
	c := CountryCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Known() {
		return "", ErrUnknownCountry.WithData("country", s)
	}
	return c, nil
}

// UnmarshalText 只做归一化，成员校验交给 Validate，以便一次报出全部问题。
func (c *CountryCode) UnmarshalText(text []byte) error {
	*c = CountryCode(strings.ToUpper(strings.TrimSpace(string(text))))
	return nil
}
