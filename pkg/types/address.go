package types

import "strings"

// Address is the shipping destination captured at checkout.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// MissingFields reports which required address fields are empty after trimming.
func (a Address) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(a.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.State) == "" {
		missing = append(missing, "state")
	}
	if strings.TrimSpace(a.ZipCode) == "" {
		missing = append(missing, "zipCode")
	}
	return missing
}

// Normalized returns a copy with whitespace trimmed and the country defaulted.
func (a Address) Normalized() Address {
	out := Address{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		ZipCode: strings.TrimSpace(a.ZipCode),
		Country: strings.TrimSpace(a.Country),
	}
	if out.Country == "" {
		out.Country = "US"
	}
	return out
}
