package models

import "strings"

const (
	// FilterAll disables filtering on a dimension.
	FilterAll = "ALL"

	CountryFilterTaiwan = "TW"
	CountryFilterJapan  = "JP"
)

// SearchParams is the full set of search inputs. A new search replaces it wholesale.
type SearchParams struct {
	Keyword  string `json:"keyword" validate:"max=200"`
	Country  string `json:"country" validate:"required,oneof=ALL TW JP"`
	Provider string `json:"provider" validate:"required,max=64"`
}

// DefaultSearchParams returns the parameters a fresh session starts with.
func DefaultSearchParams() SearchParams {
	return SearchParams{Keyword: "", Country: FilterAll, Provider: FilterAll}
}

// Normalize fills defaults so the parameters are always fully specified.
func (p SearchParams) Normalize() SearchParams {
	p.Keyword = strings.TrimSpace(p.Keyword)
	p.Country = strings.ToUpper(strings.TrimSpace(p.Country))
	if p.Country == "" {
		p.Country = FilterAll
	}
	p.Provider = strings.TrimSpace(p.Provider)
	if p.Provider == "" || strings.EqualFold(p.Provider, FilterAll) {
		p.Provider = FilterAll
	}
	return p
}

// CacheKey is a stable identity for the parameter set.
func (p SearchParams) CacheKey() string {
	n := p.Normalize()
	return strings.Join([]string{strings.ToLower(n.Keyword), n.Country, n.Provider}, "|")
}

// SortOrder is the list ordering chosen by the user.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder defaults to ascending for anything unrecognised.
func ParseSortOrder(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortDescending)) {
		return SortDescending
	}
	return SortAscending
}
