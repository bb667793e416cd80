package dto

import "github.com/noah-isme/wazai-maps/internal/models"

// SearchRequest starts a new search in a session. Missing fields take defaults.
type SearchRequest struct {
	Keyword  string `json:"keyword" validate:"max=200"`
	Country  string `json:"country" validate:"omitempty,oneof=ALL TW JP all tw jp"`
	Provider string `json:"provider" validate:"omitempty,max=64"`
}

// Params converts the request into fully specified search parameters.
func (r SearchRequest) Params() models.SearchParams {
	return models.SearchParams{Keyword: r.Keyword, Country: r.Country, Provider: r.Provider}.Normalize()
}

// SearchAccepted acknowledges an asynchronous search.
type SearchAccepted struct {
	SessionID  string              `json:"sessionId"`
	Generation uint64              `json:"generation"`
	Params     models.SearchParams `json:"params"`
}

// ProviderOption is one entry of the provider picker.
type ProviderOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ProviderOptions lists providers with ALL first.
type ProviderOptions struct {
	Options  []ProviderOption `json:"options"`
	Degraded bool             `json:"degraded"`
}
