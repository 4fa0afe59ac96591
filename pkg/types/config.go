package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	// Nominatim and Overpass both require an identifying User-Agent.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the business discovery engine.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// OverpassURL is the Overpass API interpreter endpoint.
	OverpassURL string `json:"overpass_url" yaml:"overpass_url"`

	// MaxResults is the maximum number of businesses to return (default 500).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// PaceInterval is the minimum delay between consecutive Overpass
	// calls within one search. Values below one second are raised to
	// one second to honor the public instance's rate limits.
	PaceInterval time.Duration `json:"pace_interval" yaml:"pace_interval"`

	// QueryTimeout is the server-side timeout requested in each
	// Overpass query, in seconds (default 60).
	QueryTimeout int `json:"query_timeout" yaml:"query_timeout"`
}

// GeocodeConfig holds settings for free-text location resolution.
type GeocodeConfig struct {
	HTTPConfig `yaml:",inline"`

	// NominatimURL is the Nominatim base URL (no trailing slash).
	NominatimURL string `json:"nominatim_url" yaml:"nominatim_url"`

	// CountryCodes scopes geocoding to a fixed country context
	// (comma-separated ISO codes, default "tr").
	CountryCodes string `json:"country_codes" yaml:"country_codes"`
}

// StoreConfig holds settings for the local business record store.
type StoreConfig struct {
	// DatabasePath is the SQLite database file (default "businesses.db").
	DatabasePath string `json:"database_path" yaml:"database_path"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Geocode GeocodeConfig `json:"geocode" yaml:"geocode"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
