package config

// Config is the scan configuration document: keyword lists, scoring weights
// and shared source settings. The schema is fixed and versionless.
type Config struct {
	Scoring  map[string]int `yaml:"scoring"`
	Keywords Keywords       `yaml:"keywords"`
	Sources  Sources        `yaml:"sources"`
}

// Keywords holds the four categorized phrase lists the matcher works from.
type Keywords struct {
	CDPVendors     []string `yaml:"cdp_vendors"`
	TargetPersonas []string `yaml:"target_personas"`
	CDPRelated     []string `yaml:"cdp_related"`
	DataTech       []string `yaml:"data_tech"`
}

// Sources holds settings shared by every harvester adapter.
type Sources struct {
	Timeout   int    `yaml:"timeout"` // seconds
	UserAgent string `yaml:"user_agent"`
}
