package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in scan configuration. A config file overrides
// it; without one these tables drive the whole run.
func Default() *Config {
	return &Config{
		Scoring: map[string]int{
			"hiring_target_persona_with_cdp_keywords": 5,
			"executive_move_target_persona":           4,
			"explicit_cdp_vendor_mention":             4,
			"unified_data_concepts":                   3,
			"funding_or_expansion":                    2,
			"technology_mention":                      2,
		},
		Keywords: Keywords{
			CDPVendors: []string{
				"segment", "mparticle", "rudderstack", "tealium",
				"adobe real-time cdp", "blueconic", "lytics", "treasure data",
			},
			TargetPersonas: []string{
				"director data platform", "vp marketing", "growth marketing manager",
				"cto", "vp engineering", "director security", "marketing ops",
				"chief marketing officer", "chief digital officer",
				"vp product", "head of analytics", "head of data",
			},
			CDPRelated: []string{
				"customer data platform", "cdp", "data integration", "customer 360",
				"unified data", "real-time personalization", "data orchestration",
				"customer journey", "omnichannel", "first-party data",
			},
			DataTech: []string{
				"snowflake", "dbt", "fivetran", "bigquery",
				"redshift", "databricks", "data lakehouse", "data warehouse",
			},
		},
		Sources: Sources{
			Timeout:   10,
			UserAgent: "cdpscan/1.0 (research tool)",
		},
	}
}

// Load reads the scan configuration file at path and overlays it on the
// defaults. A missing file is not an error: the defaults are used and a
// warning logged.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Scan config file not found, using defaults", "path", path)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read scan config: %w", err)
	}

	// Unmarshal over the prefilled struct: scalar and map entries override
	// per key, list values replace the default list wholesale.
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse scan config: %w", err)
	}

	slog.Info("Scan configuration loaded", "path", path)

	return config, nil
}

// Lists returns the keyword lists keyed by their registry names.
func (k Keywords) Lists() map[string][]string {
	return map[string][]string{
		"cdp_vendors":     k.CDPVendors,
		"target_personas": k.TargetPersonas,
		"cdp_related":     k.CDPRelated,
		"data_tech":       k.DataTech,
	}
}
