package config

import (
	"encoding/json"
	"os"

	"github.com/vozativa/vozativa/internal/flagx"
	"github.com/vozativa/vozativa/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero so the file only overrides what it
// mentions. timex.Duration accepts either "15s" strings or integer
// nanoseconds.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	TokenFile      *string         `json:"token_file"`
	UI             *string         `json:"ui"`
	MapURL         *string         `json:"map_url"`
	Latitude       *float64        `json:"latitude"`
	Longitude      *float64        `json:"longitude"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// No flag means no JSON stage. Read or unmarshal errors panic; the process
// cannot do anything sensible with a config file it cannot read.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.TokenFile != nil {
		cfg.TokenFile = *jc.TokenFile
	}
	if jc.UI != nil {
		cfg.UI = *jc.UI
	}
	if jc.MapURL != nil {
		cfg.MapURL = *jc.MapURL
	}
	if jc.Latitude != nil {
		cfg.Latitude = jc.Latitude
	}
	if jc.Longitude != nil {
		cfg.Longitude = jc.Longitude
	}
}
