// Package config assembles runtime settings for the Voz Ativa client from
// three sources, later ones overriding earlier ones: built-in defaults, an
// optional JSON file (-c/-config), and command-line flags.
package config

import "time"

// UI mode selectors.
const (
	UIAuto  = "auto"
	UITUI   = "tui"
	UIPlain = "plain"
)

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: root of the Voz Ativa REST API.
//   - RequestTimeout: per-request deadline for API calls.
//   - TokenFile: path of the persisted session token ("" = default location).
//   - UI: "tui", "plain", or "auto" (pick by terminal detection).
//   - MapURL: public alert map opened by the map command.
//   - Latitude/Longitude: fixed device position; nil when not configured,
//     which the location capability reports as denied.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	TokenFile      string
	UI             string
	MapURL         string
	Latitude       *float64
	Longitude      *float64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.vozativa.com"
	c.RequestTimeout = 15 * time.Second
	c.TokenFile = ""
	c.UI = UIAuto
	c.MapURL = "https://voz-ativa-front.vercel.app/"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
