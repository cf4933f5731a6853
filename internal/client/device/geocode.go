package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vozativa/vozativa/internal/logging"
)

// DefaultNominatimURL is the public OpenStreetMap reverse-geocoding endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder resolves coordinates to an address line via the
// Nominatim reverse API.
type NominatimGeocoder struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

func NewNominatimGeocoder(baseURL string, timeout time.Duration, log logging.Logger) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if log == nil {
		log = logging.Nop()
	}
	return &NominatimGeocoder{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, pos Position) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(pos.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(pos.Longitude, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	// Nominatim usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "vozativa-client")

	resp, err := g.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode: %s", resp.Status)
	}

	var payload struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}
	g.log.Debug(ctx, "reverse geocoded", "address", payload.DisplayName)
	return payload.DisplayName, nil
}
