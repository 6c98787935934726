package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/captian10/adhan-engine/internal/model"
)

// HTTPGeocoder reverse-geocodes against a Nominatim-compatible endpoint.
type HTTPGeocoder struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewHTTPGeocoder(baseURL string) *HTTPGeocoder {
	return &HTTPGeocoder{
		BaseURL:   baseURL,
		UserAgent: "adhan-engine/1.0",
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Geocoder = (*HTTPGeocoder)(nil)

type reverseResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
	} `json:"address"`
}

func (g *HTTPGeocoder) ReverseName(ctx context.Context, coords model.Coordinates) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", coords.Lat))
	q.Set("lon", fmt.Sprintf("%f", coords.Lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	// prefer city, then the larger containers, like the host app did
	for _, name := range []string{body.Address.City, body.Address.Town, body.Address.Village, body.Address.State} {
		if name != "" {
			return name, nil
		}
	}
	return "", nil
}
