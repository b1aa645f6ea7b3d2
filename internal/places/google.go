// Package places resolves free-text place queries to coordinates using
// the Google Places Text Search API with a Geocoding API fallback.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bluele/gcache"
)

const (
	textSearchURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	geocodeURL    = "https://maps.googleapis.com/maps/api/geocode/json"
)

// Place is a resolved point of interest.
type Place struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name"`
	Address string  `json:"formatted_address"`
}

// Client calls the Google Maps web services. A client with no API key is
// valid and resolves nothing, which keeps the rest of the pipeline
// working in development environments.
type Client struct {
	apiKey     string
	httpClient *http.Client
	cache      gcache.Cache
	logger     *slog.Logger

	textSearchURL string
	geocodeURL    string
}

func New(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		apiKey:        apiKey,
		httpClient:    &http.Client{Timeout: 8 * time.Second},
		cache:         gcache.New(512).LRU().Expiration(15 * time.Minute).Build(),
		logger:        logger,
		textSearchURL: textSearchURL,
		geocodeURL:    geocodeURL,
	}
}

// placeAliases maps colloquial names for well-known Riyadh destinations
// to queries the Google APIs resolve reliably. Checked in order so the
// more specific phrasings win.
var placeAliases = []struct{ match, query string }{
	{"البوليفارد سيتي", "Riyadh Boulevard City"},
	{"بوليفارد سيتي", "Riyadh Boulevard City"},
	{"البوليفارد", "Riyadh Boulevard City"},
	{"بوليفارد", "Riyadh Boulevard City"},
	{"واجهة الرياض", "Riyadh Front"},
	{"الواجهة", "Riyadh Front"},
	{"المطار", "King Khalid International Airport"},
	{"جامعة الملك سعود", "King Saud University"},
	{"الرياض بارك", "Riyadh Park Mall"},
}

// fillerWords are leading verbs and particles stripped as whole words,
// e.g. "ابي اروح البوليفارد" keeps only the place name.
var fillerWords = map[string]bool{
	"ابي": true, "أبي": true, "ابغى": true, "أبغى": true, "ودي": true,
	"اروح": true, "أروح": true, "روح": true, "اذهب": true, "أذهب": true,
	"ل": true, "لـ": true, "الى": true, "إلى": true,
}

// NormalizePlace strips filler words and applies the alias table. The
// original text is returned when cleaning would leave nothing.
func NormalizePlace(text string) string {
	original := strings.TrimSpace(text)
	if original == "" {
		return ""
	}

	var kept []string
	for _, w := range strings.Fields(strings.ToLower(original)) {
		if !fillerWords[w] {
			kept = append(kept, w)
		}
	}
	cleaned := strings.Join(kept, " ")

	for _, a := range placeAliases {
		if strings.Contains(cleaned, a.match) {
			return a.query
		}
	}

	if cleaned == "" {
		return original
	}
	return cleaned
}

// ResolvePlace resolves a free-text query to coordinates. Text Search is
// tried first because it handles landmark names better; Geocoding is the
// fallback. A nil place with a nil error means not found.
func (c *Client) ResolvePlace(ctx context.Context, query string) (*Place, error) {
	if c.apiKey == "" {
		return nil, nil
	}
	q := NormalizePlace(query)
	if q == "" {
		return nil, nil
	}

	if v, err := c.cache.Get(q); err == nil {
		p, _ := v.(*Place)
		return p, nil
	}

	p, err := c.textSearch(ctx, q)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p, err = c.geocode(ctx, q)
		if err != nil {
			return nil, err
		}
	}

	c.cache.Set(q, p)
	return p, nil
}

type mapsResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name     string `json:"name"`
		Address  string `json:"formatted_address"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *Client) textSearch(ctx context.Context, query string) (*Place, error) {
	params := url.Values{
		"query":    {query},
		"key":      {c.apiKey},
		"language": {"ar"},
		"region":   {"sa"},
	}
	resp, err := c.fetch(ctx, c.textSearchURL, params)
	if err != nil {
		return nil, fmt.Errorf("places text search: %w", err)
	}
	if resp == nil {
		return nil, nil
	}

	r := resp.Results[0]
	name := strings.TrimSpace(r.Name)
	address := strings.TrimSpace(r.Address)
	if address == "" {
		address = query
	}
	if name == "" {
		name = address
	}
	return &Place{
		Lat:     r.Geometry.Location.Lat,
		Lon:     r.Geometry.Location.Lng,
		Name:    name,
		Address: address,
	}, nil
}

func (c *Client) geocode(ctx context.Context, query string) (*Place, error) {
	params := url.Values{
		"address":  {query},
		"key":      {c.apiKey},
		"language": {"ar"},
		"region":   {"sa"},
	}
	resp, err := c.fetch(ctx, c.geocodeURL, params)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	if resp == nil {
		return nil, nil
	}

	r := resp.Results[0]
	address := strings.TrimSpace(r.Address)
	if address == "" {
		address = query
	}
	// Geocode results often carry no name; the address stands in.
	return &Place{
		Lat:     r.Geometry.Location.Lat,
		Lon:     r.Geometry.Location.Lng,
		Name:    address,
		Address: address,
	}, nil
}

// fetch runs one Maps API request. A nil response with a nil error means
// the service answered but found nothing.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) (*mapsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body mapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	switch body.Status {
	case "OK":
		if len(body.Results) == 0 {
			return nil, nil
		}
		return &body, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("api status %s", body.Status)
	}
}
