// Package eta estimates last-mile walking and driving times with the
// Google Distance Matrix API.
package eta

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/sync/errgroup"
)

const distanceMatrixURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

// Estimate is one travel-mode result.
type Estimate struct {
	DurationMin  int    `json:"duration_min"`
	DurationSec  int    `json:"duration_sec"`
	DurationText string `json:"duration_text"`
	DistanceM    int    `json:"distance_m"`
	DistanceText string `json:"distance_text"`
}

// Estimates holds both modes. Either may be nil when the API had no
// answer for that mode.
type Estimates struct {
	Walk  *Estimate `json:"walk"`
	Drive *Estimate `json:"drive"`
}

type Client struct {
	apiKey     string
	httpClient *http.Client
	cache      gcache.Cache
	logger     *slog.Logger

	baseURL string
	now     func() time.Time
}

func New(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      gcache.New(1024).LRU().Expiration(2 * time.Minute).Build(),
		logger:     logger,
		baseURL:    distanceMatrixURL,
		now:        time.Now,
	}
}

// WalkAndDrive fetches both modes concurrently. Each mode is best
// effort: a mode that fails logs a warning and comes back nil, the
// other still counts. Driving is traffic-aware via departure_time.
func (c *Client) WalkAndDrive(ctx context.Context, originLat, originLon, destLat, destLon float64) Estimates {
	if c.apiKey == "" {
		return Estimates{}
	}

	key := cacheKey(originLat, originLon, destLat, destLon)
	if v, err := c.cache.Get(key); err == nil {
		if est, ok := v.(Estimates); ok {
			return est
		}
	}

	var out Estimates
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		est, err := c.fetchMode(ctx, originLat, originLon, destLat, destLon, "walking", false)
		if err != nil {
			c.logger.Warn("walking estimate failed", "error", err)
			return nil
		}
		out.Walk = est
		return nil
	})
	g.Go(func() error {
		est, err := c.fetchMode(ctx, originLat, originLon, destLat, destLon, "driving", true)
		if err != nil {
			c.logger.Warn("driving estimate failed", "error", err)
			return nil
		}
		out.Drive = est
		return nil
	})
	g.Wait()

	c.cache.Set(key, out)
	return out
}

// cacheKey quantizes the origin to ~11 m and the destination to full
// precision of the station table, so riders loitering at the same corner
// share an entry without conflating distinct stations.
func cacheKey(originLat, originLon, destLat, destLon float64) string {
	return fmt.Sprintf("%.4f,%.4f|%.6f,%.6f", originLat, originLon, destLat, destLon)
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int    `json:"value"`
				Text  string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Value int    `json:"value"`
				Text  string `json:"text"`
			} `json:"duration"`
			DurationInTraffic *struct {
				Value int    `json:"value"`
				Text  string `json:"text"`
			} `json:"duration_in_traffic"`
		} `json:"elements"`
	} `json:"rows"`
}

func (c *Client) fetchMode(ctx context.Context, oLat, oLon, dLat, dLon float64, mode string, traffic bool) (*Estimate, error) {
	params := url.Values{
		"origins":      {fmt.Sprintf("%f,%f", oLat, oLon)},
		"destinations": {fmt.Sprintf("%f,%f", dLat, dLon)},
		"mode":         {mode},
		"key":          {c.apiKey},
		"language":     {"ar"},
		"region":       {"sa"},
		"units":        {"metric"},
	}
	if traffic {
		params.Set("departure_time", strconv.FormatInt(c.now().Unix(), 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
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

	var body matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.Status != "OK" || len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("api status %s", body.Status)
	}

	el := body.Rows[0].Elements[0]
	if el.Status != "OK" {
		return nil, fmt.Errorf("element status %s", el.Status)
	}

	dur := struct {
		Value int
		Text  string
	}{el.Duration.Value, el.Duration.Text}
	// Traffic-aware duration only comes back for driving with a
	// departure time set.
	if traffic && el.DurationInTraffic != nil {
		dur.Value = el.DurationInTraffic.Value
		dur.Text = el.DurationInTraffic.Text
	}

	return &Estimate{
		DurationMin:  int(float64(dur.Value)/60 + 0.5),
		DurationSec:  dur.Value,
		DurationText: dur.Text,
		DistanceM:    el.Distance.Value,
		DistanceText: el.Distance.Text,
	}, nil
}
