package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Station is one routable station record. ID doubles as the graph node
// key. LineID may be empty for multi-line interchange records; Seq may be
// absent (HasSeq false) when the source record carries no ordinal.
type Station struct {
	ID         string   `json:"id"`
	NameEN     string   `json:"name_en"`
	NameAR     string   `json:"name_ar"`
	LineID     string   `json:"line_id"`
	Seq        int      `json:"seq,omitempty"`
	HasSeq     bool     `json:"-"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	LookupKeys []string `json:"-"`
}

// DisplayName returns the name shown in itineraries, preferring the
// English name and falling back to Arabic, then the code.
func (s *Station) DisplayName() string {
	if s.NameEN != "" {
		return s.NameEN
	}
	if s.NameAR != "" {
		return s.NameAR
	}
	return s.ID
}

// Catalog is the normalized in-memory station table. Load order is
// preserved so that every downstream iteration is deterministic.
type Catalog struct {
	stations []*Station
	byID     map[string]*Station
}

// New builds a catalog from already-constructed stations. Stations without
// lookup keys get them derived from their names and code; stations that
// still end up with no keys are dropped, as are duplicate ids (first
// record wins).
func New(stations []*Station) *Catalog {
	c := &Catalog{byID: make(map[string]*Station)}
	for _, st := range stations {
		if len(st.LookupKeys) == 0 {
			st.LookupKeys = buildLookupKeys(st.NameEN, st.NameAR, st.ID)
		}
		if len(st.LookupKeys) == 0 {
			continue
		}
		if _, dup := c.byID[st.ID]; dup {
			continue
		}
		c.stations = append(c.stations, st)
		c.byID[st.ID] = st
	}
	return c
}

// Stations returns all stations in load order. Callers must not mutate.
func (c *Catalog) Stations() []*Station { return c.stations }

// ByID looks a station up by its code.
func (c *Catalog) ByID(id string) (*Station, bool) {
	st, ok := c.byID[id]
	return st, ok
}

// Len reports the number of retained stations.
func (c *Catalog) Len() int { return len(c.stations) }

// rawRecord mirrors the open-data station dump. Coordinates arrive either
// as a geo_point_2d object or nested under geoshape as [lon, lat]; the
// sequence ordinal arrives as a number or a string, or not at all.
type rawRecord struct {
	Code   string          `json:"metrostationcode"`
	NameEN string          `json:"metrostationname"`
	NameAR string          `json:"metrostationnamear"`
	Line   string          `json:"metroline"`
	Seq    json.RawMessage `json:"stationseq"`

	GeoPoint *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"geo_point_2d"`

	GeoShape *struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"geoshape"`
}

// Load reads the raw station dump at path and builds the catalog.
// Records without usable coordinates are skipped with a warning; an
// unreadable file is an error the caller must treat as fatal.
func Load(path string, logger *slog.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stations file: %w", err)
	}

	var records []rawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse stations file: %w", err)
	}

	var stations []*Station
	skipped := 0
	for _, rec := range records {
		st, ok := recordToStation(rec)
		if !ok {
			skipped++
			logger.Warn("skipping station record without coordinates", "code", rec.Code)
			continue
		}
		stations = append(stations, st)
	}

	c := New(stations)
	logger.Info("station catalog loaded",
		"stations", c.Len(),
		"skipped", skipped,
	)
	return c, nil
}

func recordToStation(rec rawRecord) (*Station, bool) {
	lat, lon, ok := recordLatLon(rec)
	if !ok {
		return nil, false
	}

	st := &Station{
		ID:     rec.Code,
		NameEN: rec.NameEN,
		NameAR: rec.NameAR,
		LineID: rec.Line,
		Lat:    lat,
		Lon:    lon,
	}
	if seq, ok := coerceSeq(rec.Seq); ok {
		st.Seq = seq
		st.HasSeq = true
	}
	return st, true
}

// recordLatLon prefers geo_point_2d and falls back to the geoshape
// geometry, whose coordinates are [lon, lat].
func recordLatLon(rec rawRecord) (lat, lon float64, ok bool) {
	if rec.GeoPoint != nil {
		return rec.GeoPoint.Lat, rec.GeoPoint.Lon, true
	}
	if rec.GeoShape != nil && len(rec.GeoShape.Geometry.Coordinates) >= 2 {
		coords := rec.GeoShape.Geometry.Coordinates
		return coords[1], coords[0], true
	}
	return 0, 0, false
}

// coerceSeq accepts a JSON number or numeric string ordinal.
func coerceSeq(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// buildLookupKeys normalizes both display names and the code, deduplicated
// in that order. The first key is the grouping key for proximity-transfer
// detection, so order matters.
func buildLookupKeys(nameEN, nameAR, code string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, raw := range []string{nameEN, nameAR, code} {
		k := Normalize(raw)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// HasKey reports whether the normalized query matches one of the
// station's lookup keys exactly.
func (s *Station) HasKey(normalized string) bool {
	for _, k := range s.LookupKeys {
		if k == normalized {
			return true
		}
	}
	return false
}
