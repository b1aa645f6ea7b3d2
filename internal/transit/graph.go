package transit

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/catalog"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/geo"
)

// EdgeKind distinguishes in-vehicle travel from line interchanges.
type EdgeKind int

const (
	Ride EdgeKind = iota
	Transfer
)

// Edge is one directed half of a symmetric connection. Weight is minutes
// and is always strictly positive.
type Edge struct {
	To     string
	Weight float64
	Kind   EdgeKind
}

// Params are the routing constants used to weight the graph.
type Params struct {
	TrainSpeedKmh     float64
	DwellMinutes      float64
	MinSegmentMinutes float64
	TransferMinutes   float64
	ProximityMeters   float64
}

// DefaultParams returns the production constants.
func DefaultParams() Params {
	return Params{
		TrainSpeedKmh:     40,
		DwellMinutes:      0.5,
		MinSegmentMinutes: 1.5,
		TransferMinutes:   5,
		ProximityMeters:   300,
	}
}

// Graph is the weighted undirected adjacency structure over station ids.
// It is built once and treated as immutable afterwards; reads need no
// locking.
type Graph struct {
	params   Params
	stations map[string]*catalog.Station
	adj      map[string][]Edge
}

// Build constructs the graph from the catalog: ride edges between
// consecutive stations of each line, explicit transfer edges from
// slash-composite platform codes, and proximity transfer edges between
// same-named stations that sit within ProximityMeters of each other.
func Build(c *catalog.Catalog, p Params, logger *slog.Logger) *Graph {
	g := &Graph{
		params:   p,
		stations: make(map[string]*catalog.Station, c.Len()),
		adj:      make(map[string][]Edge, c.Len()),
	}
	for _, st := range c.Stations() {
		g.stations[st.ID] = st
	}

	rides := g.addRideEdges(c)
	explicit := g.addExplicitTransfers(c)
	proximity := g.addProximityTransfers(c)

	logger.Info("transit graph built",
		"stations", len(g.stations),
		"ride_edges", rides,
		"explicit_transfers", explicit,
		"proximity_transfers", proximity,
	)
	return g
}

// Params returns the constants the graph was built with.
func (g *Graph) Params() Params { return g.params }

// Station returns the station behind a node id.
func (g *Graph) Station(id string) (*catalog.Station, bool) {
	st, ok := g.stations[id]
	return st, ok
}

// Neighbors returns the adjacency list of a node. Callers must not mutate.
func (g *Graph) Neighbors(id string) []Edge { return g.adj[id] }

// Len reports the node count.
func (g *Graph) Len() int { return len(g.stations) }

func (g *Graph) addEdge(from, to string, weight float64, kind EdgeKind) {
	g.adj[from] = append(g.adj[from], Edge{To: to, Weight: weight, Kind: kind})
	g.adj[to] = append(g.adj[to], Edge{To: from, Weight: weight, Kind: kind})
}

// addRideEdges connects consecutive stations of each line in sequence
// order. Lines are visited in order of first appearance in the catalog so
// edge insertion is reproducible.
func (g *Graph) addRideEdges(c *catalog.Catalog) int {
	byLine := make(map[string][]*catalog.Station)
	var lineOrder []string
	for _, st := range c.Stations() {
		if st.LineID == "" {
			continue
		}
		if _, seen := byLine[st.LineID]; !seen {
			lineOrder = append(lineOrder, st.LineID)
		}
		byLine[st.LineID] = append(byLine[st.LineID], st)
	}

	count := 0
	for _, line := range lineOrder {
		group := byLine[line]
		// Records without an ordinal sort last; the sort is stable so
		// they keep catalog order among themselves.
		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i], group[j]
			if a.HasSeq != b.HasSeq {
				return a.HasSeq
			}
			return a.Seq < b.Seq
		})
		for i := 1; i < len(group); i++ {
			a, b := group[i-1], group[i]
			g.addEdge(a.ID, b.ID, g.segmentMinutes(a, b), Ride)
			count++
		}
	}
	return count
}

// segmentMinutes weights a ride edge: distance at train speed plus a
// per-stop dwell, floored so coincidentally colocated stops never produce
// a zero-weight edge.
func (g *Graph) segmentMinutes(a, b *catalog.Station) float64 {
	travel := geo.HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon) / g.params.TrainSpeedKmh * 60
	w := travel + g.params.DwellMinutes
	if w < g.params.MinSegmentMinutes {
		w = g.params.MinSegmentMinutes
	}
	return w
}

// addExplicitTransfers handles composite platform codes like "1B3/2B2":
// a single physical point serving several line segments. The composite
// record is linked to every named sub-code that exists as a real station,
// and the sub-codes are linked pairwise.
func (g *Graph) addExplicitTransfers(c *catalog.Catalog) int {
	count := 0
	for _, st := range c.Stations() {
		if !strings.Contains(st.ID, "/") {
			continue
		}
		var subs []string
		for _, code := range strings.Split(st.ID, "/") {
			if _, ok := g.stations[code]; ok {
				subs = append(subs, code)
			}
		}
		for _, code := range subs {
			g.addEdge(st.ID, code, g.params.TransferMinutes, Transfer)
			count++
		}
		for i := 0; i < len(subs); i++ {
			for j := i + 1; j < len(subs); j++ {
				g.addEdge(subs[i], subs[j], g.params.TransferMinutes, Transfer)
				count++
			}
		}
	}
	return count
}

// addProximityTransfers links stations that share their primary lookup
// key and sit within the proximity threshold: interchanges recorded as
// one station per line under the same display name. Grouping on the first
// key only is a known heuristic limitation carried over from the data.
func (g *Graph) addProximityTransfers(c *catalog.Catalog) int {
	byKey := make(map[string][]*catalog.Station)
	var keyOrder []string
	for _, st := range c.Stations() {
		key := st.LookupKeys[0]
		if _, seen := byKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = append(byKey[key], st)
	}

	count := 0
	for _, key := range keyOrder {
		group := byKey[key]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon) <= g.params.ProximityMeters {
					g.addEdge(a.ID, b.ID, g.params.TransferMinutes, Transfer)
					count++
				}
			}
		}
	}
	return count
}
