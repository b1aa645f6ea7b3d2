package route

import (
	"github.com/Jana-Alrzoog/2025-GP-28/internal/catalog"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/transit"
)

// Step is one leg of a formatted itinerary. Ride steps carry the line,
// the boarding and alighting stations and the stop count; transfer steps
// carry the interchange station and the line being joined. Minutes is the
// leg's share of the total cost.
type Step struct {
	Kind    string       `json:"kind"`
	Line    catalog.Line `json:"line"`
	From    string       `json:"from,omitempty"`
	To      string       `json:"to,omitempty"`
	Stops   int          `json:"stops,omitempty"`
	At      string       `json:"at,omitempty"`
	Minutes float64      `json:"minutes"`
}

const (
	StepRide     = "ride"
	StepTransfer = "transfer"
)

// buildItinerary folds a station-id path into ride and transfer steps.
// A segment is a maximal run of stations on one line; crossing into a
// new line closes the ride at the station before the boundary and emits
// a transfer there. Interchange records without a line of their own
// never end a segment. A final segment with no hops, which happens when
// the path terminates right at the interchange, emits nothing.
func buildItinerary(g *transit.Graph, path []string) []Step {
	steps := []Step{}
	if len(path) < 2 {
		return steps
	}

	stations := make([]*catalog.Station, len(path))
	for i, id := range path {
		st, ok := g.Station(id)
		if !ok {
			return steps
		}
		stations[i] = st
	}

	currentLine := stations[0].LineID
	segStart := 0
	segMinutes := 0.0

	for i := 1; i < len(stations); i++ {
		st := stations[i]
		hop := hopMinutes(g, path[i-1], path[i])

		if st.LineID != "" && currentLine != "" && st.LineID != currentLine {
			steps = append(steps, rideStep(currentLine, stations[segStart], stations[i-1], i-1-segStart, segMinutes))
			steps = append(steps, Step{
				Kind:    StepTransfer,
				Line:    catalog.LineByID(st.LineID),
				At:      stations[i-1].DisplayName(),
				Minutes: hop,
			})
			currentLine = st.LineID
			segStart = i
			segMinutes = 0
			continue
		}

		if currentLine == "" {
			currentLine = st.LineID
		}
		segMinutes += hop
	}

	if last := len(stations) - 1; last > segStart {
		steps = append(steps, rideStep(currentLine, stations[segStart], stations[last], last-segStart, segMinutes))
	}
	return steps
}

func rideStep(lineID string, from, to *catalog.Station, stops int, minutes float64) Step {
	if stops < 1 {
		stops = 1
	}
	return Step{
		Kind:    StepRide,
		Line:    catalog.LineByID(lineID),
		From:    from.DisplayName(),
		To:      to.DisplayName(),
		Stops:   stops,
		Minutes: minutes,
	}
}

func hopMinutes(g *transit.Graph, from, to string) float64 {
	for _, e := range g.Neighbors(from) {
		if e.To == to {
			return e.Weight
		}
	}
	return 0
}
