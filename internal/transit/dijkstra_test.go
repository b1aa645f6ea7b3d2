package transit

import (
	"math"
	"reflect"
	"testing"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/catalog"
)

// lineGraph builds a small two-line network with a proximity interchange:
//
//	Line1: A - B - C        Line2: X - Y - Z
//	                 \______________/
//	            (B and Y share name + location)
func lineGraph(t *testing.T) *Graph {
	t.Helper()
	c := catalog.New([]*catalog.Station{
		station("A", "Alpha", "Line1", 1, true, 24.70, 46.60),
		station("B", "Midtown", "Line1", 2, true, 24.72, 46.62),
		station("C", "Gamma", "Line1", 3, true, 24.74, 46.64),
		station("X", "Xray", "Line2", 1, true, 24.76, 46.58),
		station("Y", "Midtown", "Line2", 2, true, 24.72, 46.62),
		station("Z", "Zulu", "Line2", 3, true, 24.68, 46.66),
	})
	return Build(c, testParams(), discardLogger())
}

func TestShortestPath_SingleLine(t *testing.T) {
	g := lineGraph(t)

	res, ok := g.ShortestPath("A", "C")
	if !ok {
		t.Fatal("no path found")
	}
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(res.Path, want) {
		t.Errorf("path = %v, want %v", res.Path, want)
	}

	ab, _ := findEdge(g, "A", "B")
	bc, _ := findEdge(g, "B", "C")
	if math.Abs(res.TotalMinutes-(ab.Weight+bc.Weight)) > 1e-9 {
		t.Errorf("total = %f, want %f", res.TotalMinutes, ab.Weight+bc.Weight)
	}
}

func TestShortestPath_AcrossTransfer(t *testing.T) {
	g := lineGraph(t)

	res, ok := g.ShortestPath("A", "Z")
	if !ok {
		t.Fatal("no path found")
	}
	want := []string{"A", "B", "Y", "Z"}
	if !reflect.DeepEqual(res.Path, want) {
		t.Errorf("path = %v, want %v", res.Path, want)
	}
}

func TestShortestPath_StartEqualsGoal(t *testing.T) {
	g := lineGraph(t)

	res, ok := g.ShortestPath("B", "B")
	if !ok {
		t.Fatal("degenerate path should succeed")
	}
	if !reflect.DeepEqual(res.Path, []string{"B"}) {
		t.Errorf("path = %v, want [B]", res.Path)
	}
	if res.TotalMinutes != 0 {
		t.Errorf("total = %f, want 0", res.TotalMinutes)
	}
}

func TestShortestPath_Disconnected(t *testing.T) {
	c := catalog.New([]*catalog.Station{
		station("A", "Alpha", "Line1", 1, true, 24.70, 46.60),
		station("B", "Beta", "Line1", 2, true, 24.71, 46.61),
		station("X", "Xray", "Line2", 1, true, 25.50, 47.50),
	})
	g := Build(c, testParams(), discardLogger())

	if res, ok := g.ShortestPath("A", "X"); ok {
		t.Fatalf("expected no path, got %v", res.Path)
	}
}

func TestShortestPath_UnknownStation(t *testing.T) {
	g := lineGraph(t)
	if _, ok := g.ShortestPath("A", "nope"); ok {
		t.Error("unknown goal should report no path")
	}
	if _, ok := g.ShortestPath("nope", "A"); ok {
		t.Error("unknown start should report no path")
	}
}

// The reported cost must never exceed any manually assembled alternative.
func TestShortestPath_TriangleConsistency(t *testing.T) {
	g := lineGraph(t)

	res, ok := g.ShortestPath("A", "Z")
	if !ok {
		t.Fatal("no path found")
	}

	// Manual route A -> B -> C then back C -> B -> Y -> Z.
	manual := 0.0
	hops := [][2]string{{"A", "B"}, {"B", "C"}, {"C", "B"}, {"B", "Y"}, {"Y", "Z"}}
	for _, h := range hops {
		e, ok := findEdge(g, h[0], h[1])
		if !ok {
			t.Fatalf("fixture missing edge %v", h)
		}
		manual += e.Weight
	}

	if res.TotalMinutes > manual+1e-9 {
		t.Errorf("solver cost %f exceeds manual path cost %f", res.TotalMinutes, manual)
	}
}

// Repeated runs over the same graph must give identical answers.
func TestShortestPath_Deterministic(t *testing.T) {
	g := lineGraph(t)

	first, ok := g.ShortestPath("X", "C")
	if !ok {
		t.Fatal("no path found")
	}
	for i := 0; i < 50; i++ {
		res, ok := g.ShortestPath("X", "C")
		if !ok {
			t.Fatal("no path found on repeat")
		}
		if !reflect.DeepEqual(res.Path, first.Path) || res.TotalMinutes != first.TotalMinutes {
			t.Fatalf("run %d differs: %v (%f) vs %v (%f)",
				i, res.Path, res.TotalMinutes, first.Path, first.TotalMinutes)
		}
	}
}
