package transit

import "container/heap"

// PathResult is an ordered station-id path from start to goal inclusive,
// with the total weighted cost in minutes.
type PathResult struct {
	Path         []string
	TotalMinutes float64
}

type pqItem struct {
	id   string
	dist float64
}

type pq []pqItem

func (p pq) Len() int            { return len(p) }
func (p pq) Less(i, j int) bool  { return p[i].dist < p[j].dist }
func (p pq) Swap(i, j int)       { p[i], p[j] = p[j], p[i] }
func (p *pq) Push(x any)         { *p = append(*p, x.(pqItem)) }
func (p *pq) Pop() any {
	old := *p
	n := len(old)
	item := old[n-1]
	*p = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from one station id to another. It stops as
// soon as the goal is popped from the queue. Ties between equal-cost
// routes go to the earlier-discovered one: a tentative distance is only
// replaced on strict improvement. The second return is false when the two
// nodes are not connected or either id is unknown.
func (g *Graph) ShortestPath(from, to string) (*PathResult, bool) {
	if _, ok := g.stations[from]; !ok {
		return nil, false
	}
	if _, ok := g.stations[to]; !ok {
		return nil, false
	}

	dist := map[string]float64{from: 0}
	prev := map[string]string{}
	done := map[string]bool{}

	q := &pq{{id: from, dist: 0}}
	heap.Init(q)

	for q.Len() > 0 {
		cur := heap.Pop(q).(pqItem)
		if done[cur.id] {
			continue
		}
		done[cur.id] = true

		if cur.id == to {
			break
		}

		for _, e := range g.adj[cur.id] {
			nd := dist[cur.id] + e.Weight
			old, found := dist[e.To]
			if !found || nd < old {
				dist[e.To] = nd
				prev[e.To] = cur.id
				heap.Push(q, pqItem{id: e.To, dist: nd})
			}
		}
	}

	total, reached := dist[to]
	if !reached || !done[to] {
		return nil, false
	}

	path := []string{to}
	for cur := to; cur != from; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return &PathResult{Path: path, TotalMinutes: total}, true
}
