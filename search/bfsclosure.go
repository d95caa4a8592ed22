package search

import "container/heap"

// closurePath is the result of a successful bfsClosure run: the edge,
// corridor, and node ids to append to a candidate to reach the target,
// plus the total length of that path.
type closurePath struct {
	edgeIDs     []string
	corridorIDs []string
	nodeIDs     []string
	lengthMeters float64
}

type closureQueueItem struct {
	nodeID       string
	distance     float64
	edgeCount    int
	edgeIDs      []string
	corridorIDs  []string
	nodeIDs      []string
}

type closureQueue []*closureQueueItem

func (q closureQueue) Len() int            { return len(q) }
func (q closureQueue) Less(i, j int) bool  { return q[i].distance < q[j].distance }
func (q closureQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *closureQueue) Push(x any)         { *q = append(*q, x.(*closureQueueItem)) }
func (q *closureQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// bfsClosure runs a shortest-edge search (Dijkstra over SearchEdge length)
// from fromNodeID toward targetNodeID, constrained to maxTotalDistance and
// maxEdges. Reusing edges already visited by the candidate is allowed.
func bfsClosure(sg *SearchGraph, fromNodeID, targetNodeID string, maxTotalDistance float64, maxEdges int) (closurePath, bool) {
	if fromNodeID == targetNodeID {
		return closurePath{nodeIDs: []string{fromNodeID}}, true
	}

	best := make(map[string]float64)
	best[fromNodeID] = 0

	pq := &closureQueue{{nodeID: fromNodeID, distance: 0, edgeCount: 0, nodeIDs: []string{fromNodeID}}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*closureQueueItem)
		if d, ok := best[item.nodeID]; ok && item.distance > d {
			continue
		}
		if item.nodeID == targetNodeID {
			return closurePath{
				edgeIDs:      item.edgeIDs,
				corridorIDs:  item.corridorIDs,
				nodeIDs:      item.nodeIDs,
				lengthMeters: item.distance,
			}, true
		}
		if item.edgeCount >= maxEdges {
			continue
		}
		for _, edge := range sg.Adjacency[item.nodeID] {
			nd := item.distance + edge.LengthMeters
			if nd > maxTotalDistance {
				continue
			}
			if existing, ok := best[edge.TargetNodeID]; ok && existing <= nd {
				continue
			}
			best[edge.TargetNodeID] = nd
			heap.Push(pq, &closureQueueItem{
				nodeID:      edge.TargetNodeID,
				distance:    nd,
				edgeCount:   item.edgeCount + 1,
				edgeIDs:     append(append([]string(nil), item.edgeIDs...), edge.GraphEdgeID),
				corridorIDs: append(append([]string(nil), item.corridorIDs...), edge.CorridorID),
				nodeIDs:     append(append([]string(nil), item.nodeIDs...), edge.TargetNodeID),
			})
		}
	}

	return closurePath{}, false
}
