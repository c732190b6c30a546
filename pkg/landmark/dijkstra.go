package landmark

import (
	"github.com/lintang-b-s/Ambulancex/pkg"
	"github.com/lintang-b-s/Ambulancex/pkg/costfunction"
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
)

// reverseArc. edge tail -> head stored at head
type reverseArc struct {
	tail da.Index
	edge *da.OutEdge
}

// reverseAdjacency. in-edges of every vertex, in edge id order
func reverseAdjacency(graph *da.Graph) [][]reverseArc {
	rev := make([][]reverseArc, graph.NumberOfVertices())
	graph.ForOutEdges(func(e *da.OutEdge, id da.Index) {
		rev[e.GetHead()] = append(rev[e.GetHead()], reverseArc{tail: e.GetTail(), edge: e})
	})
	return rev
}

// Dijkstra. one-to-all shortest paths on the forward graph, or all-to-one when reverse is set.
type Dijkstra struct {
	graph   *da.Graph
	cf      costfunction.CostFunction
	reverse [][]reverseArc

	dist      []float64
	heapNodes []*da.PriorityQueueNode[da.Index]
	pq        *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph, cf costfunction.CostFunction, reverse [][]reverseArc) *Dijkstra {
	return &Dijkstra{
		graph:     graph,
		cf:        cf,
		reverse:   reverse,
		heapNodes: make([]*da.PriorityQueueNode[da.Index], graph.NumberOfVertices()),
		pq:        da.NewFourAryHeap[da.Index](),
	}
}

// ShortestPath. distance from s to every vertex (to s from every vertex on the reverse graph).
// unreachable vertices get pkg.INF_WEIGHT.
func (us *Dijkstra) ShortestPath(s da.Index) []float64 {
	n := us.graph.NumberOfVertices()
	us.dist = make([]float64, n)
	for v := 0; v < n; v++ {
		us.dist[v] = pkg.INF_WEIGHT
	}
	us.pq.Clear()
	us.numSettledNodes = 0

	us.dist[s] = 0
	us.heapNodes[s] = da.NewPriorityQueueNode(0, s)
	us.pq.Insert(us.heapNodes[s])

	for !us.pq.IsEmpty() {
		queryKey, _ := us.pq.ExtractMin()
		uId := queryKey.GetItem()
		us.numSettledNodes++

		if us.reverse == nil {
			us.graph.ForOutEdgesOf(uId, func(outArc *da.OutEdge, _ da.Index) {
				us.relax(uId, outArc.GetHead(), outArc)
			})
		} else {
			for _, arc := range us.reverse[uId] {
				us.relax(uId, arc.tail, arc.edge)
			}
		}
	}

	return us.dist
}

func (us *Dijkstra) relax(uId, vId da.Index, e *da.OutEdge) {
	newDist := us.dist[uId] + us.cf.GetWeight(e)
	if newDist >= pkg.INF_WEIGHT || newDist >= us.dist[vId] {
		return
	}

	vAlreadyLabelled := us.dist[vId] < pkg.INF_WEIGHT
	us.dist[vId] = newDist
	if vAlreadyLabelled && us.heapNodes[vId].GetPos() >= 0 {
		// is key already in the priority queue, decrease its key
		_ = us.pq.DecreaseKey(us.heapNodes[vId], newDist)
		return
	}
	us.heapNodes[vId] = da.NewPriorityQueueNode(newDist, vId)
	us.pq.Insert(us.heapNodes[vId])
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}
