package routing

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/Ambulancex/pkg"
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
)

// SearchResult. Vertices[0] = s, Vertices[len-1] = t, Edges[i] is the edge Vertices[i] -> Vertices[i+1].
type SearchResult struct {
	Vertices        []da.Index
	Edges           []da.Index
	Cost            float64 // sum of the cost function over Edges
	Dist            float64 // sum of the static edge lengths in meter
	NumSettledNodes int
}

type Astar struct {
	engine  *RoutingEngine
	storage *searchStorage

	numSettledNodes int
}

func NewAstar(engine *RoutingEngine, storage *searchStorage) *Astar {
	return &Astar{
		engine:  engine,
		storage: storage,
	}
}

// ShortestPathSearch. A* from s to t under cf, using pooled search buffers.
func (re *RoutingEngine) ShortestPathSearch(ctx context.Context, s, t da.Index, cf CostFunction) (*SearchResult, error) {
	storage := re.getSearchStorage()
	defer re.putSearchStorage(storage)

	return NewAstar(re, storage).ShortestPath(ctx, s, t, cf)
}

// ShortestPath. frontier is ordered by (g+h, vertex id). a vertex is final once extracted, because h
// is consistent for every cost function bounded below by the effective edge length.
func (us *Astar) ShortestPath(ctx context.Context, s, t da.Index, cf CostFunction) (*SearchResult, error) {
	graph := us.engine.graph
	if !graph.IsValidVertex(s) || !graph.IsValidVertex(t) {
		return nil, fmt.Errorf("%w: s=%d t=%d", ErrInvalidVertex, s, t)
	}

	if s == t {
		return &SearchResult{
			Vertices: []da.Index{s},
			Edges:    []da.Index{},
		}, nil
	}

	if !graph.VerticeUandVAreConnected(s, t) {
		return nil, ErrNoPathFound
	}

	sh := us.engine.heuristic(s, t)
	if sh >= pkg.INF_WEIGHT {
		return nil, ErrNoPathFound
	}
	shNode := da.NewPriorityQueueNode(sh, s)
	us.storage.pq.Insert(shNode)
	us.storage.Set(s, NewVertexInfo(0, sh, newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID), shNode))

	for !us.storage.pq.IsEmpty() {
		queryKey, _ := us.storage.pq.ExtractMin()
		uId := queryKey.GetItem()
		uInfo, _ := us.storage.Get(uId)
		uInfo.Scan()
		us.numSettledNodes++

		if uId == t {
			return us.buildSearchResult(s, t), nil
		}

		if us.engine.maxSettledNodes > 0 && us.numSettledNodes >= us.engine.maxSettledNodes {
			return nil, fmt.Errorf("%w: %d settled nodes", ErrSearchLimitExceeded, us.numSettledNodes)
		}

		if us.numSettledNodes%pkg.SEARCH_CONTEXT_CHECK_EVERY == 0 && util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		us.relaxOutEdges(uId, uInfo, t, cf)
	}

	return nil, ErrNoPathFound
}

// relaxOutEdges. out edges are relaxed in edge id order, only strict improvements replace a label,
// so among equal-cost parallel edges the lowest edge id is kept.
func (us *Astar) relaxOutEdges(uId da.Index, uInfo *VertexInfo, t da.Index, cf CostFunction) {
	us.engine.graph.ForOutEdgesOf(uId, func(outArc *da.OutEdge, edgeId da.Index) {
		vId := outArc.GetHead()

		vInfo, vAlreadyLabelled := us.storage.Get(vId)
		if vAlreadyLabelled && vInfo.IsScanned() {
			return
		}

		newCost := uInfo.GetCost() + cf.GetWeight(outArc)
		if newCost >= pkg.INF_WEIGHT {
			return
		}

		if vAlreadyLabelled && newCost >= vInfo.GetCost() {
			// newCost is not better, do nothing
			return
		}

		if vAlreadyLabelled {
			vInfo.UpdateCost(newCost)
			vInfo.UpdateParent(newVertexEdgePair(uId, edgeId))
			// is key already in the priority queue, decrease its key
			us.storage.pq.DecreaseKey(vInfo.GetHeapNode(), newCost+vInfo.heuristic)
			return
		}

		vh := us.engine.heuristic(vId, t)
		if vh >= pkg.INF_WEIGHT {
			// t is unreachable from v
			return
		}
		vhNode := da.NewPriorityQueueNode(newCost+vh, vId)
		us.storage.Set(vId, NewVertexInfo(newCost, vh, newVertexEdgePair(uId, edgeId), vhNode))
		us.storage.pq.Insert(vhNode)
	})
}

func (us *Astar) buildSearchResult(s, t da.Index) *SearchResult {
	edges := make([]da.Index, 0)
	vertices := []da.Index{t}

	curInfo, _ := us.storage.Get(t)
	for curInfo.GetParent().getVertex() != da.INVALID_VERTEX_ID {
		parent := curInfo.GetParent()
		edges = append(edges, parent.getEdge())
		vertices = append(vertices, parent.getVertex())
		curInfo, _ = us.storage.Get(parent.getVertex())
	}

	edges = util.ReverseG(edges)
	vertices = util.ReverseG(vertices)

	tInfo, _ := us.storage.Get(t)
	dist := 0.0
	for _, e := range edges {
		dist += us.engine.graph.GetOutEdge(e).GetLength()
	}

	return &SearchResult{
		Vertices:        vertices,
		Edges:           edges,
		Cost:            tInfo.GetCost(),
		Dist:            dist,
		NumSettledNodes: us.numSettledNodes,
	}
}
