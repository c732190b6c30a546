package landmark

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/lintang-b-s/Ambulancex/pkg"
	"github.com/lintang-b-s/Ambulancex/pkg/costfunction"
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
	"go.uber.org/zap"
)

const MAX_LANDMARKS = 64

var ErrTooManyLandmarks = errors.New("too much landmarks!, the maximum number of landmarks is 64")

// Landmark. ALT lower bounds computed on the effective static edge lengths. every traffic overlay cost
// is >= the effective length of its edge, so the bounds stay valid under any overlay.
type Landmark struct {
	lw        [][]float64 // distance from each landmarks to every vertices in graph
	vlw       [][]float64 // distance from all vertices to each landmarks
	landmarks []da.Index  // landmark vertex ids
}

func NewLandmark() *Landmark {
	return &Landmark{
		lw:        make([][]float64, 0),
		vlw:       make([][]float64, 0),
		landmarks: make([]da.Index, 0),
	}
}

/*
[1] Goldberg, A.V. and Harrelson, C. (2005) 'Computing the shortest path: A search meets graph theory', in Proceedings of the Sixteenth Annual ACM-SIAM Symposium on Discrete Algorithms (SODA '05), pp. 156-165.

planar landmark selection, section 7 of [1]: k sweep directions around the center of the graph, for each
direction the vertex farthest along it. the vertex closest to the center is added as the last landmark.
duplicates are dropped, so fewer than k+1 landmarks may be returned.
*/
func SelectLandmarks(k int, graph *da.Graph) []da.Index {
	n := graph.NumberOfVertices()
	if n == 0 || k <= 0 {
		return []da.Index{}
	}

	centerLat, centerLon := graph.GetBoundingBox().GetCenter()

	vsCopy := make([]*da.Vertex, n)
	copy(vsCopy, graph.GetVertices())

	seen := make(map[da.Index]struct{}, k+1)
	landmarks := make([]da.Index, 0, k+1)
	add := func(v da.Index) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		landmarks = append(landmarks, v)
	}

	thetaDif := 360.0 / float64(k)
	theta := 0.0
	for i := 0; i < k; i++ {
		// O(k * VlogV)
		thetaRad := util.DegreeToRadians(theta)
		sint := math.Sin(thetaRad)
		cost := math.Cos(thetaRad)
		sort.SliceStable(vsCopy, func(i, j int) bool {
			a := (vsCopy[i].GetLon()-centerLon)*cost + (vsCopy[i].GetLat()-centerLat)*sint
			b := (vsCopy[j].GetLon()-centerLon)*cost + (vsCopy[j].GetLat()-centerLat)*sint
			if a != b {
				return a < b
			}
			return vsCopy[i].GetID() < vsCopy[j].GetID()
		})
		add(vsCopy[n-1].GetID())

		theta += thetaDif
	}

	mid := da.Index(0)
	minMidDist := math.MaxFloat64
	for _, v := range graph.GetVertices() {
		// O(V)
		dist := geo.CalculateHaversineDistance(v.GetLat(), v.GetLon(), centerLat, centerLon)
		if dist < minMidDist {
			minMidDist = dist
			mid = v.GetID()
		}
	}
	add(mid)

	return landmarks
}

/*
preprocessing phase of A*, landmark, and triangle inequality (ALT) described in [1]

time complexity of ALT preprocessing:

O((n+m)logn * k), n=number of vertices,m=number of edges,k=number of landmarks
*/
func (lm *Landmark) PreprocessALT(k int, graph *da.Graph, logger *zap.Logger) error {
	if k > MAX_LANDMARKS {
		return ErrTooManyLandmarks
	}
	logger.Info("computing landmarks....", zap.Int("k", k))

	landmarks := SelectLandmarks(k, graph)
	numLandmarks := len(landmarks)
	n := graph.NumberOfVertices()

	lm.landmarks = landmarks
	lm.lw = make([][]float64, numLandmarks)
	lm.vlw = make([][]float64, n)
	for v := 0; v < n; v++ {
		lm.vlw[v] = make([]float64, numLandmarks)
	}

	rev := reverseAdjacency(graph)
	cf := costfunction.NewLengthCostFunction()

	lock := sync.Mutex{}
	wg := sync.WaitGroup{}
	for i, l := range landmarks {
		wg.Add(2)
		go func(il int, sid da.Index) {
			defer wg.Done()

			sps := NewDijkstra(graph, cf, nil).ShortestPath(sid) // O((n+m)logn)
			lock.Lock()
			lm.lw[il] = sps
			lock.Unlock()
		}(i, l)

		go func(il int, sid da.Index) {
			defer wg.Done()

			sps := NewDijkstra(graph, cf, rev).ShortestPath(sid) // O((n+m)logn)
			lock.Lock()
			for v := 0; v < n; v++ {
				lm.vlw[v][il] = sps[v]
			}
			lock.Unlock()
		}(i, l)
	}

	wg.Wait()
	logger.Info("done computing landmarks....", zap.Int("landmarks", numLandmarks))
	return nil
}

/*
[2] Bast, H. et al. (2016) "Route Planning in Transportation Networks," in Algorithm Engineering: Selected Results and Surveys, pp. 19-80.

LowerBound. tightest ALT lower bound of dist(u,t), section 6 of [1] / section 2.2 of [2]:

	max over landmarks L of  d(L,t) - d(L,u)  and  d(u,L) - d(t,L)

a term is used only when both of its distances are finite. if t reaches some landmark that u can't reach,
u can't reach t either and pkg.INF_WEIGHT is returned. with these rules the bound is consistent, not just
admissible.
*/
func (lm *Landmark) LowerBound(u, t da.Index) float64 {
	// O(k), k = number of landmarks
	lb := 0.0
	for i := range lm.landmarks {
		if lm.vlw[t][i] < pkg.INF_WEIGHT {
			if lm.vlw[u][i] >= pkg.INF_WEIGHT {
				return pkg.INF_WEIGHT
			}
			lb = math.Max(lb, lm.vlw[u][i]-lm.vlw[t][i])
		}

		if lm.lw[i][u] < pkg.INF_WEIGHT && lm.lw[i][t] < pkg.INF_WEIGHT {
			lb = math.Max(lb, lm.lw[i][t]-lm.lw[i][u])
		}
	}

	return lb
}

func (lm *Landmark) NumberOfLandmarks() int {
	return len(lm.landmarks)
}
