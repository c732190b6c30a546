package datastructure

import (
	"github.com/lintang-b-s/Ambulancex/pkg/util"
)

// RunKosaraju. runs kosaraju's algorithm to find strongly connected components (SCCs) of the road network
// and builds the condensation graph (DAG of SCCs). both dfs passes are iterative.
func (g *Graph) RunKosaraju() {
	n := g.NumberOfVertices()

	revAdj := make([][]Index, n)
	g.ForOutEdges(func(e *OutEdge, id Index) {
		revAdj[e.head] = append(revAdj[e.head], e.tail)
	})

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := 0; v < n; v++ {
		if !visited[v] {
			g.dfsForward(Index(v), &order, visited)
		}
	}

	order = util.ReverseG(order)

	// reset visited
	visited = make([]bool, n)
	sccs := make([]Index, n)
	numComponents := Index(0)

	for _, v := range order {
		if visited[v] {
			continue
		}
		component := dfsReverse(v, revAdj, visited)
		for _, node := range component {
			sccs[node] = numComponents
		}
		numComponents++
	}

	g.setSCCs(sccs, int(numComponents))
}

func (g *Graph) setSCCs(sccs []Index, numComponents int) {
	condAdj := make([][]Index, numComponents)
	seen := make([]map[Index]struct{}, numComponents)
	g.ForOutEdges(func(e *OutEdge, id Index) {
		from, to := sccs[e.tail], sccs[e.head]
		if from == to {
			return
		}
		if seen[from] == nil {
			seen[from] = make(map[Index]struct{})
		}
		if _, ok := seen[from][to]; ok {
			return
		}
		seen[from][to] = struct{}{}
		condAdj[from] = append(condAdj[from], to)
	})

	g.SetSCCs(sccs)
	g.SetSCCCondensationAdj(condAdj)
}

type dfsFrame struct {
	v    Index
	next Index // next outEdge id to explore
}

// dfsForward. appends vertices to output in post-order
func (g *Graph) dfsForward(s Index, output *[]Index, visited []bool) {
	stack := []dfsFrame{{v: s, next: g.vertices[s].firstOut}}
	visited[s] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		end := g.vertices[top.v+1].firstOut
		pushed := false
		for top.next < end {
			head := g.outEdges[top.next].head
			top.next++
			if !visited[head] {
				visited[head] = true
				stack = append(stack, dfsFrame{v: head, next: g.vertices[head].firstOut})
				pushed = true
				break
			}
		}
		if !pushed {
			*output = append(*output, top.v)
			stack = stack[:len(stack)-1]
		}
	}
}

func dfsReverse(s Index, revAdj [][]Index, visited []bool) []Index {
	component := make([]Index, 0, 10)
	stack := []Index{s}
	visited[s] = true
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, v)
		for _, u := range revAdj[v] {
			if !visited[u] {
				visited[u] = true
				stack = append(stack, u)
			}
		}
	}
	return component
}
