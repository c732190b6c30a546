package datastructure

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
)

// WriteGraph. write graph as bzip2 compressed text:
//
//	numVertices(with sentinel) numEdges numSCCs
//	firstOut id lat lon osmId         (numVertices lines)
//	edgeId oriEdgeId tail head dist   (numEdges lines)
//	sccs of every vertex              (1 line, only if numSCCs > 0)
//	condensation adjacency of scc i   (numSCCs lines, "empty" for no successor)
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	numSCCs := 0
	if g.HasSCCs() {
		numSCCs = g.NumberOfSCCs()
	}

	fmt.Fprintf(w, "%d %d %d\n", len(g.vertices), g.NumberOfEdges(), numSCCs)

	for vId := 0; vId < len(g.vertices); vId++ {
		v := g.vertices[vId]
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)

		fmt.Fprintf(w, "%d %d %s %s %d\n", v.firstOut, v.id, latF, lonF, v.osmId)
	}

	for _, e := range g.outEdges {
		distF := strconv.FormatFloat(e.dist, 'f', -1, 64)
		fmt.Fprintf(w, "%d %d %d %d %s\n", e.edgeId, e.oriEdgeId, e.tail, e.head, distF)
	}

	if numSCCs > 0 {
		// write sccs
		for i := 0; i < len(g.sccs); i++ {
			fmt.Fprintf(w, "%d", g.sccs[i])
			if i < len(g.sccs)-1 {
				fmt.Fprintf(w, " ")
			}
		}
		fmt.Fprintf(w, "\n")

		// write scc condensation
		for i := 0; i < len(g.sccCondensationAdj); i++ {
			for j := 0; j < len(g.sccCondensationAdj[i]); j++ {
				fmt.Fprintf(w, "%d", g.sccCondensationAdj[i][j])
				if j < len(g.sccCondensationAdj[i])-1 {
					fmt.Fprintf(w, " ")
				}
			}
			if len(g.sccCondensationAdj[i]) == 0 {
				fmt.Fprintf(w, "empty")
			}
			fmt.Fprintf(w, "\n")
		}
	}

	return w.Flush()
}

func fields(s string) []string {
	return strings.Fields(s)
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}

	tokens := fields(line)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("graph header: expected 3 fields, got %d", len(tokens))
	}

	numVertices, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}
	numSCCs, err := ParseIndex(tokens[2])
	if err != nil {
		return nil, err
	}

	vertices := make([]*Vertex, numVertices)
	for i := 0; i < int(numVertices); i++ {
		vertexLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		vertices[i], err = parseVertex(vertexLine)
		if err != nil {
			return nil, err
		}
	}

	outEdges := make([]*OutEdge, numEdges)
	for i := 0; i < int(numEdges); i++ {
		outEdgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		outEdges[i], err = parseOutEdge(outEdgeLine)
		if err != nil {
			return nil, err
		}
	}

	g := NewGraph(vertices, outEdges)
	if numSCCs == 0 {
		return g, nil
	}

	// read sccs
	line, err = util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens = fields(line)
	if len(tokens) != g.NumberOfVertices() {
		return nil, fmt.Errorf("expected %d sccs, got %d", g.NumberOfVertices(), len(tokens))
	}
	sccs := make([]Index, len(tokens))
	for i, token := range tokens {
		sccs[i], err = ParseIndex(token)
		if err != nil {
			return nil, err
		}
	}

	// read scc condensation
	adj := make([][]Index, numSCCs)
	for i := 0; i < int(numSCCs); i++ {
		line, err = util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		adj[i] = make([]Index, 0)
		if strings.TrimSpace(line) == "empty" {
			continue
		}
		for _, token := range fields(line) {
			sccId, err := ParseIndex(token)
			if err != nil {
				return nil, err
			}
			adj[i] = append(adj[i], sccId)
		}
	}

	g.SetSCCs(sccs)
	g.SetSCCCondensationAdj(adj)
	return g, nil
}

func parseVertex(line string) (*Vertex, error) {
	tokens := fields(line)
	if len(tokens) != 5 {
		return nil, fmt.Errorf("vertex: expected 5 fields, got %d", len(tokens))
	}
	firstOut, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	id, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}
	lat, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return nil, fmt.Errorf("lat: %w", err)
	}
	lon, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return nil, fmt.Errorf("lon: %w", err)
	}
	osmId, err := strconv.ParseInt(tokens[4], 10, 64)
	if err != nil {
		return nil, err
	}

	v := NewVertex(lat, lon, id)
	v.SetFirstOut(firstOut)
	v.SetOsmId(osmId)
	return v, nil
}

func parseOutEdge(line string) (*OutEdge, error) {
	tokens := fields(line)
	if len(tokens) != 5 {
		return nil, fmt.Errorf("edge: expected 5 fields, got %d", len(tokens))
	}
	edgeId, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	oriEdgeId, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}
	tail, err := ParseIndex(tokens[2])
	if err != nil {
		return nil, err
	}
	head, err := ParseIndex(tokens[3])
	if err != nil {
		return nil, err
	}
	dist, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return nil, fmt.Errorf("dist: %w", err)
	}

	e := NewOutEdge(edgeId, tail, head, dist)
	e.SetOriginalEdgeId(oriEdgeId)
	return e, nil
}
