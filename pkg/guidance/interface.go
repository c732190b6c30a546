package guidance

import "github.com/lintang-b-s/Ambulancex/pkg/datastructure"

type Graph interface {
	GetVertex(u datastructure.Index) *datastructure.Vertex
	GetOutEdge(e datastructure.Index) *datastructure.OutEdge
	ForOutEdgesOf(u datastructure.Index, handle func(e *datastructure.OutEdge, id datastructure.Index))
}
