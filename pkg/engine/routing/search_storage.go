package routing

import (
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
)

/*
searchStorage. labels and priority queue of one A* search.
labels are kept in a map instead of a slice sized NumberOfVertices: A* towards a nearby hospital only
touches a small part of the graph, and the storage is pooled and reused between searches.
*/
type searchStorage struct {
	info map[da.Index]*VertexInfo
	pq   *da.MinHeap[da.Index]
}

func newSearchStorage() *searchStorage {
	pq := da.NewFourAryHeap[da.Index]()
	pq.Preallocate(SEARCH_INFO_SIZE)
	return &searchStorage{
		info: make(map[da.Index]*VertexInfo, SEARCH_INFO_SIZE),
		pq:   pq,
	}
}

func (s *searchStorage) Get(id da.Index) (*VertexInfo, bool) {
	val, ok := s.info[id]
	return val, ok
}

func (s *searchStorage) Set(id da.Index, info *VertexInfo) {
	s.info[id] = info
}

func (s *searchStorage) Reset() {
	clear(s.info)
	s.pq.Clear()
}
