package routing

const (
	// initial capacity of the per-search label storage
	SEARCH_INFO_SIZE = 1 << 12
)
