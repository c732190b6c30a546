package pkg

const (
	INF_WEIGHT float64 = 1e15

	// traffic model: cost = length + U*TRAFFIC_DELAY_FACTOR, U ~ Uniform[0, intensity]
	TRAFFIC_DELAY_FACTOR       = 10.0
	DEFAULT_MAX_TRAFFIC_LEVEL  = 10.0
	MIN_EDGE_LENGTH_METER      = 0.01 // malformed (<= 0) edge lengths are clamped to this
	COST_DISPLAY_PRECISION     = 2
	SEARCH_CONTEXT_CHECK_EVERY = 1024
)

const (
	DEBUG = false
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}

// network types, same naming as osmnx network_type
const (
	NETWORK_DRIVE         = "drive"
	NETWORK_DRIVE_SERVICE = "drive_service"
	NETWORK_ALL           = "all"
)

// IsDrivable. whether a highway type belongs to the road network of networkType
func IsDrivable(hw OsmHighwayType, networkType string) bool {
	switch networkType {
	case NETWORK_ALL:
		return true
	case NETWORK_DRIVE_SERVICE:
		return hw != TRACK && hw != UNKNOWN
	default:
		return hw != TRACK && hw != UNKNOWN && hw != SERVICE
	}
}
