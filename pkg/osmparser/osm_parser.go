package osmparser

import (
	"context"
	"io"
	"os"

	"github.com/lintang-b-s/Ambulancex/pkg"
	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type node struct {
	id    int64
	coord NodeCoord
}

// OsmParser. builds the road graph of one region: the ways allowed by networkType whose segments lie
// within radiusMeter of center.
type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]NodeCoord
	barrierNodes    map[int64]bool
	nodeIDMap       map[int64]datastructure.Index
	nodeToOsmId     []int64
	maxNodeID       int64

	center      geo.Coordinate
	radiusMeter float64
	networkType string
}

func NewOSMParser(center geo.Coordinate, radiusMeter float64, networkType string) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]NodeCoord),
		barrierNodes:    make(map[int64]bool),
		nodeIDMap:       make(map[int64]datastructure.Index),
		nodeToOsmId:     make([]int64, 0),
		center:          center,
		radiusMeter:     radiusMeter,
		networkType:     networkType,
	}
}

func (p *OsmParser) Parse(mapFile string, logger *zap.Logger) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}

		way := o.(*osm.Way)
		if len(way.Nodes) < 2 {
			continue
		}

		if !acceptOsmWay(way, p.networkType) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for i, node := range way.Nodes {
			if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[int64(node.ID)] = END_NODE
				} else {
					p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
				}
			} else {
				p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, err
	}
	scanner = osmpbf.New(context.Background(), f, 0)
	//must not be parallel
	defer scanner.Close()

	scannedEdges := make([]Edge, 0)

	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()

		switch o.ObjectID().Type() {
		case osm.TypeWay:
			{
				way := o.(*osm.Way)
				if len(way.Nodes) < 2 {
					continue
				}

				if !acceptOsmWay(way, p.networkType) {
					continue
				}
				if (countWays+1)%100000 == 0 {
					logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
				}
				countWays++

				p.processWay(way, &scannedEdges)
			}
		case osm.TypeNode:
			{
				if (countNodes+1)%500000 == 0 {
					logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
				}
				countNodes++
				node := o.(*osm.Node)

				p.maxNodeID = max(p.maxNodeID, int64(node.ID))

				if _, ok := p.wayNodeMap[int64(node.ID)]; ok {
					p.acceptedNodeMap[int64(node.ID)] = NodeCoord{
						lat:   node.Lat,
						lon:   node.Lon,
						osmId: int64(node.ID),
					}
				}
				accessType := node.Tags.Find("access")
				barrierType := node.Tags.Find("barrier")

				if _, ok := acceptedBarrierType[barrierType]; ok && accessType == "no" {
					p.barrierNodes[int64(node.ID)] = true
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	nodes := make([]NodeCoord, len(p.nodeToOsmId))
	for v, osmId := range p.nodeToOsmId {
		nodes[v] = p.acceptedNodeMap[osmId]
	}

	graph, err := BuildGraph(nodes, scannedEdges)
	if err != nil {
		return nil, err
	}

	logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())

	return graph, nil
}

type wayExtraInfo struct {
	oneWay  bool
	forward bool
}

func getWayExtraInfo(way *osm.Way) wayExtraInfo {
	wayExtraInfoData := wayExtraInfo{}
	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	if val := way.Tags.Find("oneway"); val == "yes" || val == "true" || val == "1" || val == "-1" ||
		okvf || okmvf || okvb || okmvb {
		wayExtraInfoData.oneWay = true
	}

	// roundabouts are implied oneway unless tagged otherwise
	if junction := way.Tags.Find("junction"); (junction == "roundabout" || junction == "circular") &&
		way.Tags.Find("oneway") != "no" {
		wayExtraInfoData.oneWay = true
	}

	if way.Tags.Find("oneway") == "-1" || okvf || okmvf {
		// okvf / omvf = restricted/not allowed forward.
		wayExtraInfoData.forward = false
	} else {
		wayExtraInfoData.forward = true
	}
	return wayExtraInfoData
}

// processWay. split the way at junction nodes and at nodes outside the region.
func (p *OsmParser) processWay(way *osm.Way, scannedEdges *[]Edge) {
	wayExtraInfoData := getWayExtraInfo(way)

	waySegment := []node{}
	for _, wayNode := range way.Nodes {
		nodeCoord, ok := p.acceptedNodeMap[int64(wayNode.ID)]
		if !ok || !geo.WithinRadius(p.center, nodeCoord.lat, nodeCoord.lon, p.radiusMeter) {
			if len(waySegment) > 1 {
				p.processSegment(waySegment, wayExtraInfoData, scannedEdges)
			}
			waySegment = []node{}
			continue
		}

		nodeData := node{
			id:    int64(wayNode.ID),
			coord: nodeCoord,
		}
		if p.isJunctionNode(nodeData.id) {
			waySegment = append(waySegment, nodeData)
			p.processSegment(waySegment, wayExtraInfoData, scannedEdges)
			waySegment = []node{}

			waySegment = append(waySegment, nodeData)
		} else {
			waySegment = append(waySegment, nodeData)
		}
	}
	if len(waySegment) > 1 {
		p.processSegment(waySegment, wayExtraInfoData, scannedEdges)
	}
}

func isRestricted(value string) bool {
	if value == "no" || value == "restricted" {
		return true
	}
	return false
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}

func (p *OsmParser) processSegment(segment []node, wayExtraInfoData wayExtraInfo, scannedEdges *[]Edge) {
	if len(segment) == 2 && segment[0].id == segment[1].id {
		// skip
		return
	} else if len(segment) > 2 && segment[0].id == segment[len(segment)-1].id {
		// loop
		p.splitAtBarriers(segment[0:len(segment)-1], wayExtraInfoData, scannedEdges)
		p.splitAtBarriers(segment[len(segment)-2:], wayExtraInfoData, scannedEdges)
	} else {
		p.splitAtBarriers(segment, wayExtraInfoData, scannedEdges)
	}
}

func (p *OsmParser) splitAtBarriers(segment []node, wayExtraInfoData wayExtraInfo, scannedEdges *[]Edge) {
	waySegment := []node{}
	for i := 0; i < len(segment); i++ {
		nodeData := segment[i]
		if _, ok := p.barrierNodes[nodeData.id]; ok {
			if len(waySegment) != 0 {
				// if current node is a barrier
				// add the barrier node and process the segment (add edge)
				waySegment = append(waySegment, nodeData)
				p.addEdge(waySegment, wayExtraInfoData, scannedEdges)
				waySegment = []node{}
			}
			// copy the barrier node but with different id so that previous edge (with barrier) not connected with the new edge
			nodeData = p.copyNode(nodeData)
			waySegment = append(waySegment, nodeData)
		} else {
			waySegment = append(waySegment, nodeData)
		}
	}
	if len(waySegment) > 1 {
		p.addEdge(waySegment, wayExtraInfoData, scannedEdges)
	}
}

func (p *OsmParser) copyNode(nodeData node) node {
	// use the same coordinate but different id & and the newID is not used
	newMaxID := p.maxNodeID + 1
	p.acceptedNodeMap[newMaxID] = NodeCoord{
		lat:   nodeData.coord.lat,
		lon:   nodeData.coord.lon,
		osmId: nodeData.coord.osmId,
	}
	p.maxNodeID++
	return node{
		id:    newMaxID,
		coord: p.acceptedNodeMap[newMaxID],
	}
}

func (p *OsmParser) vertexID(osmNodeID int64) datastructure.Index {
	if id, ok := p.nodeIDMap[osmNodeID]; ok {
		return id
	}
	id := datastructure.Index(len(p.nodeToOsmId))
	p.nodeIDMap[osmNodeID] = id
	p.nodeToOsmId = append(p.nodeToOsmId, osmNodeID)
	return id
}

// addEdge. one edge per allowed direction, length is the haversine length of the segment polyline in meter.
func (p *OsmParser) addEdge(segment []node, wayExtraInfoData wayExtraInfo, scannedEdges *[]Edge) {
	from := segment[0]
	to := segment[len(segment)-1]

	if from.id == to.id {
		return
	}

	fromID := p.vertexID(from.id)
	toID := p.vertexID(to.id)

	distanceInMeter := 0.0
	for i := 1; i < len(segment); i++ {
		distanceInMeter += geo.CalculateHaversineDistanceMeter(segment[i-1].coord.lat, segment[i-1].coord.lon,
			segment[i].coord.lat, segment[i].coord.lon)
	}

	if !wayExtraInfoData.oneWay || wayExtraInfoData.forward {
		*scannedEdges = append(*scannedEdges, NewEdge(uint32(fromID), uint32(toID), distanceInMeter,
			uint32(len(*scannedEdges))))
	}
	if !wayExtraInfoData.oneWay || !wayExtraInfoData.forward {
		*scannedEdges = append(*scannedEdges, NewEdge(uint32(toID), uint32(fromID), distanceInMeter,
			uint32(len(*scannedEdges))))
	}
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}

func acceptOsmWay(way *osm.Way, networkType string) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if _, ok := acceptedHighway[highway]; !ok {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	if networkType != pkg.NETWORK_ALL {
		access := way.Tags.Find("access")
		motorVehicle := way.Tags.Find("motor_vehicle")
		if access == "no" || access == "private" || motorVehicle == "no" || motorVehicle == "private" {
			return false
		}
	}
	return pkg.IsDrivable(pkg.GetHighwayType(highway), networkType)
}
