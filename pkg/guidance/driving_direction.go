package guidance

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
)

// DrivingDirection. one step of the route: the maneuver at Point and the road up to the next step.
type DrivingDirection struct {
	Instruction   string
	TurnType      string
	Point         geo.Coordinate
	TurnBearing   float64 // degrees, bearing of the road leaving Point
	DistanceMeter float64 // from Point to the next step
	EdgeIds       []datastructure.Index
	Polyline      string
}

type instruction struct {
	sign     int
	point    geo.Coordinate
	bearing  float64 // radians
	distance float64
	edgeIds  []datastructure.Index
	points   []geo.Coordinate
}

func newInstruction(sign int, point geo.Coordinate, bearing float64) *instruction {
	return &instruction{
		sign:    sign,
		point:   point,
		bearing: bearing,
		edgeIds: make([]datastructure.Index, 0),
		points:  make([]geo.Coordinate, 0),
	}
}

func (ins *instruction) description() (string, string) {
	desc, turnType := getDirectionDescription(ins.sign)
	if ins.sign == START {
		heading := util.RadiansToDegree(ins.bearing)
		if heading < 0 {
			heading += 360
		}
		desc = fmt.Sprintf("Head %s", bearingToCompass(heading))
	}
	if desc == "" {
		desc = fmt.Sprintf("unknown %d", ins.sign)
	}
	return desc, turnType
}

type DirectionBuilder struct {
	graph    Graph
	lefthand bool // left hand traffic (like in india and indonesia)

	instructions             []*instruction
	current                  *instruction
	prevNode                 datastructure.Index
	prevInitialBearing       float64 // radians, bearing of the road entering the current vertex
	doublePrevInitialBearing float64 // prevInitialBearing at the last turn instruction
	hasDoublePrev            bool
}

func NewDirectionBuilder(graph Graph, lefthand bool) *DirectionBuilder {
	return &DirectionBuilder{
		graph:        graph,
		lefthand:     lefthand,
		instructions: make([]*instruction, 0),
		prevNode:     math.MaxUint32,
	}
}

// GetDrivingDirections. turn by turn directions along path (edge ids, start to destination).
// a path with no edges has no directions.
func (db *DirectionBuilder) GetDrivingDirections(path []datastructure.Index) []DrivingDirection {
	if len(path) == 0 {
		return []DrivingDirection{}
	}

	for _, edgeId := range path {
		db.buildInstruction(db.graph.GetOutEdge(edgeId))
	}
	db.buildFinalInstruction()

	drivingDirections := make([]DrivingDirection, len(db.instructions))
	for i, ins := range db.instructions {
		desc, turnType := ins.description()
		drivingDirections[i] = DrivingDirection{
			Instruction:   desc,
			TurnType:      turnType,
			Point:         ins.point,
			TurnBearing:   util.RadiansToDegree(ins.bearing),
			DistanceMeter: ins.distance,
			EdgeIds:       ins.edgeIds,
			Polyline:      geo.PoylineFromCoords(ins.points),
		}
	}
	return drivingDirections
}

func (db *DirectionBuilder) buildInstruction(edge *datastructure.OutEdge) {
	tailId, headId := edge.GetTail(), edge.GetHead()
	tail := db.graph.GetVertex(tailId)
	head := db.graph.GetVertex(headId)
	tailPoint := geo.NewCoordinate(tail.GetLat(), tail.GetLon())

	degenerate := samePoint(tail, head)
	bearing := 0.0
	if !degenerate {
		bearing = computeInitialBearing(tail.GetLat(), tail.GetLon(), head.GetLat(), head.GetLon())
	}

	if db.current == nil {
		// start point of the route
		db.current = newInstruction(START, tailPoint, bearing)
	} else if !degenerate && db.prevNode != math.MaxUint32 {
		turnSign := db.getTurnSign(tailId, headId)
		if turnSign != IGNORE {
			if uTurn, uTurnType := db.checkUTurn(turnSign, tail, head); uTurn {
				db.current.sign = uTurnType
				db.current.bearing = bearing
			} else {
				db.instructions = append(db.instructions, db.current)
				db.current = newInstruction(turnSign, tailPoint, bearing)

				db.doublePrevInitialBearing = db.prevInitialBearing
				db.hasDoublePrev = true
			}
		}
	} else if db.current.sign == START && db.prevNode == math.MaxUint32 && !degenerate {
		// the route started with zero length edges
		db.current.bearing = bearing
	}

	db.current.edgeIds = append(db.current.edgeIds, edge.GetEdgeId())
	db.current.distance += edge.GetLength()
	if len(db.current.points) == 0 {
		db.current.points = append(db.current.points, tailPoint)
	}
	db.current.points = append(db.current.points, geo.NewCoordinate(head.GetLat(), head.GetLon()))

	if !degenerate {
		db.prevNode = tailId
		db.prevInitialBearing = bearing
	}
}

func (db *DirectionBuilder) buildFinalInstruction() {
	db.instructions = append(db.instructions, db.current)

	last := db.current.points[len(db.current.points)-1]
	finish := newInstruction(FINISH, last, db.prevInitialBearing)
	db.instructions = append(db.instructions, finish)
}

func samePoint(u, v *datastructure.Vertex) bool {
	return u.GetLat() == v.GetLat() && u.GetLon() == v.GetLon()
}
