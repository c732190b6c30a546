package guidance

import (
	"math"

	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
)

/*
GetAlternativeTurns. number of ways out of tail, counting currentEdge and not counting the way back to prevVertex:

		 |
		 |
	 alternative
		 |
--prev-- B --currentEdge---
		 |
		 |
	alternative
		 |

3 ways out of B. edges to headId (parallel edges) are not alternatives.
*/ // nolint: gofmt
func (db *DirectionBuilder) GetAlternativeTurns(tailId, headId, prevVertexId datastructure.Index) (int, []*datastructure.OutEdge) {
	alternativeTurns := []*datastructure.OutEdge{}
	seen := make(map[datastructure.Index]struct{})

	db.graph.ForOutEdgesOf(tailId, func(e *datastructure.OutEdge, id datastructure.Index) {
		if e.GetHead() == prevVertexId || e.GetHead() == headId || e.GetHead() == tailId {
			return
		}
		if _, ok := seen[e.GetHead()]; ok {
			return
		}
		seen[e.GetHead()] = struct{}{}
		alternativeTurns = append(alternativeTurns, e)
	})

	return 1 + len(alternativeTurns), alternativeTurns
}

/*
getOtherEdgeContinueDirection. an alternative edge out of tail that also goes (almost) straight on:

				---- currentEdge-----

--prevEdge-- tail

				----alternativeEdge-----
*/ // nolint: gofmt
func (db *DirectionBuilder) getOtherEdgeContinueDirection(tailLat, tailLon, prevInitialBearing float64,
	alternativeTurns []*datastructure.OutEdge) *datastructure.OutEdge {
	for _, edge := range alternativeTurns {
		node := db.graph.GetVertex(edge.GetHead())
		sign := getTurnDirection(tailLat, tailLon, node.GetLat(), node.GetLon(), prevInitialBearing)
		if math.Abs(float64(sign)) <= 1 {
			return edge
		}
	}
	return nil
}

/*
getTurnSign. turn sign at tail, between prevNode->tail and tail->head:

prevNode----prevEdge----tail
							|
							|
						currentEdge
							|
							|
						head

IGNORE when no instruction is needed at tail (a bend with no other way out, or going straight on).
*/ // nolint: gofmt
func (db *DirectionBuilder) getTurnSign(tailId, headId datastructure.Index) int {
	tail := db.graph.GetVertex(tailId)
	head := db.graph.GetVertex(headId)

	sign := getTurnDirection(tail.GetLat(), tail.GetLon(), head.GetLat(), head.GetLon(), db.prevInitialBearing)

	alternativeTurnsCount, alternativeTurns := db.GetAlternativeTurns(tailId, headId, db.prevNode)
	if alternativeTurnsCount == 1 {
		if math.Abs(float64(sign)) > 1 {
			// sharp bend of the road itself
			return sign
		}
		return IGNORE
	}

	if math.Abs(float64(sign)) > 1 {
		return sign
	}

	prevCurrDelta := computeDeltaBearing(tail.GetLat(), tail.GetLon(), head.GetLat(), head.GetLon(), db.prevInitialBearing)

	otherContinueEdge := db.getOtherEdgeContinueDirection(tail.GetLat(), tail.GetLon(), db.prevInitialBearing, alternativeTurns)
	if otherContinueEdge != nil {
		other := db.graph.GetVertex(otherContinueEdge.GetHead())
		prevOtherDelta := computeDeltaBearing(tail.GetLat(), tail.GetLon(), other.GetLat(), other.GetLon(), db.prevInitialBearing)

		if util.RadiansToDegree(math.Abs(prevCurrDelta)) < 6 && util.RadiansToDegree(math.Abs(prevOtherDelta)) > 8.6 {
			// current edge is the straight one
			return IGNORE
		}

		/*
			two ways out of tail that both go (almost) straight on:

					-----currentEdge---------
			tail
					-----otherContinueEdge---
		*/ // nolint: gofmt
		if prevCurrDelta > prevOtherDelta {
			return KEEP_RIGHT
		}
		return KEEP_LEFT
	}

	if util.RadiansToDegree(math.Abs(prevCurrDelta)) > 34 {
		return sign
	}
	return IGNORE
}

/*
checkUTurn. two consecutive turns to the same side that reverse the heading:

A --doublePrevEdge-->B
				    |
					|
				PrevEdge
					|
					|
D <--currentEdge---C

turning right at B and right again at C with a bearing difference between A->B and C->D close to 180° is a
U-turn (right for left hand traffic, left for right hand traffic).
*/ // nolint: gofmt
func (db *DirectionBuilder) checkUTurn(sign int, tail, head *datastructure.Vertex) (bool, int) {
	if !db.hasDoublePrev || db.current == nil {
		return false, U_TURN_UNKNOWN
	}
	prevSign := db.current.sign
	if !isLeftOrRightTurn(sign) || !isLeftOrRightTurn(prevSign) || (sign > 0) != (prevSign > 0) {
		return false, U_TURN_UNKNOWN
	}
	if db.lefthand != (sign > 0) {
		return false, U_TURN_UNKNOWN
	}

	currentInitialBearing := computeInitialBearing(tail.GetLat(), tail.GetLon(), head.GetLat(), head.GetLon())
	diffAngle := util.RadiansToDegree(math.Abs(db.doublePrevInitialBearing - currentInitialBearing))
	if diffAngle > 155 && diffAngle < 205 {
		if sign < 0 {
			return true, U_TURN_LEFT
		}
		return true, U_TURN_RIGHT
	}
	return false, U_TURN_UNKNOWN
}
