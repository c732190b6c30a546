package controllers

import (
	"github.com/lintang-b-s/Ambulancex/pkg/engine/routing"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/lintang-b-s/Ambulancex/pkg/guidance"
	"github.com/lintang-b-s/Ambulancex/pkg/http/usecases"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
)

type dispatchRequest struct {
	StartLat     *float64 `json:"start_lat" validate:"required,latitude"`
	StartLon     *float64 `json:"start_lon" validate:"required,longitude"`
	TrafficLevel *float64 `json:"traffic_level" validate:"omitempty,gte=0"`
	Seed         *uint64  `json:"seed"`
}

func (r dispatchRequest) toQuery(defaultTrafficLevel float64) usecases.DispatchQuery {
	trafficLevel := defaultTrafficLevel
	if r.TrafficLevel != nil {
		trafficLevel = *r.TrafficLevel
	}
	return usecases.DispatchQuery{
		StartLat:     *r.StartLat,
		StartLon:     *r.StartLon,
		TrafficLevel: trafficLevel,
		Seed:         r.Seed,
	}
}

type coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func newCoordinate(c geo.Coordinate) coordinate {
	return coordinate{Lat: c.GetLat(), Lon: c.GetLon()}
}

func newCoordinates(cs []geo.Coordinate) []coordinate {
	coords := make([]coordinate, len(cs))
	for i, c := range cs {
		coords[i] = newCoordinate(c)
	}
	return coords
}

type destination struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type candidateResponse struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Reachable bool    `json:"reachable"`
	Cost      float64 `json:"cost,omitempty"`
	Distance  float64 `json:"distance,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

type directionResponse struct {
	Instruction string     `json:"instruction"`
	TurnType    string     `json:"turn_type"`
	Point       coordinate `json:"point"`
	TurnBearing float64    `json:"turn_bearing"`
	Distance    float64    `json:"distance"`
	Polyline    string     `json:"polyline"`
}

func newDirections(dirs []guidance.DrivingDirection) []directionResponse {
	res := make([]directionResponse, len(dirs))
	for i, d := range dirs {
		res[i] = directionResponse{
			Instruction: d.Instruction,
			TurnType:    d.TurnType,
			Point:       newCoordinate(d.Point),
			TurnBearing: util.RoundFloat(d.TurnBearing, 2),
			Distance:    util.RoundFloat(d.DistanceMeter, 2),
			Polyline:    d.Polyline,
		}
	}
	return res
}

type dispatchResponse struct {
	Destination    destination         `json:"destination"`
	Route          []coordinate        `json:"route"`
	Polyline       string              `json:"polyline"`
	Cost           float64             `json:"cost"`
	Distance       float64             `json:"distance"`
	InitialBearing float64             `json:"initial_bearing"`
	StartVertex    coordinate          `json:"start_vertex"`
	TrafficLevel   float64             `json:"traffic_level"`
	Seed           uint64              `json:"seed"`
	Candidates     []candidateResponse `json:"candidates"`
	Directions     []directionResponse `json:"directions"`
}

func NewDispatchResponse(res *usecases.DispatchResult) dispatchResponse {
	cands := make([]candidateResponse, len(res.Candidates))
	for i, c := range res.Candidates {
		cands[i] = candidateResponse{
			Name:      c.Name,
			Lat:       c.Lat,
			Lon:       c.Lon,
			Reachable: c.Reachable,
			Cost:      c.Cost,
			Distance:  c.Distance,
			Reason:    c.Reason,
		}
	}

	route := res.Route
	return dispatchResponse{
		Destination: destination{
			Name: route.DestinationName,
			Lat:  route.DestinationCoordinate.GetLat(),
			Lon:  route.DestinationCoordinate.GetLon(),
		},
		Route:          newCoordinates(route.Path),
		Polyline:       route.Polyline,
		Cost:           route.TotalCost,
		Distance:       route.DistanceMeter,
		InitialBearing: route.InitialBearing,
		StartVertex:    newCoordinate(res.StartVertex),
		TrafficLevel:   res.TrafficLevel,
		Seed:           res.Seed,
		Candidates:     cands,
		Directions:     newDirections(route.Directions),
	}
}

type destinationsResponse struct {
	Destinations []destination `json:"destinations"`
}

func NewDestinationsResponse(candidates []routing.Candidate) destinationsResponse {
	dests := make([]destination, len(candidates))
	for i, c := range candidates {
		dests[i] = destination{Name: c.Name, Lat: c.Coordinate.GetLat(), Lon: c.Coordinate.GetLon()}
	}
	return destinationsResponse{Destinations: dests}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
