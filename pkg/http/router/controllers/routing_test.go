package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/Ambulancex/pkg/engine/routing"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/lintang-b-s/Ambulancex/pkg/guidance"
	helper "github.com/lintang-b-s/Ambulancex/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/Ambulancex/pkg/http/usecases"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoutingService struct {
	lastQuery usecases.DispatchQuery
	err       error
}

func (f *fakeRoutingService) Dispatch(ctx context.Context, query usecases.DispatchQuery) (*usecases.DispatchResult, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	path := []geo.Coordinate{geo.NewCoordinate(18.63, 73.8), geo.NewCoordinate(18.618, 73.803)}
	return &usecases.DispatchResult{
		Route: &routing.RouteResult{
			DestinationName:       "Hospital 1",
			DestinationCoordinate: geo.NewCoordinate(18.618, 73.803),
			Path:                  path,
			Polyline:              geo.PoylineFromCoords(path),
			TotalCost:             1375.42,
			Cost:                  1375.4213,
			DistanceMeter:         1375.4213,
			Directions: []guidance.DrivingDirection{
				{Instruction: "Head South East", TurnType: "START", Point: path[0], TurnBearing: 166.2174, DistanceMeter: 1375.4213},
				{Instruction: "You have arrived at your destination", TurnType: "FINISH", Point: path[1]},
			},
		},
		StartVertex:  path[0],
		TrafficLevel: query.TrafficLevel,
		Seed:         99,
		Candidates: []usecases.CandidateReport{
			{Name: "Hospital 1", Lat: 18.618, Lon: 73.803, Reachable: true, Cost: 1375.4213},
			{Name: "Hospital 2", Lat: 18.635, Lon: 73.79, Reason: "no path found"},
		},
	}, nil
}

func (f *fakeRoutingService) Destinations() []routing.Candidate {
	return []routing.Candidate{
		routing.NewCandidate("Hospital 1", 18.6180, 73.8030),
		routing.NewCandidate("Hospital 2", 18.6350, 73.7900),
	}
}

func newTestRouter(svc RoutingService) *httprouter.Router {
	router := httprouter.New()
	New(svc, 3, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

type dispatchEnvelope struct {
	Data dispatchResponse `json:"data"`
}

func TestDispatchHandler(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		serviceErr  error
		wantStatus  int
		wantTraffic float64
	}{
		{
			name:        "ok with explicit traffic level",
			body:        `{"start_lat": 18.6298, "start_lon": 73.7997, "traffic_level": 7, "seed": 5}`,
			wantStatus:  http.StatusOK,
			wantTraffic: 7,
		},
		{
			name:        "ok with default traffic level",
			body:        `{"start_lat": 18.6298, "start_lon": 73.7997}`,
			wantStatus:  http.StatusOK,
			wantTraffic: 3,
		},
		{
			name:        "zero coordinates are valid",
			body:        `{"start_lat": 0, "start_lon": 0, "traffic_level": 0}`,
			wantStatus:  http.StatusOK,
			wantTraffic: 0,
		},
		{
			name:       "malformed json",
			body:       `{"start_lat": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing start_lon",
			body:       `{"start_lat": 18.6298}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "latitude out of range",
			body:       `{"start_lat": 95, "start_lon": 73.7997}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative traffic level",
			body:       `{"start_lat": 18.6298, "start_lon": 73.7997, "traffic_level": -2}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "service rejects input",
			body:       `{"start_lat": 18.6298, "start_lon": 73.7997, "traffic_level": 12}`,
			serviceErr: util.WrapErrorf(routing.ErrInvalidInput, util.ErrBadParamInput, "traffic_level must be between 0 and 10"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "all candidates unreachable",
			body:       `{"start_lat": 18.6298, "start_lon": 73.7997}`,
			serviceErr: util.WrapErrorf(routing.ErrAllCandidatesUnreachable, util.ErrNotFound, "no destination is reachable"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "internal error",
			body:       `{"start_lat": 18.6298, "start_lon": 73.7997}`,
			serviceErr: errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeRoutingService{err: tc.serviceErr}
			router := newTestRouter(svc)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/dispatch", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tc.wantStatus != http.StatusOK {
				var resp errorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, http.StatusText(tc.wantStatus), resp.Error.Code)
				assert.NotEmpty(t, resp.Error.Message)
				return
			}

			var resp dispatchEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantTraffic, svc.lastQuery.TrafficLevel)
			assert.Equal(t, "Hospital 1", resp.Data.Destination.Name)
			assert.Equal(t, 1375.42, resp.Data.Cost)
			assert.Len(t, resp.Data.Route, 2)
			assert.Equal(t, uint64(99), resp.Data.Seed)
			require.Len(t, resp.Data.Candidates, 2)
			assert.False(t, resp.Data.Candidates[1].Reachable)
			require.Len(t, resp.Data.Directions, 2)
			assert.Equal(t, "START", resp.Data.Directions[0].TurnType)
			assert.Equal(t, 166.22, resp.Data.Directions[0].TurnBearing)
			assert.Equal(t, 1375.42, resp.Data.Directions[0].Distance)
		})
	}
}

func TestDispatchHandlerPassesSeed(t *testing.T) {
	svc := &fakeRoutingService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dispatch",
		strings.NewReader(`{"start_lat": 18.6298, "start_lon": 73.7997, "seed": 12345}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastQuery.Seed)
	assert.Equal(t, uint64(12345), *svc.lastQuery.Seed)
}

func TestDestinationsHandler(t *testing.T) {
	router := newTestRouter(&fakeRoutingService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/destinations", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data destinationsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Destinations, 2)
	assert.Equal(t, "Hospital 1", resp.Data.Destinations[0].Name)
	assert.Equal(t, 18.6350, resp.Data.Destinations[1].Lat)
}

func TestHubDispatch(t *testing.T) {
	svc := &fakeRoutingService{}
	hub := NewHub(svc, 3, zap.NewNop())

	server, client := net.Pipe()
	defer client.Close()
	user := hub.Register(server)
	assert.Equal(t, 1, hub.Len())

	testCases := []struct {
		name    string
		request string
		wantKey string
	}{
		{"valid request", `{"start_lat": 18.6298, "start_lon": 73.7997, "seed": 1}`, "data"},
		{"invalid request", `{"start_lat": 18.6298}`, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errc := make(chan error, 1)
			go func() {
				errc <- user.Dispatch(context.Background())
			}()

			require.NoError(t, wsutil.WriteClientText(client, []byte(tc.request)))
			reply, err := wsutil.ReadServerText(client)
			require.NoError(t, err)
			require.NoError(t, <-errc)

			var resp map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(reply, &resp))
			assert.Contains(t, resp, tc.wantKey)
		})
	}

	hub.Remove(user)
	assert.Equal(t, 0, hub.Len())
}
