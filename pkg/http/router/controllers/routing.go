package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/Ambulancex/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService      RoutingService
	defaultTrafficLevel float64
	log                 *zap.Logger
}

func New(routingService RoutingService, defaultTrafficLevel float64, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService:      routingService,
		defaultTrafficLevel: defaultTrafficLevel,
		log:                 log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/dispatch", api.dispatch)
	group.GET("/destinations", api.destinations)
}

// dispatch godoc
//
//	@Summary		route an ambulance to the cheapest reachable hospital under synthetic traffic
//	@Tags			dispatch
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dispatchRequest	true	"start position, traffic level and optional seed"
//	@Success		200		{object}	dispatchResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/dispatch [post]
func (api *routingAPI) dispatch(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request dispatchRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.Dispatch(r.Context(), request.toQuery(api.defaultTrafficLevel))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewDispatchResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// destinations godoc
//
//	@Summary		configured candidate hospitals in evaluation order
//	@Tags			dispatch
//	@Produce		json
//	@Success		200	{object}	destinationsResponse
//	@Router			/destinations [get]
func (api *routingAPI) destinations(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewDestinationsResponse(api.routingService.Destinations())}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
