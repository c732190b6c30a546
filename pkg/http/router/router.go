package router

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lintang-b-s/Ambulancex/pkg/concurrent"
	"github.com/lintang-b-s/Ambulancex/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/Ambulancex/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/Ambulancex/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "net/http/pprof"
)

type API struct {
	log    *zap.Logger
	hub    *controllers.Hub
	poller netpoll.Poller
	pool   *concurrent.TaskPool
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			Ambulancex API
//	@version		1.0
//	@description	traffic aware ambulance dispatch: routes a unit to the cheapest reachable hospital.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
	defaultTrafficLevel float64,
) error {
	log.Info("Run httprouter API")

	errChan := make(chan error, 1)

	go func() {
		api.handleWebsocket(ctx, config, routingService, defaultTrafficLevel, errChan)
	}()

	srv := http_server.New(ctx, api.Handler(config, useRateLimit, routingService, defaultTrafficLevel), config, false)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		log.Error("Websocket error, shutting down server", zap.Error(err))
		_ = srv.Shutdown(context.Background())
		return err
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}

// Handler. REST routes, docs, metrics and the /ws upstream behind the middleware chain
func (api *API) Handler(config http_server.Config, useRateLimit bool,
	routingService controllers.RoutingService, defaultTrafficLevel float64) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore

	})

	router.GET("/doc/*any", swaggerHandler)

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	router.HandlerFunc(http.MethodGet, "/ws",
		api.upstream("dispatch websocket", "tcp", "localhost:"+strconv.Itoa(config.WebsocketPort)))

	group := router_helper.NewRouteGroup(router, "/api")

	dispatchRoutes := controllers.New(routingService, defaultTrafficLevel, api.log)

	dispatchRoutes.Routes(group)

	var mwChain []alice.Constructor
	if useRateLimit {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(api.log), Labels, Limit)
	} else {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(api.log), Labels)
	}
	return alice.New(mwChain...).Then(router)
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
