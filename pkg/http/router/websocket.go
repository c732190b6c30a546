package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/Ambulancex/pkg/concurrent"
	"github.com/lintang-b-s/Ambulancex/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Ambulancex/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// handleWebsocket. websocket dispatch server on config.WebsocketPort, every text message is one
// dispatch request. runs until ctx is done.
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	routingService controllers.RoutingService, defaultTrafficLevel float64,
	errChan chan error,
) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("dispatch websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(
		ln, netpoll.EventRead|netpoll.EventOneShot,
	)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	viper.SetDefault("WEBSOCKET_WORKERS", 64)
	workers := viper.GetInt("WEBSOCKET_WORKERS")
	api.pool = concurrent.NewTaskPool(workers, workers)

	api.hub = controllers.NewHub(routingService, defaultTrafficLevel, api.log)

	api.pool.Spawn(workers / 4)
	// accept is a channel to signal about next incoming connection Accept()
	// results.
	accept := make(chan error, 1)

	err = api.poller.Start(acceptDesc, func(e netpoll.Event) {
		/*
			the listener file descriptor is in the epoll interest list (netpoll runs epoll_wait() in the background).
			EventOneShot: it is disarmed after every event and must be resumed.
		*/
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(ctx, conn, config.Timeout)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			/*
				if the goroutine pool is full for 1 ms and there are incoming connections,
				cooldown the server for 5 ms
			*/
			delay := 5 * time.Millisecond
			api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
			time.Sleep(delay)
		}
	})
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	<-ctx.Done()

	api.poller.Stop(acceptDesc)
	ln.Close()

	api.hub.RemoveAllUser()

	api.pool.Close()

	api.log.Info("websocket server stopped")
}

/*
handle. upgrade conn to a websocket connection and serve its dispatch requests.
use epoll api to reduce memory stack, ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
*/
func (api *API) handle(ctx context.Context, conn net.Conn, timeout time.Duration) {

	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection name", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("netpoll handle read error", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
		return
	}

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// peer closed its end of the connection
			api.log.Info("user disconnected from websocket server", zap.String("connection name", nameConn(conn)))

			api.poller.Stop(desc)
			api.hub.Remove(user)
			conn.Close()
			return
		}

		// spawn goroutine from goroutine pool to handle the request
		api.pool.Schedule(func() {
			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if err := user.Dispatch(reqCtx); err != nil {
				api.log.Info("websocket dispatch error", zap.Error(err))
				// error -> remove user conn file descriptor from epoll interest list & remove from hub
				api.poller.Stop(desc)
				api.hub.Remove(user)
				conn.Close()
			}
		})
	})
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
