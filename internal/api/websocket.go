package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/heat2go/internal/controller"
	"github.com/markusressel/heat2go/internal/ui"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func registerWebsocketEndpoint(rest *echo.Echo, regulator *controller.Regulator) {
	rest.GET("/ws/", func(c echo.Context) error {
		return streamStatus(c, regulator)
	})
}

// streamStatus sends the current status followed by every new status
// until the client goes away
func streamStatus(c echo.Context, regulator *controller.Regulator) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	updates, unsubscribe := regulator.Subscribe()
	defer unsubscribe()

	// the client does not send anything, reading only detects a close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					ui.Debug("Websocket client error: %v", err)
				}
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	if err := writeStatus(conn, regulator.Status()); err != nil {
		return nil
	}

	for {
		select {
		case <-closed:
			return nil
		case <-c.Request().Context().Done():
			return nil
		case status, ok := <-updates:
			if !ok {
				return nil
			}
			if err := writeStatus(conn, status); err != nil {
				ui.Debug("Websocket write error: %v", err)
				return nil
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

func writeStatus(conn *websocket.Conn, status controller.Status) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(status)
}
