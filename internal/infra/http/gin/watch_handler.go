package ginserver

import (
	"context"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	appcatalog "revu/internal/app/catalog"
	"revu/internal/app/dto"
	"revu/internal/domain/catalog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WatchHandler bridges store snapshot subscriptions onto websockets. Every
// frame is the full current result set; clients replace their state rather
// than patching it.
type WatchHandler struct {
	Service *appcatalog.Service
	Logger  *slog.Logger
}

func (h WatchHandler) Entities(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	watch, err := h.Service.Watch(ctx, kind, filtersFromQuery(c, kind))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer watch.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	go discardReads(conn, cancel)

	for {
		select {
		case snapshot, ok := <-watch.Snapshots():
			if !ok {
				return
			}
			if err := conn.WriteJSON(dto.MapEntities(kind, snapshot)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h WatchHandler) Ratings(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	watch, err := h.Service.WatchRatings(ctx, kind, catalog.EntityID(c.Param("id")))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer watch.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	go discardReads(conn, cancel)

	for {
		select {
		case snapshot, ok := <-watch.Snapshots():
			if !ok {
				return
			}
			if err := conn.WriteJSON(dto.MapRatings(snapshot)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// discardReads drains client frames so pings are answered and a closed peer
// cancels the subscription.
func discardReads(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
