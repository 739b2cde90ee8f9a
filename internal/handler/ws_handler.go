package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/joedomabylv/QuickSched/internal/config"
	ws "github.com/joedomabylv/QuickSched/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams schedule changes to connected operators. Each mutation
// publishes to the schedule's Redis channel; every watcher's connection
// relays those payloads as they arrive.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ScheduleStream godoc
// WS /ws/v1/schedules/:schedule_id/stream
// Upgrades to WebSocket and forwards schedule change events in real time.
func (h *WSHandler) ScheduleStream(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("schedule_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("schedule_id", scheduleID.String()).Logger()
	wsLog.Info().Msg("Watcher connected")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	channel := config.CacheKey.ScheduleStreamChannel(scheduleID.String())
	sub := h.rdb.Subscribe(ctx, channel)
	defer sub.Close()

	// The relay loop and the reader goroutine both send on this
	// connection; the shared Writer serializes them.
	w := ws.NewWriter(conn)

	// Reader goroutine: answers pings and detects the client going away.
	go func() {
		defer cancel()
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}

			switch msg.Action {
			case ws.ActionPing:
				w.WriteTyped(ws.PongResponse{Event: ws.EventPong})
			default:
				w.WriteError("unknown action: " + string(msg.Action))
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-sub.Channel():
			if !ok {
				return
			}
			if err := w.WriteRaw([]byte(m.Payload)); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping watcher")
				return
			}
		}
	}
}
