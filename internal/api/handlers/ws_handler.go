package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/realtime"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// WSHandler streams site totals: the current value on connect, then every update.
type WSHandler struct {
	stats    services.SiteStatService
	sub      realtime.Subscriber
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

func NewWSHandler(stats services.SiteStatService, sub realtime.Subscriber, allowedOrigins []string, log *logrus.Logger) *WSHandler {
	anyOrigin := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	return &WSHandler{
		stats: stats,
		sub:   sub,
		log:   log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return anyOrigin || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) write(messageType int, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.c.WriteMessage(messageType, b)
}

func (h *WSHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// subscribe before reading the snapshot so no update falls in between
	sub, err := h.sub.Subscribe(ctx, services.SiteStatsChannel)
	if err != nil {
		h.log.WithError(err).Warn("stats subscription failed")
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()
	wc := &wsConn{c: conn}

	totals, err := h.stats.Totals(ctx)
	if err == nil {
		b, _ := json.Marshal(services.StatsUpdate{Type: "site_stats", SiteTotals: totals})
		if err := wc.write(websocket.TextMessage, b); err != nil {
			return
		}
	}

	// reader: only control frames are expected; any read error ends the stream
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := wc.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case m, ok := <-sub.Messages():
			if !ok {
				return
			}
			if err := wc.write(websocket.TextMessage, m); err != nil {
				return
			}
		}
	}
}
