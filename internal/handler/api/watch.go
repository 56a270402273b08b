package api

import (
	"io"
	"time"

	"lodging-reservations/internal/infra/watch"

	"github.com/gin-gonic/gin"
)

type WatchHandler struct {
	listener *watch.Listener
}

func NewWatchHandler(listener *watch.Listener) *WatchHandler {
	return &WatchHandler{listener: listener}
}

// @Summary Watch reservations
// @Description Server-sent events stream; one event per reservation change
// @Tags reservations
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string
// @Router /reservations/watch [get]
func (h *WatchHandler) Watch(c *gin.Context) {
	events, unsubscribe := h.listener.Subscribe()
	defer unsubscribe()

	// Heartbeats keep proxies from closing an idle stream.
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("reservation", event)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
