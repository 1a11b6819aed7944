package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jevi-chat/console/internal/auth"
)

const statsPollInterval = 5 * time.Second

// streamRealtimeStats pushes the live activity snapshot over Server-Sent
// Events. Each connection polls upstream on its own ticker and stops when
// the client disconnects.
func (h *Handler) streamRealtimeStats(c *gin.Context) {
	token := auth.Token(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()

	sendSnapshot := func() bool {
		stats, err := h.stats.Realtime(ctx, token)
		if err != nil {
			// Transient upstream failures keep the stream open; the
			// next tick retries.
			return true
		}
		data, err := json.Marshal(stats)
		if err != nil {
			return true
		}
		fmt.Fprintf(c.Writer, "event: stats\ndata: %s\n\n", data)
		flusher.Flush()
		return true
	}

	sendSnapshot()

	pollTicker := time.NewTicker(statsPollInterval)
	defer pollTicker.Stop()

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			sendSnapshot()
		}
	}
}
