package handler

import (
	"io"
	"time"

	"voucher-donation-gateway/internal/adapter/feed"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultHeartbeat = 25 * time.Second

// FeedSource hands out live feed subscriptions.
type FeedSource interface {
	Subscribe() (<-chan feed.Message, func())
}

// FeedHandler streams live donation events over Server-Sent Events.
type FeedHandler struct {
	source    FeedSource
	heartbeat time.Duration
	log       zerolog.Logger
}

// NewFeedHandler creates a new FeedHandler. A non-positive heartbeat uses 25s.
func NewFeedHandler(source FeedSource, heartbeat time.Duration, log zerolog.Logger) *FeedHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &FeedHandler{source: source, heartbeat: heartbeat, log: log}
}

// Stream handles GET /api/v1/feed. It holds the connection until the client
// leaves or the feed closes.
func (h *FeedHandler) Stream(c *gin.Context) {
	events, cancel := h.source.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(200)

	// Comment frame so clients see the stream open before the first event.
	if _, err := io.WriteString(c.Writer, ": connected\n\n"); err != nil {
		return
	}
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(msg.Event, string(msg.Data))
			c.Writer.Flush()
		case <-ticker.C:
			if _, err := io.WriteString(c.Writer, ": heartbeat\n\n"); err != nil {
				h.log.Debug().Err(err).Msg("feed client gone")
				return
			}
			c.Writer.Flush()
		}
	}
}
