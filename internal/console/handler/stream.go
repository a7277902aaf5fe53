package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// FeedListener is satisfied by *feed.Listener.
type FeedListener interface {
	Listen(ctx context.Context, onMessage func(payload string))
}

// StreamHandler relays the live snapshot feed as server-sent events.
// A nil listener means the feed is disabled.
type StreamHandler struct {
	listener FeedListener
	logger   *zap.Logger
}

func NewStreamHandler(l FeedListener, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{listener: l, logger: logger.Named("stream-handler")}
}

func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if h.listener == nil {
		writeError(w, http.StatusServiceUnavailable, "live feed is disabled")
		return
	}

	rc := http.NewResponseController(w)
	// the stream outlives the server's WriteTimeout
	rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, ": connected\n\n")
	if err := rc.Flush(); err != nil {
		h.logger.Warn("streaming unsupported", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	h.listener.Listen(ctx, func(payload string) {
		if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
			cancel() // client went away
			return
		}
		rc.Flush()
	})
}
