package handlers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const keepAliveInterval = 15 * time.Second

func formatSSEMessage(eventType string, data any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	m := map[string]any{
		"data": data,
	}

	err := enc.Encode(m)
	if err != nil {
		return "", err
	}
	sb := strings.Builder{}

	sb.WriteString(fmt.Sprintf("event: %s\n", eventType))
	sb.WriteString(fmt.Sprintf("retry: %d\n", 15000))
	sb.WriteString(fmt.Sprintf("data: %v\n\n", strings.TrimRight(buf.String(), "\n")))

	return sb.String(), nil
}

// HandleEvents stream các sự kiện (login admin, todo, user) qua SSE cho admin
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	id, events := h.Broker.Subscribe()
	logger := h.Logger.With(zap.String("subscriber", id))
	logger.Info("New event stream")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		keepAliveTickler := time.NewTicker(keepAliveInterval)
		defer keepAliveTickler.Stop()
		defer h.Broker.Unsubscribe(id)
		keepAliveMsg := ":keepalive\n"

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					logger.Info("Event stream closed")
					return
				}
				sseMessage, err := formatSSEMessage(string(ev.Kind), ev)
				if err != nil {
					logger.Warn("Error formatting sse message", zap.Error(err))
					continue
				}

				if _, err := w.WriteString(sseMessage); err != nil {
					logger.Info("Error while writing data, closing stream", zap.Error(err))
					return
				}
				if err := w.Flush(); err != nil {
					logger.Info("Error while flushing data, closing stream", zap.Error(err))
					return
				}
			case <-keepAliveTickler.C:
				if _, err := w.WriteString(keepAliveMsg); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					logger.Info("Client went away, closing stream", zap.Error(err))
					return
				}
			}
		}
	}))

	return nil
}
