package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/marketdata"
	"github.com/newthinker/stratix/internal/metrics"
)

// WSHandler streams live quotes over a websocket. Clients subscribe to
// symbols and receive a quote message per symbol on every tick.
type WSHandler struct {
	provider marketdata.Provider
	metrics  *metrics.Registry
	logger   *zap.Logger
	interval time.Duration
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new quote stream handler.
func NewWSHandler(provider marketdata.Provider, reg *metrics.Registry, logger *zap.Logger, interval time.Duration) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &WSHandler{
		provider: provider,
		metrics:  reg,
		logger:   logger,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type wsInbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type subscribePayload struct {
	Symbols []string `json:"symbols"`
}

type wsOutbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type wsError struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and streams quotes for the subscribed
// symbols until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSClientConnected()
		defer h.metrics.WSClientDisconnected()
	}

	// Initial subscription may ride in the query string.
	var symbols []string
	if q := r.URL.Query().Get("symbols"); q != "" {
		symbols = normalizeSymbols(strings.Split(q, ","))
	}

	send := make(chan wsOutbound, 16)
	subs := make(chan []string, 1)
	done := make(chan struct{})
	stop := make(chan struct{})
	defer close(stop)

	// The reader must never block on a channel send once the write loop
	// has returned, or it leaks when the peer goes away mid-send.
	go func() {
		defer close(done)
		for {
			var inbound wsInbound
			if err := conn.ReadJSON(&inbound); err != nil {
				return
			}
			switch inbound.Type {
			case "subscribe":
				var payload subscribePayload
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					select {
					case send <- wsOutbound{Type: "error", Payload: wsError{Message: "invalid subscribe payload"}}:
					case <-stop:
						return
					}
					continue
				}
				select {
				case subs <- normalizeSymbols(payload.Symbols):
				case <-stop:
					return
				}
			default:
				select {
				case send <- wsOutbound{Type: "error", Payload: wsError{Message: "unsupported message type"}}:
				case <-stop:
					return
				}
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case symbols = <-subs:
		case msg := <-send:
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			for _, symbol := range symbols {
				quote, err := h.provider.FetchQuote(r.Context(), symbol)
				if err != nil {
					if !errors.Is(err, core.ErrSymbolNotFound) {
						h.logger.Warn("quote fetch failed",
							zap.String("symbol", symbol), zap.Error(err))
					}
					continue
				}
				if err := conn.WriteJSON(wsOutbound{Type: "quote", Payload: quote}); err != nil {
					return
				}
			}
		}
	}
}

func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
