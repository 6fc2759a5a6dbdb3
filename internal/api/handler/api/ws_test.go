package api

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/newthinker/stratix/internal/marketdata"
)

func dialQuotes(t *testing.T, query string) *websocket.Conn {
	t.Helper()

	handler := NewWSHandler(marketdata.NewGenerator(), nil, nil, 20*time.Millisecond)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/quotes", handler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	u := "ws" + server.URL[len("http"):] + "/ws/quotes" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readQuote(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read json: %v", err)
		}
		if msg.Type == "quote" {
			return msg.Payload
		}
		if msg.Type == "error" {
			t.Fatalf("unexpected error message: %v", msg.Payload)
		}
	}
}

func TestWSQuoteStream_QuerySubscription(t *testing.T) {
	conn := dialQuotes(t, "?symbols=AAPL")

	quote := readQuote(t, conn)
	if quote["symbol"] != "AAPL" {
		t.Errorf("expected AAPL quote, got %v", quote["symbol"])
	}
	if _, ok := quote["price"].(float64); !ok {
		t.Errorf("expected numeric price, got %v", quote["price"])
	}
}

func TestWSQuoteStream_SubscribeMessage(t *testing.T) {
	conn := dialQuotes(t, "")

	sub := map[string]any{
		"type":    "subscribe",
		"payload": map[string]any{"symbols": []string{"msft"}},
	}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("write subscribe: %v", err)
	}

	quote := readQuote(t, conn)
	if quote["symbol"] != "MSFT" {
		t.Errorf("expected MSFT quote, got %v", quote["symbol"])
	}
}

func TestWSQuoteStream_NoGoroutineLeakOnAbruptClose(t *testing.T) {
	handler := NewWSHandler(marketdata.NewGenerator(), nil, nil, 20*time.Millisecond)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/quotes", handler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	before := runtime.NumGoroutine()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[len("http"):]+"/ws/quotes?symbols=AAPL", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	// Flood unsupported messages without draining the replies so the
	// handler's send buffer can fill, then drop the connection.
	for i := 0; i < 64; i++ {
		if err := conn.WriteJSON(map[string]any{"type": "nonsense"}); err != nil {
			break
		}
	}
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before+1 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("goroutines did not settle after close: before=%d after=%d", before, runtime.NumGoroutine())
}

func TestWSQuoteStream_UnsupportedType(t *testing.T) {
	conn := dialQuotes(t, "")

	if err := conn.WriteJSON(map[string]any{"type": "nonsense"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var msg struct {
		Type string `json:"type"`
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "error" {
		t.Errorf("expected error message, got %s", msg.Type)
	}
}
