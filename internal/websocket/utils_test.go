package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// connPair upgrades a loopback HTTP connection and returns both ends.
func connPair(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		accepted <- c
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	server = <-accepted
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return server, client
}

// A ping reply and an event relay may fire at the same moment; both must
// go through the shared Writer without tripping gorilla's single-writer
// rule (an unguarded pair panics with "concurrent write to websocket
// connection").
func TestWriterSerializesConcurrentSenders(t *testing.T) {
	serverConn, clientConn := connPair(t)
	w := NewWriter(serverConn)

	const perSender = 100
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < perSender; i++ {
			if err := w.WriteTyped(PongResponse{Event: EventPong}); err != nil {
				t.Errorf("WriteTyped: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < perSender; i++ {
			if err := w.WriteRaw([]byte(`{"event":"assignment.changed"}`)); err != nil {
				t.Errorf("WriteRaw: %v", err)
				return
			}
		}
	}()

	for received := 0; received < 2*perSender; received++ {
		if _, _, err := clientConn.ReadMessage(); err != nil {
			t.Fatalf("read after %d messages: %v", received, err)
		}
	}
	wg.Wait()
}

func TestWriterRawPayloadArrivesVerbatim(t *testing.T) {
	serverConn, clientConn := connPair(t)
	w := NewWriter(serverConn)

	payload := `{"event":"schedule.generated","schedule_id":"s1"}`
	if err := w.WriteRaw([]byte(payload)); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}

	msgType, got, err := clientConn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if msgType != websocket.TextMessage {
		t.Errorf("message type = %d, want text", msgType)
	}
	if string(got) != payload {
		t.Errorf("payload = %q, want %q", got, payload)
	}
}
