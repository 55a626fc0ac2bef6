package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"levelup_backend/internal/config"
	httpserver "levelup_backend/internal/http"
	"levelup_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func fetchChatHistory(ctx context.Context, t *testing.T, baseURL string) []map[string]any {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/chat/history", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d", resp.StatusCode)
	}
	var body struct {
		Messages []map[string]any `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	return body.Messages
}

// End-to-end chat relay: real routes, real DB, two websocket clients.
func TestChat_E2E_Relay(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	uA := createUser(t, db, "chatA")
	uB := createUser(t, db, "chatB")

	t.Setenv("JWT_SECRET", "integration-secret")
	service.InitJWT()
	tokenA, err := service.GenerateJWT(uA.ID)
	if err != nil {
		t.Fatalf("gen token A: %v", err)
	}
	tokenB, err := service.GenerateJWT(uB.ID)
	if err != nil {
		t.Fatalf("gen token B: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{
		APIRateLimit:   1000,
		APIRateWindow:  60,
		AuthRateLimit:  1000,
		AuthRateWindow: 60,
	}
	httpserver.RegisterRoutes(r, db, cfg, "test")
	ts := httptest.NewServer(r)
	defer ts.Close()

	wsBase := strings.Replace(ts.URL, "http", "ws", 1)
	d := websocket.DefaultDialer

	connA, _, err := d.Dial(wsBase+"/ws?token="+tokenA, nil)
	if err != nil {
		t.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := d.Dial(wsBase+"/ws?token="+tokenB, nil)
	if err != nil {
		t.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	// one reader goroutine per connection to avoid concurrent ReadMessage calls
	startReader := func(conn *websocket.Conn) chan []byte {
		out := make(chan []byte, 16)
		go func() {
			defer close(out)
			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}
				out <- msg
			}
		}()
		return out
	}

	chA := startReader(connA)
	chB := startReader(connB)

	// each client gets a history frame on connect before anything else
	waitFor := func(ch chan []byte, frameType string, tmo time.Duration) map[string]any {
		deadline := time.Now().Add(tmo)
		for time.Now().Before(deadline) {
			select {
			case m, ok := <-ch:
				if !ok {
					return nil
				}
				var obj map[string]any
				_ = json.Unmarshal(m, &obj)
				if obj["type"] == frameType {
					return obj
				}
			case <-time.After(25 * time.Millisecond):
			}
		}
		return nil
	}

	if waitFor(chA, "history", 2*time.Second) == nil {
		t.Fatal("A did not receive history frame")
	}
	if waitFor(chB, "history", 2*time.Second) == nil {
		t.Fatal("B did not receive history frame")
	}

	if err := connA.WriteMessage(websocket.TextMessage, []byte(`{"content":"hello from A"}`)); err != nil {
		t.Fatalf("write A: %v", err)
	}

	frameA := waitFor(chA, "new_message", 3*time.Second)
	if frameA == nil {
		t.Fatal("A did not receive its own message back")
	}
	frameB := waitFor(chB, "new_message", 3*time.Second)
	if frameB == nil {
		t.Fatal("B did not receive A's message")
	}

	msg, _ := frameB["message"].(map[string]any)
	if msg == nil {
		t.Fatalf("frame has no message payload: %v", frameB)
	}
	if msg["content"] != "hello from A" {
		t.Errorf("content = %v, want %q", msg["content"], "hello from A")
	}
	if msg["username"] != uA.Username {
		t.Errorf("username = %v, want %q", msg["username"], uA.Username)
	}

	// message persisted: visible over REST history
	hist := fetchChatHistory(ctx, t, ts.URL)
	found := false
	for _, m := range hist {
		if m["content"] == "hello from A" {
			found = true
		}
	}
	if !found {
		t.Error("sent message missing from REST history")
	}

	// empty content is rejected with an error frame, only to the sender
	if err := connB.WriteMessage(websocket.TextMessage, []byte(`{"content":"   "}`)); err != nil {
		t.Fatalf("write B: %v", err)
	}
	if waitFor(chB, "error", 2*time.Second) == nil {
		t.Fatal("B did not receive error frame for empty message")
	}
}
