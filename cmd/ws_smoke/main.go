package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"levelup_backend/internal/db"
	"levelup_backend/internal/domain"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ur := repository.NewUserRepository(pool)
	ctx := context.Background()

	// prepare users
	uA, err := ur.GetByUsername(ctx, "smokeA")
	if err != nil {
		uA = &domain.User{Username: "smokeA"}
		if err := ur.Create(ctx, uA); err != nil {
			log.Fatalf("create userA: %v", err)
		}
	}

	uB, err := ur.GetByUsername(ctx, "smokeB")
	if err != nil {
		uB = &domain.User{Username: "smokeB"}
		if err := ur.Create(ctx, uB); err != nil {
			log.Fatalf("create userB: %v", err)
		}
	}

	service.InitJWT()
	tokenA, err := service.GenerateJWT(uA.ID)
	if err != nil {
		log.Fatalf("gen token A: %v", err)
	}
	tokenB, err := service.GenerateJWT(uB.ID)
	if err != nil {
		log.Fatalf("gen token B: %v", err)
	}

	dialer := websocket.DefaultDialer

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURLA := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenA)
	wsURLB := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenB)

	connA, _, err := dialer.Dial(wsURLA, nil)
	if err != nil {
		log.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := dialer.Dial(wsURLB, nil)
	if err != nil {
		log.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	// drain history frames sent on connect
	drainHistory := func(conn *websocket.Conn) {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var obj map[string]any
			_ = json.Unmarshal(msg, &obj)
			if t, ok := obj["type"].(string); ok && t == "history" {
				return
			}
		}
	}

	drainHistory(connA)
	drainHistory(connB)

	// A says hello, both ends must see the new_message frame
	if err := connA.WriteMessage(websocket.TextMessage, []byte(`{"content":"hello from smoke"}`)); err != nil {
		log.Fatalf("write A: %v", err)
	}

	readFrame := func(conn *websocket.Conn, name string) {
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Printf("%s read error: %v", name, err)
			return
		}
		var obj map[string]any
		_ = json.Unmarshal(msg, &obj)
		if t, _ := obj["type"].(string); t != "new_message" {
			log.Printf("%s unexpected frame: %s", name, string(msg))
			return
		}
		log.Printf("%s got: %s", name, string(msg))
	}

	readFrame(connA, "A")
	readFrame(connB, "B")

	log.Println("smoke test finished")
}
