package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 4096
)

type Client struct {
	UserID  int64
	Channel string
	Conn    *websocket.Conn
	Send    chan []byte

	hub *Hub

	// mu сериализует постановку в Send и его закрытие: хаб может закрыть
	// клиента (медленный потребитель), пока readPump ещё шлёт кадры
	mu     sync.Mutex
	closed bool
}

func NewClient(userID int64, channel string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		UserID:  userID,
		Channel: channel,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		hub:     hub,
	}
}

// Run регистрирует клиента и крутит read/write pump до разрыва соединения
func (c *Client) Run(ctx context.Context) {
	go c.writePump()

	c.hub.Register(c)
	c.hub.sendHistory(ctx, c)

	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.Conn.SetReadLimit(readLimit)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Client.readPump: user=%d read error: %v", c.UserID, err)
			}
			return
		}
		c.hub.HandleInbound(ctx, c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("Client.writePump: user=%d write error: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue ставит кадр в очередь отправки. Возвращает false, если клиент
// уже закрыт или буфер забит; слать в закрытый канал нельзя.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

// sendFrame ставит кадр в очередь отправки только этому клиенту
func (c *Client) sendFrame(f Frame) {
	payload, err := json.Marshal(f)
	if err != nil {
		return
	}
	if !c.enqueue(payload) {
		log.Printf("Client.sendFrame: user=%d frame dropped", c.UserID)
	}
}

// Close закрывает канал отправки; writePump закроет соединение
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}
