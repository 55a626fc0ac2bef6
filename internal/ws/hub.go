package ws

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"levelup_backend/internal/domain"
)

const historyLimit = 50

// MessageStore персистит сообщения чата; реализуется repository.MessageRepository
type MessageStore interface {
	Create(ctx context.Context, m *domain.Message) error
	GetRecent(ctx context.Context, channel string, limit int) ([]*domain.Message, error)
}

// Frame - исходящий кадр чата
type Frame struct {
	Type     string            `json:"type"`
	Message  *domain.Message   `json:"message,omitempty"`
	Messages []*domain.Message `json:"messages,omitempty"`
	Title    string            `json:"title,omitempty"`
	Text     string            `json:"text,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Frame types
const (
	FrameNewMessage         = "new_message"
	FrameSystemAnnouncement = "system_announcement"
	FrameHistory            = "history"
	FrameError              = "error"
)

// inbound - входящий кадр {user_id, content}
type inbound struct {
	UserID  int64  `json:"user_id,omitempty"`
	Content string `json:"content"`
}

// Hub - процессный реестр открытых соединений по каналам. Передаётся в
// обработчики явно, чтобы его можно было заменить общим pub/sub-слоем, не
// трогая вызывающий код. На несколько инстансов реестр не разделяется.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]struct{}
	store    MessageStore
}

func NewHub(store MessageStore) *Hub {
	return &Hub{
		channels: make(map[string]map[*Client]struct{}),
		store:    store,
	}
}

// Register добавляет клиента в его канал
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.channels[c.Channel]
	if !ok {
		clients = make(map[*Client]struct{})
		h.channels[c.Channel] = clients
	}
	clients[c] = struct{}{}

	connectionsGauge.WithLabelValues(c.Channel).Inc()
	log.Printf("Hub.Register: user=%d channel=%s clients=%d", c.UserID, c.Channel, len(clients))
}

// Unregister удаляет клиента; пустой канал убирается из реестра
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.channels[c.Channel]
	if !ok {
		return
	}
	if _, present := clients[c]; !present {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.channels, c.Channel)
	}

	connectionsGauge.WithLabelValues(c.Channel).Dec()
	log.Printf("Hub.Unregister: user=%d channel=%s", c.UserID, c.Channel)
}

// HandleInbound валидирует и персистит входящее сообщение, затем рассылает
// new_message всем открытым соединениям канала, включая отправителя.
func (h *Hub) HandleInbound(ctx context.Context, c *Client, raw []byte) {
	var in inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		c.sendFrame(Frame{Type: FrameError, Error: "malformed message"})
		return
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		c.sendFrame(Frame{Type: FrameError, Error: "content must not be empty"})
		return
	}

	// user_id в кадре необязателен, но обязан совпадать с токеном
	if in.UserID != 0 && in.UserID != c.UserID {
		c.sendFrame(Frame{Type: FrameError, Error: "user_id mismatch"})
		return
	}

	msg := &domain.Message{
		UserID:  c.UserID,
		Channel: c.Channel,
		Content: content,
	}
	if err := h.store.Create(ctx, msg); err != nil {
		log.Printf("Hub.HandleInbound: persist failed user=%d: %v", c.UserID, err)
		c.sendFrame(Frame{Type: FrameError, Error: "failed to send message"})
		return
	}

	h.Broadcast(c.Channel, Frame{Type: FrameNewMessage, Message: msg})
}

// Broadcast рассылает кадр всем соединениям канала. Клиенты с забитым
// буфером отбрасываются из реестра, чтобы не блокировать рассылку.
func (h *Hub) Broadcast(channel string, frame Frame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		log.Printf("Hub.Broadcast: marshal failed: %v", err)
		return
	}

	h.mu.RLock()
	var stale []*Client
	for c := range h.channels[channel] {
		if c.enqueue(payload) {
			broadcastCounter.WithLabelValues(channel, frame.Type).Inc()
		} else {
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		log.Printf("Hub.Broadcast: dropping slow client user=%d channel=%s", c.UserID, channel)
		h.Unregister(c)
		c.Close()
	}
}

// BroadcastSystem рассылает system_announcement; такие кадры не
// персистятся как сообщения чата. Пустой канал означает все каналы.
func (h *Hub) BroadcastSystem(channel, title, text string) {
	frame := Frame{Type: FrameSystemAnnouncement, Title: title, Text: text}

	if channel != "" {
		h.Broadcast(channel, frame)
		return
	}

	h.mu.RLock()
	names := make([]string, 0, len(h.channels))
	for name := range h.channels {
		names = append(names, name)
	}
	h.mu.RUnlock()

	for _, name := range names {
		h.Broadcast(name, frame)
	}
}

// sendHistory отправляет новому клиенту последние сообщения канала
func (h *Hub) sendHistory(ctx context.Context, c *Client) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	msgs, err := h.store.GetRecent(ctx, c.Channel, historyLimit)
	if err != nil {
		log.Printf("Hub.sendHistory: user=%d channel=%s: %v", c.UserID, c.Channel, err)
		return
	}
	c.sendFrame(Frame{Type: FrameHistory, Messages: msgs})
}

// ClientCount возвращает число открытых соединений канала
func (h *Hub) ClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}
