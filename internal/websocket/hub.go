package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/geoguess/internal/logger"
	"github.com/thereayou/geoguess/internal/models"
)

// MessageType определяет типы сообщений ленты
type MessageType string

const (
	TypePing   MessageType = "ping"
	TypeAction MessageType = "action"
	TypeError  MessageType = "error"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub рассылает записанные действия подключённым администраторам
type Hub struct {
	clients map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	broadcast chan []byte

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.sendToAll(message)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub и ждёт завершения Run
func (h *Hub) Stop() {
	h.cancel()
	<-h.done
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
		delete(h.clients, id)
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.ctx.Done():
		return ErrHubStopped
	}
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Broadcast ставит готовое сообщение в очередь рассылки
func (h *Hub) Broadcast(message []byte) error {
	if h.ctx.Err() != nil {
		return ErrHubStopped
	}
	select {
	case h.broadcast <- message:
		return nil
	case <-h.ctx.Done():
		return ErrHubStopped
	}
}

// PublishAction рассылка в пределах одного процесса, без Redis
func (h *Hub) PublishAction(_ context.Context, action *models.Action) error {
	data, err := EncodeAction(action)
	if err != nil {
		return err
	}
	return h.Broadcast(data)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	logger.Debugf("feed client registered: %s (%s)", client.ID, client.Username)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)

		logger.Debugf("feed client unregistered: %s (%s)", client.ID, client.Username)
	}
}

func (h *Hub) sendToAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- message:
		default:
			logger.Warningf("feed client %s: %v", client.ID, ErrClientQueueFull)
		}
	}
}

func (h *Hub) ping() {
	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		h.sendToAll(data)
	}
}

// EncodeAction сериализует действие в сообщение ленты
func EncodeAction(action *models.Action) ([]byte, error) {
	data, err := json.Marshal(action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{
		Type:      TypeAction,
		Data:      data,
		Timestamp: time.Now(),
	})
}
