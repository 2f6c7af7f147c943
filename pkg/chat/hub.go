package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/metrics"
	"golang.org/x/net/websocket"
)

const (
	HistorySize      = 50
	MaxMessageLength = 500

	chatMessageIDFormat = "TL:CHAT:%s"
	sendBufferSize      = 64
)

var ErrInvalidMessage = errors.New("invalid chat message")

type incomingMessage struct {
	Text string `json:"text"`
}

type client struct {
	conn   *websocket.Conn
	room   string
	userID string
	send   chan *ctdf.ChatMessage
}

// Hub fans chat messages out to every client connected to the same room
type Hub struct {
	Store   MessageStore
	Metrics *metrics.Collector

	rooms map[string]map[*client]struct{}
	mutex sync.RWMutex
}

func NewHub(store MessageStore, collector *metrics.Collector) *Hub {
	return &Hub{
		Store:   store,
		Metrics: collector,
		rooms:   map[string]map[*client]struct{}{},
	}
}

func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /chat/{room}", websocket.Server{
		Handler: h.serveClient,
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	return mux
}

func (h *Hub) Clients(room string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.rooms[room])
}

func (h *Hub) register(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.rooms[c.room] == nil {
		h.rooms[c.room] = map[*client]struct{}{}
	}
	h.rooms[c.room][c] = struct{}{}

	if h.Metrics != nil {
		h.Metrics.ChatClients.Inc()
	}
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.rooms[c.room][c]; !exists {
		return
	}

	delete(h.rooms[c.room], c)
	if len(h.rooms[c.room]) == 0 {
		delete(h.rooms, c.room)
	}
	close(c.send)

	if h.Metrics != nil {
		h.Metrics.ChatClients.Dec()
	}
}

func (h *Hub) broadcast(message *ctdf.ChatMessage) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for c := range h.rooms[message.Room] {
		select {
		case c.send <- message:
		default:
			log.Warn().Str("room", message.Room).Str("user", c.userID).Msg("Chat client too slow, dropping message")
		}
	}

	if h.Metrics != nil {
		h.Metrics.ChatMessages.Inc()
	}
}

func (h *Hub) newMessage(room string, userID string, incoming *incomingMessage) (*ctdf.ChatMessage, error) {
	text := strings.TrimSpace(incoming.Text)

	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidMessage)
	}
	if len(text) > MaxMessageLength {
		return nil, fmt.Errorf("%w: text longer than %d", ErrInvalidMessage, MaxMessageLength)
	}

	return &ctdf.ChatMessage{
		PrimaryIdentifier: fmt.Sprintf(chatMessageIDFormat, uuid.NewString()),
		Room:              room,
		UserID:            userID,
		Text:              text,
		CreationDateTime:  time.Now(),
	}, nil
}

func (h *Hub) serveClient(conn *websocket.Conn) {
	defer conn.Close()

	request := conn.Request()
	room := request.PathValue("room")
	userID := request.URL.Query().Get("user")
	if userID == "" {
		userID = "anonymous"
	}

	c := &client{
		conn:   conn,
		room:   room,
		userID: userID,
		send:   make(chan *ctdf.ChatMessage, sendBufferSize),
	}

	history, err := h.Store.History(request.Context(), room, HistorySize)
	if err != nil {
		log.Error().Err(err).Str("room", room).Msg("Failed to load chat history")
	}
	for _, message := range history {
		c.send <- message
	}

	h.register(c)
	defer h.unregister(c)

	go c.writePump()

	log.Info().Str("room", room).Str("user", userID).Msg("Chat client joined")

	for {
		var incoming incomingMessage
		if err := websocket.JSON.Receive(conn, &incoming); err != nil {
			log.Debug().Err(err).Str("room", room).Str("user", userID).Msg("Chat client left")
			return
		}

		message, err := h.newMessage(room, userID, &incoming)
		if err != nil {
			log.Debug().Err(err).Str("room", room).Msg("Rejected chat message")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = h.Store.Save(ctx, message)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("room", room).Msg("Failed to store chat message")
			continue
		}

		h.broadcast(message)
	}
}

func (c *client) writePump() {
	for message := range c.send {
		if err := websocket.JSON.Send(c.conn, message); err != nil {
			log.Debug().Err(err).Str("room", c.room).Msg("Failed to send chat message")
			c.conn.Close()
			return
		}
	}
}
