package orderControllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/shopfront-api/events"
)

const (
	feedWriteTimeout = 5 * time.Second
	feedClientBuffer = 32
)

// feedClient owns one socket. Only its writer goroutine writes to conn.
type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed pushes every published event to the admin panels connected over websocket.
// Publish never waits on a socket: a client whose queue is full is dropped.
type Feed struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*feedClient]struct{}),
	}
}

// GET /admin/events/ws
func (f *Feed) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := &feedClient{conn: conn, send: make(chan []byte, feedClientBuffer)}
		f.add(client)
		go client.writeLoop()
		defer f.remove(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

// Publish implements events.Publisher.
func (f *Feed) Publish(_ context.Context, topic string, data any) {
	payload, err := json.Marshal(events.Event{Topic: topic, Data: data, At: time.Now().UTC()})
	if err != nil {
		log.Printf("❌ Failed to marshal %s for feed: %v", topic, err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		select {
		case client.send <- payload:
		default:
			log.Printf("⚠️ Dropping slow feed client")
			delete(f.clients, client)
			close(client.send)
		}
	}
}

// Clients reports how many panels are connected.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every client.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		delete(f.clients, client)
		close(client.send)
	}
}

func (f *Feed) add(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[client] = struct{}{}
}

func (f *Feed) remove(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[client]; ok {
		delete(f.clients, client)
		close(client.send)
	}
}

// writeLoop drains send until the feed closes it, then says goodbye and closes the socket.
func (fc *feedClient) writeLoop() {
	defer fc.conn.Close()
	for payload := range fc.send {
		_ = fc.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := fc.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	_ = fc.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"),
		time.Now().Add(time.Second))
}
