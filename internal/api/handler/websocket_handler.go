package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OccupancyFeed fans spot transitions out to connected websocket clients
// so occupancy boards track entries and settlements live.
type OccupancyFeed struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	mutex      sync.RWMutex
}

func NewOccupancyFeed() *OccupancyFeed {
	return &OccupancyFeed{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 16),
	}
}

func (f *OccupancyFeed) Start() {
	for {
		select {
		case client := <-f.register:
			f.mutex.Lock()
			f.clients[client] = true
			f.mutex.Unlock()
			log.Printf("Occupancy feed client connected. Total: %d", len(f.clients))

		case client := <-f.unregister:
			f.mutex.Lock()
			if _, ok := f.clients[client]; ok {
				delete(f.clients, client)
				client.Close()
			}
			f.mutex.Unlock()
			log.Printf("Occupancy feed client disconnected. Total: %d", len(f.clients))

		case message := <-f.broadcast:
			f.mutex.RLock()
			for client := range f.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					log.Printf("Error writing to occupancy feed client: %v", err)
					client.Close()
					delete(f.clients, client)
				}
			}
			f.mutex.RUnlock()
		}
	}
}

// NotifySpotChange satisfies service.OccupancyNotifier. It never blocks
// the settlement path: when the broadcast buffer is full the event is
// dropped.
func (f *OccupancyFeed) NotifySpotChange(notification domain.SpotNotification) {
	if notification.EventID == "" {
		notification.EventID = uuid.New().String()
	}
	if notification.Timestamp.IsZero() {
		notification.Timestamp = time.Now().UTC()
	}

	message, err := json.Marshal(notification)
	if err != nil {
		log.Printf("Error marshaling spot notification: %v", err)
		return
	}

	select {
	case f.broadcast <- message:
	default:
		log.Println("Occupancy feed buffer is full, dropping notification")
	}
}

type WebSocketHandler struct {
	feed *OccupancyFeed
}

func NewWebSocketHandler(feed *OccupancyFeed) *WebSocketHandler {
	return &WebSocketHandler{feed: feed}
}

// GET /ws
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	h.feed.register <- conn

	go func() {
		defer func() {
			h.feed.unregister <- conn
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket error: %v", err)
				}
				break
			}
		}
	}()
}
