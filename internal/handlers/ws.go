package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	feedClients   = make(map[*websocket.Conn]bool)
	feedClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type checkEvent struct {
	Type           string             `json:"type"`
	ResourceID     uint               `json:"resource_id"`
	Status         types.HealthStatus `json:"status"`
	ResponseTimeMs int                `json:"response_time_ms"`
	Message        string             `json:"message"`
	CheckedAt      time.Time          `json:"checked_at"`
}

// BroadcastCheck pushes a stored health check to every connected feed
// client. Wired as the health check service's OnCheck hook.
func BroadcastCheck(check models.HealthCheck) {
	feedClientsMu.RLock()
	if len(feedClients) == 0 {
		feedClientsMu.RUnlock()
		return
	}

	// Copy the client set so the lock is not held while writing.
	clients := make([]*websocket.Conn, 0, len(feedClients))
	for conn := range feedClients {
		clients = append(clients, conn)
	}
	feedClientsMu.RUnlock()

	event := checkEvent{
		Type:           "check_result",
		ResourceID:     check.ResourceID,
		Status:         check.Status,
		ResponseTimeMs: check.ResponseTimeMs,
		Message:        check.Message,
		CheckedAt:      check.CheckedAt,
	}

	for _, conn := range clients {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Failed to broadcast check to client: %v", err)
			feedClientsMu.Lock()
			delete(feedClients, conn)
			feedClientsMu.Unlock()
			conn.Close()
		}
	}
}

// CheckFeed upgrades the connection and streams probe results to the client
// until it disconnects.
func CheckFeed(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	feedClientsMu.Lock()
	feedClients[conn] = true
	feedClientsMu.Unlock()

	defer func() {
		feedClientsMu.Lock()
		delete(feedClients, conn)
		feedClientsMu.Unlock()
		conn.Close()

		log.Println("Check feed connection closed")
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "Check feed connection established",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		// Send pings periodically
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for ping: %v", err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for check feed client: %v", err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline: %v", err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Check feed error: %v", err)
			}
			break
		}
	}
}
