package handlers

import (
	"log"
	"net/http"
	"parts_market/internal/broadcast"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development (use proper CORS in production)
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler attaches watchers to an RFQ's broadcast topic.
type WSHandler struct {
	hub       *broadcast.Hub
	sendDepth int
}

func NewWSHandler(hub *broadcast.Hub, sendDepth int) *WSHandler {
	return &WSHandler{hub: hub, sendDepth: sendDepth}
}

// Watch upgrades the connection and subscribes it to the RFQ's topic until
// the peer disconnects.
func (h *WSHandler) Watch(c *gin.Context) {
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	watcher := &broadcast.Watcher{
		ID:    uuid.New().String(),
		RFQID: rfqID,
		Conn:  conn,
		Send:  make(chan []byte, h.sendDepth),
	}

	h.hub.Register(watcher)
	go watcher.WritePump()
	go watcher.ReadPump(h.hub)
}
