package broadcast

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans bid events out to watchers. Each RFQ is one topic; connecting a
// watcher subscribes it, disconnecting unsubscribes it. Delivery is
// at-most-once and non-durable: nothing is replayed to late joiners.
type Hub struct {
	// Map of rfqID -> set of watchers on that topic
	subscribers sync.Map // map[uint]*sync.Map of *Watcher

	register   chan *Watcher
	unregister chan *Watcher
	broadcast  chan *message
}

// Watcher is a single subscribed connection.
type Watcher struct {
	ID    string
	RFQID uint
	Conn  *websocket.Conn
	Send  chan []byte

	closeOnce sync.Once
}

type message struct {
	rfqID   uint
	payload []byte
}

// Event is the wire envelope pushed to watchers.
type Event struct {
	Type string      `json:"type"`
	Bid  interface{} `json:"bid"`
}

// BidPlacedPayload serializes a bid into the bid_placed envelope.
func BidPlacedPayload(bid interface{}) ([]byte, error) {
	return json.Marshal(Event{Type: "bid_placed", Bid: bid})
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Watcher),
		unregister: make(chan *Watcher),
		broadcast:  make(chan *message, 256),
	}
}

// Run is the hub's main loop; it owns all membership mutation. Run until ctx
// is cancelled, in a goroutine started at server startup.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case watcher := <-h.register:
			h.subscribe(watcher)
		case watcher := <-h.unregister:
			h.unsubscribe(watcher)
		case msg := <-h.broadcast:
			h.fanOut(msg.rfqID, msg.payload)
		}
	}
}

func (h *Hub) Register(watcher *Watcher) {
	h.register <- watcher
}

func (h *Hub) Unregister(watcher *Watcher) {
	h.unregister <- watcher
}

// Broadcast queues a payload for every watcher of the RFQ's topic.
func (h *Hub) Broadcast(rfqID uint, payload []byte) {
	h.broadcast <- &message{rfqID: rfqID, payload: payload}
}

func (h *Hub) subscribe(watcher *Watcher) {
	topic, _ := h.subscribers.LoadOrStore(watcher.RFQID, &sync.Map{})
	topic.(*sync.Map).Store(watcher, true)
	log.Printf("Watcher %s subscribed to rfq:%d", watcher.ID, watcher.RFQID)
}

func (h *Hub) unsubscribe(watcher *Watcher) {
	if topic, ok := h.subscribers.Load(watcher.RFQID); ok {
		topic.(*sync.Map).Delete(watcher)
	}
	watcher.close()
	log.Printf("Watcher %s unsubscribed from rfq:%d", watcher.ID, watcher.RFQID)
}

func (h *Hub) fanOut(rfqID uint, payload []byte) {
	topic, ok := h.subscribers.Load(rfqID)
	if !ok {
		return
	}
	topic.(*sync.Map).Range(func(key, _ interface{}) bool {
		watcher := key.(*Watcher)
		select {
		case watcher.Send <- payload:
		default:
			// Slow consumer: drop it so one stuck socket cannot block the
			// topic. Membership mutation stays on the hub loop.
			topic.(*sync.Map).Delete(watcher)
			watcher.close()
		}
		return true
	})
}

// SubscriberCount reports how many watchers the RFQ's topic currently has.
func (h *Hub) SubscriberCount(rfqID uint) int {
	topic, ok := h.subscribers.Load(rfqID)
	if !ok {
		return 0
	}
	count := 0
	topic.(*sync.Map).Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}

func (w *Watcher) close() {
	w.closeOnce.Do(func() {
		close(w.Send)
		if w.Conn != nil {
			w.Conn.Close()
		}
	})
}

// WritePump drains Send onto the websocket, keeping the connection alive
// with pings. Runs in its own goroutine per watcher.
func (w *Watcher) WritePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		if w.Conn != nil {
			w.Conn.Close()
		}
	}()

	for {
		select {
		case payload, ok := <-w.Send:
			w.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				w.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := w.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			w.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := w.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump consumes inbound frames until the peer goes away, then
// unregisters the watcher. Disconnection is the only cancellation signal.
func (w *Watcher) ReadPump(hub *Hub) {
	defer hub.Unregister(w)

	w.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	w.Conn.SetPongHandler(func(string) error {
		w.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := w.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Watcher %s read error: %v", w.ID, err)
			}
			return
		}
	}
}
