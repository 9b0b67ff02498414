package ws

import (
	"context"
	"encoding/json"
	"sync"
)

// AllOrders is the room of clients following every order.
const AllOrders = 0

// Event is a websocket message pushed to clients.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// orderEvent routes an event to the room of one order.
type orderEvent struct {
	OrderID int
	Event   Event
}

// Hub keeps the connected clients grouped by the order they follow and
// fans events out to them.
type Hub struct {
	// Registered clients by order ID; AllOrders holds the firehose clients
	rooms map[int]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *orderEvent

	// closed once Run has returned
	done chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[int]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *orderEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is done.
// Start it in its own goroutine: go hub.Run(ctx)
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.orderID] == nil {
				h.rooms[client.orderID] = make(map[*Client]bool)
			}
			h.rooms[client.orderID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			message, err := json.Marshal(event.Event)
			if err != nil {
				continue
			}

			h.mu.Lock()
			h.deliver(event.OrderID, message)
			if event.OrderID != AllOrders {
				h.deliver(AllOrders, message)
			}
			h.mu.Unlock()
		}
	}
}

// deliver sends message to every client of a room. A client whose buffer
// is full is dropped. Callers hold h.mu.
func (h *Hub) deliver(orderID int, message []byte) {
	for client := range h.rooms[orderID] {
		select {
		case client.send <- message:
		default:
			h.remove(client)
		}
	}
}

// remove unregisters client and closes its send channel. Callers hold h.mu.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.orderID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.orderID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.rooms {
		for client := range clients {
			h.remove(client)
		}
	}
}

// Register adds client to the hub. It returns false if the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes client from the hub; it is a no-op once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues event for the clients following orderID and for the
// AllOrders room. It never blocks: when the queue is full the event is
// dropped and Broadcast reports false.
func (h *Hub) Broadcast(orderID int, event Event) bool {
	select {
	case h.broadcast <- &orderEvent{OrderID: orderID, Event: event}:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of clients following orderID.
func (h *Hub) ClientCount(orderID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[orderID])
}
