package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kiwari-pos/restaurant/internal/logger"
	"github.com/kiwari-pos/restaurant/internal/order"
)

// EventStatusChanged is the event type pushed on every status change.
const EventStatusChanged = "order.status_changed"

type statusPayload struct {
	OrderID     int       `json:"order_id"`
	Customer    string    `json:"customer"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Total       string    `json:"total"`
	ChangedAt   time.Time `json:"changed_at"`
}

// Broadcaster is an order listener that pushes status changes to the
// websocket screens through the hub.
type Broadcaster struct {
	hub *Hub
	log *logger.Logger
}

func NewBroadcaster(hub *Hub, log *logger.Logger) *Broadcaster {
	return &Broadcaster{hub: hub, log: log}
}

func (b *Broadcaster) OnStatusChange(o *order.Order) {
	payload, err := json.Marshal(statusPayload{
		OrderID:     o.ID(),
		Customer:    o.Customer(),
		Kind:        string(o.Kind()),
		Status:      string(o.Status()),
		StatusLabel: o.Status().Label(),
		Total:       o.Total().StringFixed(2),
		ChangedAt:   time.Now().UTC(),
	})
	if err != nil {
		b.log.Error("ws_marshal", "failed to encode status event", err, slog.Int("order_id", o.ID()))
		return
	}

	if !b.hub.Broadcast(o.ID(), Event{Type: EventStatusChanged, Payload: payload}) {
		b.log.Warn("ws_dropped", "broadcast queue full, status event dropped", slog.Int("order_id", o.ID()))
	}
}

func logAttrs(clientID uuid.UUID, staff string, orderID int) []slog.Attr {
	return []slog.Attr{
		slog.String("client_id", clientID.String()),
		slog.String("staff", staff),
		slog.Int("order_id", orderID),
	}
}
