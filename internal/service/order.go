// Package service coordinates orders for the HTTP layer: it owns the
// in-memory order book, builds items from the menu catalog and prices
// orders with the active strategy.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kiwari-pos/restaurant/internal/config"
	"github.com/kiwari-pos/restaurant/internal/logger"
	"github.com/kiwari-pos/restaurant/internal/menu"
	"github.com/kiwari-pos/restaurant/internal/order"
	"github.com/kiwari-pos/restaurant/internal/pricing"
	"github.com/shopspring/decimal"
)

// Errors returned by the order service.
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrRestaurantClosed = errors.New("restaurant is closed")
	ErrCustomerName     = errors.New("customer_name is required")
	ErrDeliveryAddress  = errors.New("delivery_address is required for DELIVERY orders")
	ErrItemIndex        = errors.New("item index out of range")
)

// CreateOrderRequest is the validated input for creating an order.
type CreateOrderRequest struct {
	Kind            string
	CustomerName    string
	DeliveryAddress string
	Items           []ItemRequest
}

// ItemRequest is one catalog item with its extras, innermost first.
type ItemRequest struct {
	Code   string
	Extras []menu.Extra
}

// ItemView is a priced line of an order.
type ItemView struct {
	Index       int
	Name        string
	Description string
	Price       decimal.Decimal
}

// OrderView is a snapshot of an order taken under the service lock.
type OrderView struct {
	ID              int
	Customer        string
	Kind            order.Kind
	DeliveryAddress string
	Status          order.Status
	CreatedAt       time.Time
	Items           []ItemView
	Subtotal        decimal.Decimal
	Fee             decimal.Decimal
	Total           decimal.Decimal
}

// QuoteView is the price of one order under a strategy.
type QuoteView struct {
	OrderID int
	pricing.Quote
}

// OrderService handles order business logic. It is safe for concurrent use.
type OrderService struct {
	mu         sync.Mutex
	restaurant *config.Restaurant
	catalog    *menu.Catalog
	pricing    *pricing.Service
	listeners  []order.Listener
	log        *logger.Logger
	orders     map[int]*order.Order
}

// NewOrderService creates an OrderService. listeners are attached to every
// order it creates, in the given order.
func NewOrderService(restaurant *config.Restaurant, catalog *menu.Catalog, prices *pricing.Service, log *logger.Logger, listeners ...order.Listener) *OrderService {
	return &OrderService{
		restaurant: restaurant,
		catalog:    catalog,
		pricing:    prices,
		listeners:  listeners,
		log:        log,
		orders:     make(map[int]*order.Order),
	}
}

// CreateOrder validates the request, builds its items and registers a new
// pending order. Listeners are attached before the order is returned.
func (s *OrderService) CreateOrder(req CreateOrderRequest) (*OrderView, error) {
	if !s.restaurant.IsOpen() {
		return nil, ErrRestaurantClosed
	}

	kind, err := order.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}

	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		return nil, ErrCustomerName
	}

	address := strings.TrimSpace(req.DeliveryAddress)
	if kind == order.KindDelivery && address == "" {
		return nil, ErrDeliveryAddress
	}

	// Items are built before an id is taken.
	items := make([]menu.MenuItem, 0, len(req.Items))
	for i, ir := range req.Items {
		item, err := s.catalog.Build(ir.Code, ir.Extras...)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, item)
	}

	o, err := order.New(kind, s.restaurant.NextOrderID(), customer, address)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		o.AddItem(item)
	}
	for _, l := range s.listeners {
		o.Attach(l)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID()] = o

	s.log.Info("order_created", "order created",
		slog.Int("order_id", o.ID()),
		slog.String("kind", string(kind)),
		slog.Int("items", len(items)),
	)
	return snapshot(o), nil
}

// GetOrder returns a snapshot of one order.
func (s *OrderService) GetOrder(id int) (*OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return snapshot(o), nil
}

// ListOrders returns every order sorted by id, optionally filtered by status.
func (s *OrderService) ListOrders(status order.Status) []OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]OrderView, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && o.Status() != status {
			continue
		}
		views = append(views, *snapshot(o))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

// AddItem builds a catalog item and appends it to an order.
func (s *OrderService) AddItem(id int, req ItemRequest) (*OrderView, error) {
	item, err := s.catalog.Build(req.Code, req.Extras...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.AddItem(item)
	return snapshot(o), nil
}

// RemoveItem removes the item at index from an order.
func (s *OrderService) RemoveItem(id, index int) (*OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if !o.RemoveAt(index) {
		return nil, fmt.Errorf("%w: %d", ErrItemIndex, index)
	}
	return snapshot(o), nil
}

// SetStatus changes the status of an order and notifies its listeners
// synchronously. A panicking listener propagates to the caller.
func (s *OrderService) SetStatus(id int, status order.Status) (*OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	prev := o.Status()
	o.SetStatus(status)

	s.log.Info("order_status_changed", "order status changed",
		slog.Int("order_id", id),
		slog.String("from", string(prev)),
		slog.String("to", string(status)),
	)
	return snapshot(o), nil
}

// Quote prices an order with st, or with the active strategy when st is nil.
func (s *OrderService) Quote(id int, st pricing.Strategy) (*QuoteView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	var q pricing.Quote
	if st != nil {
		q = pricing.QuoteWith(st, o)
	} else {
		q = s.pricing.Quote(o)
	}
	return &QuoteView{OrderID: id, Quote: q}, nil
}

// SetStrategy replaces the active pricing strategy.
func (s *OrderService) SetStrategy(st pricing.Strategy) {
	s.pricing.SetStrategy(st)
	s.log.Info("pricing_strategy_changed", "pricing strategy changed",
		slog.String("strategy", s.pricing.Strategy().Name()))
}

// Strategy returns the active pricing strategy.
func (s *OrderService) Strategy() pricing.Strategy {
	return s.pricing.Strategy()
}

func snapshot(o *order.Order) *OrderView {
	items := o.Items()
	views := make([]ItemView, len(items))
	for i, it := range items {
		views[i] = ItemView{
			Index:       i,
			Name:        it.Name(),
			Description: it.Description(),
			Price:       it.Price(),
		}
	}
	return &OrderView{
		ID:              o.ID(),
		Customer:        o.Customer(),
		Kind:            o.Kind(),
		DeliveryAddress: o.DeliveryAddress(),
		Status:          o.Status(),
		CreatedAt:       o.CreatedAt(),
		Items:           views,
		Subtotal:        o.Subtotal(),
		Fee:             o.Fee(),
		Total:           o.Total(),
	}
}
