package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/restaurant/internal/auth"
	"github.com/kiwari-pos/restaurant/internal/menu"
	mw "github.com/kiwari-pos/restaurant/internal/middleware"
	"github.com/kiwari-pos/restaurant/internal/order"
	"github.com/kiwari-pos/restaurant/internal/pricing"
	"github.com/kiwari-pos/restaurant/internal/service"
)

// OrderServicer defines the order operations used by the handler.
// Satisfied by *service.OrderService.
type OrderServicer interface {
	CreateOrder(req service.CreateOrderRequest) (*service.OrderView, error)
	GetOrder(id int) (*service.OrderView, error)
	ListOrders(status order.Status) []service.OrderView
	AddItem(id int, req service.ItemRequest) (*service.OrderView, error)
	RemoveItem(id, index int) (*service.OrderView, error)
	SetStatus(id int, status order.Status) (*service.OrderView, error)
	Quote(id int, st pricing.Strategy) (*service.QuoteView, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc OrderServicer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Callers must mount them behind Authenticate.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/items", h.AddItem)
	r.Delete("/{id}/items/{idx}", h.RemoveItem)
	r.With(mw.RequireRole(auth.RoleKitchen, auth.RoleWaiter)).Patch("/{id}/status", h.UpdateStatus)
	r.Get("/{id}/quote", h.Quote)
}

// --- Request / Response types ---

type createOrderRequest struct {
	Kind            string        `json:"kind"`
	CustomerName    string        `json:"customer_name"`
	DeliveryAddress string        `json:"delivery_address"`
	Items           []itemRequest `json:"items"`
}

type itemRequest struct {
	Code   string         `json:"code"`
	Extras []extraRequest `json:"extras"`
}

type extraRequest struct {
	Code  string `json:"code"`
	Sauce string `json:"sauce,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderItemResponse struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type orderResponse struct {
	ID              int                 `json:"id"`
	Customer        string              `json:"customer"`
	Kind            string              `json:"kind"`
	KindLabel       string              `json:"kind_label"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	Status          string              `json:"status"`
	StatusLabel     string              `json:"status_label"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []orderItemResponse `json:"items"`
	Subtotal        string              `json:"subtotal"`
	Fee             string              `json:"fee"`
	Total           string              `json:"total"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
}

type quoteResponse struct {
	OrderID  int    `json:"order_id"`
	Strategy string `json:"strategy"`
	Total    string `json:"total"`
	Final    string `json:"final"`
	Discount string `json:"discount"`
}

// --- Handlers ---

// Create creates a new order from catalog items.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Kind == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kind is required"})
		return
	}

	items := make([]service.ItemRequest, len(req.Items))
	for i, it := range req.Items {
		items[i] = toItemRequest(it)
	}

	v, err := h.svc.CreateOrder(service.CreateOrderRequest{
		Kind:            req.Kind,
		CustomerName:    req.CustomerName,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
	})
	if err != nil {
		writeOrderError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(v))
}

// List returns every order, optionally filtered by ?status=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var status order.Status
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := order.ParseStatus(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		status = parsed
	}

	views := h.svc.ListOrders(status)
	resp := orderListResponse{Orders: make([]orderResponse, len(views))}
	for i := range views {
		resp.Orders[i] = toOrderResponse(&views[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single order.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	v, err := h.svc.GetOrder(id)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(v))
}

// AddItem appends a catalog item to an order.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "code is required"})
		return
	}

	v, err := h.svc.AddItem(id, toItemRequest(req))
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(v))
}

// RemoveItem removes the item at {idx} from an order.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item index"})
		return
	}

	v, err := h.svc.RemoveItem(id, idx)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(v))
}

// UpdateStatus sets the order status. Any status may follow any other.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	v, err := h.svc.SetStatus(id, status)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(v))
}

// Quote prices an order with the active strategy, or with the one named
// by ?strategy= (plus coupon_code, coupon_amount or points).
func (h *OrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var st pricing.Strategy
	q := r.URL.Query()
	if code := q.Get("strategy"); code != "" {
		parsed, err := pricing.Parse(code, pricing.Params{
			CouponCode:   q.Get("coupon_code"),
			CouponAmount: q.Get("coupon_amount"),
			Points:       q.Get("points"),
		})
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		st = parsed
	}

	v, err := h.svc.Quote(id, st)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{
		OrderID:  v.OrderID,
		Strategy: v.Strategy,
		Total:    v.Total.StringFixed(2),
		Final:    v.Final.StringFixed(2),
		Discount: v.Discount.StringFixed(2),
	})
}

// --- Helpers ---

func parseOrderID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return 0, false
	}
	return id, true
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
	case errors.Is(err, service.ErrRestaurantClosed):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrCustomerName),
		errors.Is(err, service.ErrDeliveryAddress),
		errors.Is(err, service.ErrItemIndex),
		errors.Is(err, order.ErrInvalidKind),
		errors.Is(err, menu.ErrUnknownMenuItem),
		errors.Is(err, menu.ErrUnknownExtra),
		errors.Is(err, menu.ErrSauceRequired):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func toItemRequest(it itemRequest) service.ItemRequest {
	extras := make([]menu.Extra, len(it.Extras))
	for i, ex := range it.Extras {
		extras[i] = menu.Extra{Code: ex.Code, Sauce: ex.Sauce}
	}
	return service.ItemRequest{Code: it.Code, Extras: extras}
}

func toOrderResponse(v *service.OrderView) orderResponse {
	items := make([]orderItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = orderItemResponse{
			Index:       it.Index,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price.StringFixed(2),
		}
	}
	return orderResponse{
		ID:              v.ID,
		Customer:        v.Customer,
		Kind:            string(v.Kind),
		KindLabel:       v.Kind.Label(),
		DeliveryAddress: v.DeliveryAddress,
		Status:          string(v.Status),
		StatusLabel:     v.Status.Label(),
		CreatedAt:       v.CreatedAt,
		Items:           items,
		Subtotal:        v.Subtotal.StringFixed(2),
		Fee:             v.Fee.StringFixed(2),
		Total:           v.Total.StringFixed(2),
	}
}
