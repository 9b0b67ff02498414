package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/restaurant/internal/auth"
	mw "github.com/kiwari-pos/restaurant/internal/middleware"
	"github.com/kiwari-pos/restaurant/internal/pricing"
)

// StrategySwitcher reads and replaces the active pricing strategy.
// Satisfied by *service.OrderService.
type StrategySwitcher interface {
	SetStrategy(st pricing.Strategy)
	Strategy() pricing.Strategy
}

// PricingHandler handles the active pricing strategy.
type PricingHandler struct {
	svc StrategySwitcher
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(svc StrategySwitcher) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// RegisterRoutes registers pricing endpoints on the given Chi router.
// Callers must mount them behind Authenticate.
func (h *PricingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/strategy", h.Get)
	r.With(mw.RequireRole(auth.RoleManager)).Put("/strategy", h.Set)
}

type setStrategyRequest struct {
	Strategy     string `json:"strategy"`
	CouponCode   string `json:"coupon_code"`
	CouponAmount string `json:"coupon_amount"`
	Points       *int   `json:"points"`
}

type strategyResponse struct {
	Name string `json:"name"`
}

// Get returns the name of the active strategy.
func (h *PricingHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, strategyResponse{Name: h.svc.Strategy().Name()})
}

// Set replaces the active strategy for every order priced afterwards.
func (h *PricingHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Strategy == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "strategy is required"})
		return
	}

	params := pricing.Params{CouponCode: req.CouponCode, CouponAmount: req.CouponAmount}
	if req.Points != nil {
		params.Points = strconv.Itoa(*req.Points)
	}

	st, err := pricing.Parse(req.Strategy, params)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	h.svc.SetStrategy(st)
	writeJSON(w, http.StatusOK, strategyResponse{Name: st.Name()})
}
