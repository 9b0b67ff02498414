package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiwari-pos/restaurant/internal/auth"
	"github.com/kiwari-pos/restaurant/internal/config"
	"github.com/kiwari-pos/restaurant/internal/menu"
	mw "github.com/kiwari-pos/restaurant/internal/middleware"
)

// RestaurantHandler serves the restaurant metadata and the menu.
type RestaurantHandler struct {
	restaurant *config.Restaurant
	catalog    *menu.Catalog
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(restaurant *config.Restaurant, catalog *menu.Catalog) *RestaurantHandler {
	return &RestaurantHandler{restaurant: restaurant, catalog: catalog}
}

// RegisterRoutes registers the public read endpoints.
func (h *RestaurantHandler) RegisterRoutes(r chi.Router) {
	r.Get("/restaurant", h.Get)
	r.Get("/menu", h.Menu)
}

// RegisterManagerRoutes registers the endpoints that change the restaurant.
// Callers must mount them behind Authenticate.
func (h *RestaurantHandler) RegisterManagerRoutes(r chi.Router) {
	r.With(mw.RequireRole(auth.RoleManager)).Patch("/restaurant", h.Update)
}

// --- Request / Response types ---

type restaurantResponse struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Open        bool   `json:"open"`
	NextOrderID int    `json:"next_order_id"`
}

type updateRestaurantRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Open    *bool  `json:"open"`
}

type menuItemResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type menuResponse struct {
	Items  []menuItemResponse `json:"items"`
	Extras []string           `json:"extras"`
}

// --- Handlers ---

// Get returns the restaurant metadata.
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.toResponse())
}

// Update changes the metadata. Empty fields keep their current value.
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	h.restaurant.Update(req.Name, req.Address, req.Phone)
	if req.Open != nil {
		h.restaurant.SetOpen(*req.Open)
	}
	writeJSON(w, http.StatusOK, h.toResponse())
}

// Menu lists the catalog with prices and the accepted extras.
func (h *RestaurantHandler) Menu(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.Entries()
	items := make([]menuItemResponse, len(entries))
	for i, e := range entries {
		items[i] = menuItemResponse{
			Code:        e.Code,
			Name:        e.Item.Name(),
			Description: e.Item.Description(),
			Price:       e.Item.Price().StringFixed(2),
		}
	}
	writeJSON(w, http.StatusOK, menuResponse{Items: items, Extras: menu.ExtraCodes()})
}

func (h *RestaurantHandler) toResponse() restaurantResponse {
	info := h.restaurant.Info()
	return restaurantResponse{
		Name:        info.Name,
		Address:     info.Address,
		Phone:       info.Phone,
		Open:        info.Open,
		NextOrderID: h.restaurant.PeekOrderID(),
	}
}
