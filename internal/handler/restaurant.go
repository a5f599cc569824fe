package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/antoinevw/kebapp/internal/service"
)

// RestaurantHandler exposes the shared restaurant collection and the
// marker feed the map widget renders.
type RestaurantHandler struct {
	restaurants *service.RestaurantService
	logger      *slog.Logger
}

// NewRestaurantHandler creates a RestaurantHandler.
func NewRestaurantHandler(restaurants *service.RestaurantService, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, logger: logger}
}

type createRestaurantRequest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// HandleCreate places a restaurant at a clicked coordinate. The new
// restaurant is immediately visible to every session.
//
// HTTP: POST /api/restaurants
// BODY: {"name": "Kebab Royal", "lat": 48.8566, "lng": 2.3522}
func (h *RestaurantHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid restaurant JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	restaurant, err := h.restaurants.Create(r.Context(), req.Name, req.Lat, req.Lng)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, restaurant)
}

// HandleList returns every restaurant in placement order.
//
// HTTP: GET /api/restaurants
func (h *RestaurantHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurants.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurants)
}

// HandleMap returns the widget feed: marker list plus fallback center.
//
// HTTP: GET /api/map
func (h *RestaurantHandler) HandleMap(w http.ResponseWriter, r *http.Request) {
	view, err := h.restaurants.Map(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
