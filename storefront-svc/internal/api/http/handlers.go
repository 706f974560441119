package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/service"
	"foodhub/storefront-svc/internal/timefmt"

	"github.com/gorilla/mux"
)

type Handler struct {
	Catalog   *service.CatalogService
	Pricing   *service.PricingService
	Orders    *service.OrderService
	Analytics *service.AnalyticsService
}

func NewHandler(catalog *service.CatalogService, pricing *service.PricingService, orders *service.OrderService, analytics *service.AnalyticsService) *Handler {
	return &Handler{
		Catalog:   catalog,
		Pricing:   pricing,
		Orders:    orders,
		Analytics: analytics,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")

	r.HandleFunc("/api/foods", h.getFoods).Methods("GET")
	r.HandleFunc("/api/foods/{id}", h.getFood).Methods("GET")
	r.HandleFunc("/api/foods/{id}/reviews", h.getFoodReviews).Methods("GET")
	r.HandleFunc("/api/foods/{id}/ratings", h.getFoodRatings).Methods("GET")

	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/vouchers", h.getVouchers).Methods("GET")
	r.HandleFunc("/api/checkout/quote", h.quote).Methods("POST")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/cancel", h.cancelOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/confirm-received", h.confirmReceived).Methods("POST")
	r.HandleFunc("/api/orders/{id}/review", h.submitReview).Methods("POST")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	h.registerAdminRoutes(r.PathPrefix("/api/admin").Subrouter())
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Restaurants())
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Catalog.Restaurant(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) getFoods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	includeUnavailable, _ := strconv.ParseBool(q.Get("include_unavailable"))
	writeJSON(w, http.StatusOK, h.Catalog.Foods(service.FoodFilter{
		RestaurantID:       q.Get("restaurant_id"),
		Category:           q.Get("category"),
		IncludeUnavailable: includeUnavailable,
	}))
}

func (h *Handler) getFood(w http.ResponseWriter, r *http.Request) {
	food, err := h.Catalog.Food(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *Handler) getFoodReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Catalog.FoodReviews(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) getFoodRatings(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Analytics.FoodRatings(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Categories())
}

func (h *Handler) getVouchers(w http.ResponseWriter, r *http.Request) {
	var subtotal int64
	if raw := r.URL.Query().Get("subtotal"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			writeError(w, fmt.Errorf("%w: subtotal must be a non-negative integer", service.ErrInvalidInput))
			return
		}
		subtotal = v
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"delivery_fee": h.Pricing.DeliveryFee(),
		"vouchers":     h.Pricing.Vouchers(subtotal),
	})
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	q, err := h.Pricing.Quote(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// orderResponse adds the legacy flags and display time clients still read.
type orderResponse struct {
	domain.Order
	NeedsReview bool   `json:"needs_review"`
	IsReviewed  bool   `json:"is_reviewed"`
	OrderTime   string `json:"order_time"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		Order:       o,
		NeedsReview: o.NeedsReview(),
		IsReviewed:  o.IsReviewed(),
		OrderTime:   timefmt.Format(o.PlacedAt),
	}
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req service.PlaceOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	order, err := h.Orders.PlaceOrder(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, err := h.Orders.Orders(service.OrderFilter{
		UserID: q.Get("user_id"),
		Status: domain.OrderStatus(strings.ToUpper(q.Get("status"))),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Order(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) confirmReceived(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.ConfirmReceived(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request) {
	var req service.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	order, review, err := h.Orders.SubmitReview(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order":  toOrderResponse(order),
		"review": review,
	})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.ReviewQRCode(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON format: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrReviewNotEligible):
		return http.StatusConflict
	case errors.Is(err, service.ErrFoodUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
