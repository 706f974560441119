package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

// registerAdminRoutes mounts the back-office API. Access control is enforced
// by the gateway in front of this service.
func (h *Handler) registerAdminRoutes(r *mux.Router) {
	r.HandleFunc("/dashboard", h.getDashboard).Methods("GET")

	r.HandleFunc("/orders/{id}/accept", h.acceptOrder).Methods("POST")
	r.HandleFunc("/orders/{id}", h.deleteOrder).Methods("DELETE")

	r.HandleFunc("/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/restaurants/{id}/deactivate", h.deactivateRestaurant).Methods("POST")
	r.HandleFunc("/restaurants/{id}/activate", h.activateRestaurant).Methods("POST")

	r.HandleFunc("/foods", h.createFood).Methods("POST")
	r.HandleFunc("/foods/{id}", h.updateFood).Methods("PUT")
	r.HandleFunc("/foods/{id}", h.deleteFood).Methods("DELETE")

	r.HandleFunc("/categories", h.createCategory).Methods("POST")
	r.HandleFunc("/categories/{id}", h.deleteCategory).Methods("DELETE")

	r.HandleFunc("/vouchers", h.createVoucher).Methods("POST")
	r.HandleFunc("/vouchers/{id}", h.updateVoucher).Methods("PUT")
	r.HandleFunc("/vouchers/{id}", h.deleteVoucher).Methods("DELETE")

	r.HandleFunc("/users", h.getUsers).Methods("GET")
	r.HandleFunc("/users", h.createUser).Methods("POST")
	r.HandleFunc("/users/{id}", h.getUser).Methods("GET")
	r.HandleFunc("/users/{id}", h.updateUser).Methods("PUT")
	r.HandleFunc("/users/{id}", h.deleteUser).Methods("DELETE")
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	var opts service.DashboardOptions
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 0 {
			writeError(w, fmt.Errorf("%w: year must be a positive integer", service.ErrInvalidInput))
			return
		}
		opts.Year = year
	}
	writeJSON(w, http.StatusOK, h.Analytics.Dashboard(opts))
}

func (h *Handler) acceptOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Accept(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if !decodeJSON(w, r, &rest) {
		return
	}
	created, err := h.Catalog.CreateRestaurant(rest)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var patch domain.RestaurantPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	rest, err := h.Catalog.UpdateRestaurant(mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteRestaurant(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deactivateRestaurant(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	affected, err := h.Catalog.DeactivateRestaurantAndFoods(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"restaurant_id":     id,
		"affected_food_ids": affected,
	})
}

func (h *Handler) activateRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Catalog.ActivateRestaurant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) createFood(w http.ResponseWriter, r *http.Request) {
	var food domain.Food
	if !decodeJSON(w, r, &food) {
		return
	}
	created, err := h.Catalog.CreateFood(food)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateFood(w http.ResponseWriter, r *http.Request) {
	var patch domain.FoodPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	food, err := h.Catalog.UpdateFood(mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *Handler) deleteFood(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteFood(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.Category
	if !decodeJSON(w, r, &c) {
		return
	}
	created, err := h.Catalog.CreateCategory(c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteCategory(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createVoucher(w http.ResponseWriter, r *http.Request) {
	var v domain.Voucher
	if !decodeJSON(w, r, &v) {
		return
	}
	created, err := h.Catalog.CreateVoucher(v)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateVoucher(w http.ResponseWriter, r *http.Request) {
	var patch domain.VoucherPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	v, err := h.Catalog.UpdateVoucher(mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) deleteVoucher(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteVoucher(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Users())
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Catalog.User(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if !decodeJSON(w, r, &u) {
		return
	}
	created, err := h.Catalog.CreateUser(u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var patch domain.UserPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	u, err := h.Catalog.UpdateUser(mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteUser(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
