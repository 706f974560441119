package service

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/timefmt"
)

const topN = 5

type DashboardOptions struct {
	// Year limits the monthly series to one calendar year; 0 means all years.
	Year int
}

type Summary struct {
	TotalRevenue     int64 `json:"total_revenue"`
	TodayRevenue     int64 `json:"today_revenue"`
	TotalUsers       int   `json:"total_users"`
	TotalRestaurants int   `json:"total_restaurants"`
	TotalOrders      int   `json:"total_orders"`
}

type MonthRevenue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type StatusSlice struct {
	Status domain.OrderStatus `json:"status"`
	Name   string             `json:"name"`
	Color  string             `json:"color"`
	Value  int                `json:"value"`
}

type RestaurantRevenue struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Revenue int64  `json:"revenue"`
}

type FoodFrequency struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image,omitempty"`
	Orders   int    `json:"sales"`
}

type Activity struct {
	OrderID string `json:"id"`
	User    string `json:"user"`
	Action  string `json:"action"`
	Target  string `json:"target"`
	Time    string `json:"time"`
	Type    string `json:"type"`
}

type Dashboard struct {
	Summary        Summary             `json:"summary"`
	Revenue        []MonthRevenue      `json:"revenue"`
	Status         []StatusSlice       `json:"status"`
	TopRestaurants []RestaurantRevenue `json:"top_restaurants"`
	TopFoods       []FoodFrequency     `json:"top_items"`
	Activities     []Activity          `json:"activities"`
	// SkippedTimestamps counts revenue orders left out of the monthly series
	// because their placement time could not be read.
	SkippedTimestamps int `json:"skipped_timestamps"`
}

type RatingSummary struct {
	FoodID       string         `json:"food_id"`
	Distribution map[string]int `json:"distribution"`
	Average      float64        `json:"average"`
	Count        int            `json:"count"`
}

var statusLegend = []StatusSlice{
	{Status: domain.OrderCompleted, Name: "Completed", Color: "#10B981"},
	{Status: domain.OrderReviewed, Name: "Reviewed", Color: "#8B5CF6"},
	{Status: domain.OrderDelivering, Name: "Delivering", Color: "#3B82F6"},
	{Status: domain.OrderPending, Name: "Pending", Color: "#F59E0B"},
	{Status: domain.OrderCancelled, Name: "Cancelled", Color: "#EF4444"},
}

// AnalyticsService recomputes the admin dashboard from the store on every
// call. It holds no state between calls besides its configuration.
type AnalyticsService struct {
	store AnalyticsStore

	Now func() time.Time
	// Fallback supplies the lists shown when the store has nothing to rank.
	Fallback Dashboard
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{
		store: store,
		Now:   time.Now,
		Fallback: Dashboard{
			TopRestaurants: []RestaurantRevenue{},
			TopFoods:       []FoodFrequency{},
			Activities:     []Activity{},
		},
	}
}

func (s *AnalyticsService) Dashboard(opts DashboardOptions) Dashboard {
	snap := s.store.Snapshot()
	now := s.Now()

	d := Dashboard{
		Summary: Summary{
			TotalUsers:       len(snap.Users),
			TotalRestaurants: len(snap.Restaurants),
			TotalOrders:      len(snap.Orders),
		},
	}

	var monthly [12]int64
	for _, o := range snap.Orders {
		if !o.Status.RevenueRealized() {
			continue
		}
		d.Summary.TotalRevenue += o.TotalAmount
		if o.PlacedAt.IsZero() {
			d.SkippedTimestamps++
			continue
		}
		if sameDay(o.PlacedAt, now) {
			d.Summary.TodayRevenue += o.TotalAmount
		}
		if opts.Year == 0 || o.PlacedAt.Year() == opts.Year {
			monthly[o.PlacedAt.Month()-1] += o.TotalAmount
		}
	}
	d.Revenue = make([]MonthRevenue, 0, len(monthly))
	for i, v := range monthly {
		d.Revenue = append(d.Revenue, MonthRevenue{Name: "T" + strconv.Itoa(i+1), Value: v})
	}

	d.Status = statusDistribution(snap.Orders)
	d.TopRestaurants = topRestaurants(snap)
	d.TopFoods = topFoods(snap)
	d.Activities = recentActivity(snap.Orders)

	if len(d.TopRestaurants) == 0 {
		d.TopRestaurants = s.Fallback.TopRestaurants
	}
	if len(d.TopFoods) == 0 {
		d.TopFoods = s.Fallback.TopFoods
	}
	if len(d.Activities) == 0 {
		d.Activities = s.Fallback.Activities
	}
	return d
}

// FoodRatings aggregates the reviews of one food into five buckets.
func (s *AnalyticsService) FoodRatings(foodID string) (RatingSummary, error) {
	if _, ok := s.store.FoodByID(foodID); !ok {
		return RatingSummary{}, fmt.Errorf("food %s: %w", foodID, ErrNotFound)
	}
	summary := RatingSummary{
		FoodID:       foodID,
		Distribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}
	var st ratingStats
	for _, r := range s.store.ReviewsByFood(foodID) {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		summary.Distribution[strconv.Itoa(r.Rating)]++
		st.sum += r.Rating
		st.count++
	}
	summary.Count = st.count
	summary.Average = st.average()
	return summary, nil
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func statusDistribution(orders []domain.Order) []StatusSlice {
	counts := make(map[domain.OrderStatus]int, len(statusLegend))
	for _, o := range orders {
		counts[o.Status]++
	}
	out := make([]StatusSlice, len(statusLegend))
	for i, entry := range statusLegend {
		entry.Value = counts[entry.Status]
		out[i] = entry
	}
	return out
}

// topRestaurants groups every order by restaurant display name. Equal
// revenues keep the order in which the names were first seen.
func topRestaurants(snap domain.Seed) []RestaurantRevenue {
	idByName := make(map[string]string, len(snap.Restaurants))
	for _, r := range snap.Restaurants {
		if _, seen := idByName[r.Name]; !seen {
			idByName[r.Name] = r.ID
		}
	}

	index := make(map[string]int)
	var ranked []RestaurantRevenue
	for _, o := range snap.Orders {
		i, ok := index[o.RestaurantName]
		if !ok {
			i = len(ranked)
			index[o.RestaurantName] = i
			id := idByName[o.RestaurantName]
			if id == "" {
				id = o.RestaurantID
			}
			ranked = append(ranked, RestaurantRevenue{ID: id, Name: o.RestaurantName})
		}
		ranked[i].Revenue += o.TotalAmount
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Revenue > ranked[j].Revenue })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// topFoods counts orders per food id, ties broken by first appearance.
func topFoods(snap domain.Seed) []FoodFrequency {
	foods := make(map[string]domain.Food, len(snap.Foods))
	for _, f := range snap.Foods {
		foods[f.ID] = f
	}

	index := make(map[string]int)
	var ranked []FoodFrequency
	for _, o := range snap.Orders {
		if o.FoodID == "" {
			continue
		}
		i, ok := index[o.FoodID]
		if !ok {
			i = len(ranked)
			index[o.FoodID] = i
			entry := FoodFrequency{ID: o.FoodID, Name: o.Description, ImageURL: o.ImageURL}
			if f, known := foods[o.FoodID]; known {
				entry.Name = f.Name
				entry.ImageURL = f.ImageURL
			}
			ranked = append(ranked, entry)
		}
		ranked[i].Orders++
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Orders > ranked[j].Orders })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// recentActivity maps the newest orders to feed entries. The store keeps
// orders newest first, so the head of the slice is the most recent.
func recentActivity(orders []domain.Order) []Activity {
	n := min(len(orders), topN)
	out := make([]Activity, 0, n)
	for _, o := range orders[:n] {
		a := Activity{
			OrderID: o.ID,
			User:    o.CustomerName,
			Target:  o.RestaurantName,
			Time:    timefmt.Clock(o.PlacedAt),
		}
		if a.User == "" {
			a.User = "Customer"
		}
		switch o.Status {
		case domain.OrderCompleted, domain.OrderReviewed:
			a.Action, a.Type = "received", "delivery"
		case domain.OrderCancelled:
			a.Action, a.Type = "cancelled", "cancellation"
		default:
			a.Action, a.Type = "placed an order", "order"
		}
		out = append(out, a)
	}
	return out
}
