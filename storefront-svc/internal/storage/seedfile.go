package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"foodhub/storefront-svc/internal/domain"
)

// FileSeedSource reads the initial catalog from a JSON document. Orders use
// the legacy shape with a display order_time and an is_reviewed flag.
type FileSeedSource struct {
	Path     string
	Location *time.Location
}

func NewFileSeedSource(path string, loc *time.Location) *FileSeedSource {
	return &FileSeedSource{Path: path, Location: loc}
}

type seedDocument struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
	Foods       []domain.Food       `json:"foods"`
	Categories  []domain.Category   `json:"categories"`
	Vouchers    []domain.Voucher    `json:"vouchers"`
	Reviews     []domain.Review     `json:"reviews"`
	Users       []domain.User       `json:"users"`
	Orders      []seedOrder         `json:"orders"`
}

type seedOrder struct {
	domain.Order
	RawStatus  string `json:"status"`
	IsReviewed bool   `json:"is_reviewed"`
	OrderTime  string `json:"order_time"`
}

func (s *FileSeedSource) LoadSeed(_ context.Context) (domain.Seed, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return domain.Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	return DecodeSeed(data, s.Location)
}

// DecodeSeed parses a seed document. Vouchers with an unknown type or a
// negative amount and orders with an unknown status are dropped; orders with
// an unreadable order_time keep a zero PlacedAt.
func DecodeSeed(data []byte, loc *time.Location) (domain.Seed, error) {
	var doc seedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Seed{}, fmt.Errorf("decode seed: %w", err)
	}

	seed := domain.Seed{
		Restaurants: doc.Restaurants,
		Foods:       doc.Foods,
		Categories:  doc.Categories,
		Reviews:     doc.Reviews,
		Users:       doc.Users,
	}
	for _, v := range doc.Vouchers {
		if err := checkVoucher(v); err != nil {
			log.Printf("Skipping voucher %s: %v", v.ID, err)
			continue
		}
		seed.Vouchers = append(seed.Vouchers, v)
	}
	for _, raw := range doc.Orders {
		order, err := legacyOrder(raw.Order, raw.RawStatus, raw.IsReviewed, raw.OrderTime, loc)
		if err != nil {
			log.Printf("Skipping order %s: %v", raw.ID, err)
			continue
		}
		seed.Orders = append(seed.Orders, order)
	}
	return seed, nil
}
