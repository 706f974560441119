package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ReviewQRGenerator encodes a link to the review page of an order, printed
// on the delivery receipt.
type ReviewQRGenerator struct {
	BaseURL string
	Size    int
}

func (g ReviewQRGenerator) Link(orderID string) string {
	return fmt.Sprintf("%s/review?order_id=%s", strings.TrimRight(g.BaseURL, "/"), url.QueryEscape(orderID))
}

func (g ReviewQRGenerator) Generate(orderID string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.Link(orderID), qrcode.Medium, size)
}
