package domain

import "time"

const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// Product is a catalog item. SKU is unique across the catalog.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Brand          string            `json:"brand,omitempty"`
	Category       string            `json:"category,omitempty"`
	Model          string            `json:"model,omitempty"`
	SKU            string            `json:"sku"`
	Discount       float64           `json:"discount"`
	Stock          int               `json:"stock"`
	Warranty       string            `json:"warranty,omitempty"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Usage          string            `json:"usage,omitempty"`
	Status         string            `json:"status"`
	Images         []string          `json:"images"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
