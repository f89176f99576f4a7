package domain

import "time"

// SchemaVersion identifies the stored cart document layout. It is
// stamped on every write so future layouts can be migrated on read.
const SchemaVersion = 1

type Cart struct {
	Items         []CartItem `json:"items"`
	Total         float64    `json:"total"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Version       int64      `json:"version"`
	SchemaVersion int        `json:"schemaVersion"`
}

type CartItem struct {
	ID       string   `json:"id"`
	Price    float64  `json:"price"`
	Discount *float64 `json:"discount,omitempty"`
	Quantity int      `json:"quantity"`
}

// Empty returns the canonical empty cart handed out when no record
// exists for a key.
func Empty() *Cart {
	return &Cart{
		Items: []CartItem{},
		Total: 0,
	}
}

// HasItems reports whether the cart holds at least one item. A nil
// cart counts as empty.
func (c *Cart) HasItems() bool {
	return c != nil && len(c.Items) > 0
}
