package model

import (
	"time"
)

type Order struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Status    Status    `json:"status"`
	Items     []Item    `json:"items"`
	Total     int64     `json:"total"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	VendorID  int64     `json:"vendorID"`
	BuyerID   int64     `json:"buyerID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Item struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	ImageRef  string `json:"imageRef,omitempty"`
}

// Valid reports whether the order has the shape the store promises:
// non-negative total and every line item with quantity >= 1 and a non-negative price.
func (o Order) Valid() bool {
	if o.Total < 0 {
		return false
	}
	for _, i := range o.Items {
		if i.Quantity < 1 || i.UnitPrice < 0 {
			return false
		}
	}
	return true
}

// OrderFilter scopes GetOrders on the store side. Zero values mean "any".
type OrderFilter struct {
	VendorID int64
	BuyerID  int64
	Status   Status
}

type OrderOutput struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Status    Status    `json:"status"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	Step      int       `json:"step"`
	Actions   []Status  `json:"actions"`
	Items     []Item    `json:"items"`
	Total     int64     `json:"total"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type StatusLog struct {
	ID        int64     `json:"ID"`
	OrderID   int64     `json:"orderID"`
	Status    Status    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

type RevenueOutput struct {
	Total  int64 `json:"total"`
	Vendor int64 `json:"vendor"`
}

type StatusInput struct {
	Status string `json:"status"`
}
