package order

import "time"

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type Item struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order mirrors an element of GET /orders. Revenue can be missing on
// malformed records.
type Order struct {
	ID                 string    `json:"_id"`
	OrderID            string    `json:"orderId"`
	Customer           *Customer `json:"customer,omitempty"`
	Items              []Item    `json:"items"`
	Channel            string    `json:"channel"`
	Revenue            *float64  `json:"revenue"`
	PlatformCommission float64   `json:"platformCommission"`
	ShippingCost       float64   `json:"shippingCost"`
	NetProfit          float64   `json:"netProfit"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UserID             string    `json:"userId,omitempty"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

// Transition is one row of the local status transition journal.
type Transition struct {
	ID         string    `db:"id" json:"id"`
	OrderID    string    `db:"order_id" json:"orderId"`
	DisplayID  string    `db:"display_id" json:"displayId"`
	FromStatus string    `db:"from_status" json:"fromStatus"`
	ToStatus   string    `db:"to_status" json:"toStatus"`
	State      string    `db:"state" json:"state"`
	Error      string    `db:"error" json:"error,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
