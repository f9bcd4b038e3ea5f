package order

import (
	"sort"
	"strings"
	"time"

	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusConfirmed  Status = "Confirmed"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var statuses = []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

func Statuses() []Status {
	return append([]Status(nil), statuses...)
}

// ParseStatus matches case-insensitively and returns the canonical form.
func ParseStatus(s string) (Status, bool) {
	for _, st := range statuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

var channels = []string{"Website", "WhatsApp", "In-Person", "Amazon", "Blinkit", "Flipkart", "Swiggy Instamart"}

func Channels() []string {
	return append([]string(nil), channels...)
}

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

type Order struct {
	ID                 string    `json:"id"`
	OrderID            string    `json:"orderId"`
	Customer           *Customer `json:"customer,omitempty"`
	Items              []Item    `json:"items"`
	Channel            string    `json:"channel"`
	Revenue            *float64  `json:"revenue"`
	PlatformCommission float64   `json:"platformCommission"`
	ShippingCost       float64   `json:"shippingCost"`
	NetProfit          float64   `json:"netProfit"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UserID             string    `json:"userId,omitempty"`
}

// RevenueValue treats a missing revenue as zero.
func (o *Order) RevenueValue() float64 {
	if o.Revenue == nil {
		return 0
	}
	return *o.Revenue
}

// Clone copies o including its customer, items and revenue.
func (o *Order) Clone() Order {
	c := *o
	if o.Customer != nil {
		customer := *o.Customer
		c.Customer = &customer
	}
	if o.Items != nil {
		c.Items = append([]Item(nil), o.Items...)
	}
	if o.Revenue != nil {
		revenue := *o.Revenue
		c.Revenue = &revenue
	}
	return c
}

func cloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i := range orders {
		out[i] = orders[i].Clone()
	}
	return out
}

func (o *Order) CustomerName() string {
	if o.Customer == nil {
		return ""
	}
	return o.Customer.Name
}

func (o *Order) ItemCount() int {
	return len(o.Items)
}

func FromDataModel(d *orderDatamodel.Order) Order {
	o := Order{
		ID:                 d.ID,
		OrderID:            d.OrderID,
		Channel:            d.Channel,
		Revenue:            d.Revenue,
		PlatformCommission: d.PlatformCommission,
		ShippingCost:       d.ShippingCost,
		NetProfit:          d.NetProfit,
		Status:             Status(d.Status),
		CreatedAt:          d.CreatedAt,
		UserID:             d.UserID,
	}
	if d.Customer != nil {
		o.Customer = &Customer{
			Name:    d.Customer.Name,
			Email:   d.Customer.Email,
			Phone:   d.Customer.Phone,
			Address: d.Customer.Address,
		}
	}
	if len(d.Items) > 0 {
		o.Items = make([]Item, len(d.Items))
		for i, it := range d.Items {
			o.Items[i] = Item{SKU: it.SKU, Name: it.Name, Price: it.Price, Quantity: it.Quantity}
		}
	}
	return o
}

func FromDataModels(list []orderDatamodel.Order) []Order {
	out := make([]Order, len(list))
	for i := range list {
		out[i] = FromDataModel(&list[i])
	}
	return out
}

// SortByNewest orders by createdAt descending, keeping the backend order
// for equal timestamps.
func SortByNewest(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// CountByStatus returns the tab badges: one count per status plus "All".
func CountByStatus(orders []Order) map[string]int {
	counts := make(map[string]int, len(statuses)+1)
	counts[All] = len(orders)
	for _, st := range statuses {
		counts[string(st)] = 0
	}
	for i := range orders {
		if st, ok := ParseStatus(string(orders[i].Status)); ok {
			counts[string(st)]++
		}
	}
	return counts
}
