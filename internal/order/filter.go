package order

import (
	"strings"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/core/common/validation"
)

// All disables a facet. An empty value means the same.
const All = "All"

type DateRange string

const (
	DateAny       DateRange = All
	DateToday     DateRange = "Today"
	DateYesterday DateRange = "Yesterday"
	DateLast7Days DateRange = "Last 7 Days"
)

type AmountRange string

const (
	AmountAny        AmountRange = All
	AmountUnder1000  AmountRange = "<1000"
	Amount1000To5000 AmountRange = "1000-5000"
	AmountOver5000   AmountRange = ">5000"
)

type SideFilters struct {
	Channel   string      `json:"channel"`
	DateRange DateRange   `json:"dateRange"`
	Amount    AmountRange `json:"amountRange"`
}

type FilterState struct {
	Tab    string      `json:"tab"`
	Search string      `json:"search"`
	Side   SideFilters `json:"side"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		Tab: All,
		Side: SideFilters{
			Channel:   All,
			DateRange: DateAny,
			Amount:    AmountAny,
		},
	}
}

// Reset clears every criterion.
func (f *FilterState) Reset() {
	*f = DefaultFilterState()
}

// Active reports whether any side filter narrows the list.
func (s SideFilters) Active() bool {
	return !isAll(s.Channel) || !isAll(string(s.DateRange)) || !isAll(string(s.Amount))
}

// Validate rejects values no menu offers. FilterOrders itself ignores them.
func (f FilterState) Validate() error {
	tabs := []string{All}
	for _, st := range statuses {
		tabs = append(tabs, string(st))
	}

	v := validation.NewValidator()
	v.Field("status", f.Tab).Custom(func(value interface{}) *internal.AppError {
		tab := value.(string)
		if isAll(tab) {
			return nil
		}
		if _, ok := ParseStatus(tab); !ok {
			return internal.NewValidationFieldError("status", "status must be one of: "+strings.Join(tabs, ", "), internal.ErrCodeInvalidFilter)
		}
		return nil
	})
	v.Field("channel", f.Side.Channel).OneOf(append([]string{All}, channels...)...)
	v.Field("dateRange", string(f.Side.DateRange)).OneOf(All, string(DateToday), string(DateYesterday), string(DateLast7Days))
	v.Field("amountRange", string(f.Side.Amount)).OneOf(All, string(AmountUnder1000), string(Amount1000To5000), string(AmountOver5000))
	v.Field("search", f.Search).MaxLength(200)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// FilterOrders returns the orders matching every criterion of state, in
// input order. The search text is matched as typed, spaces included. The input slice is not modified. Day boundaries are taken in
// the location of now.
func FilterOrders(orders []Order, state FilterState, now time.Time) []Order {
	query := strings.ToLower(state.Search)
	today := startOfDay(now)

	out := make([]Order, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if !matchesTab(o, state.Tab) {
			continue
		}
		if !matchesSearch(o, query) {
			continue
		}
		if !isAll(state.Side.Channel) && o.Channel != state.Side.Channel {
			continue
		}
		if !matchesDate(o.CreatedAt.In(now.Location()), state.Side.DateRange, today) {
			continue
		}
		if !matchesAmount(o.RevenueValue(), state.Side.Amount) {
			continue
		}
		out = append(out, *o)
	}
	return out
}

func matchesTab(o *Order, tab string) bool {
	if isAll(tab) {
		return true
	}
	return strings.EqualFold(string(o.Status), tab)
}

func matchesSearch(o *Order, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(o.OrderID), query) {
		return true
	}
	if o.Customer != nil && o.Customer.Name != "" {
		return strings.Contains(strings.ToLower(o.Customer.Name), query)
	}
	return false
}

func matchesDate(created time.Time, r DateRange, today time.Time) bool {
	switch r {
	case DateToday:
		return sameDay(created, today)
	case DateYesterday:
		return sameDay(created, today.AddDate(0, 0, -1))
	case DateLast7Days:
		return !created.Before(today.AddDate(0, 0, -7))
	}
	return true
}

func matchesAmount(revenue float64, r AmountRange) bool {
	switch r {
	case AmountUnder1000:
		return revenue < 1000
	case Amount1000To5000:
		return revenue >= 1000 && revenue <= 5000
	case AmountOver5000:
		return revenue > 5000
	}
	return true
}

func isAll(v string) bool {
	return v == "" || v == All
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
