package order

import (
	"net/url"
)

type StatusUpdateDTO struct {
	Status string `json:"status"`
}

type ListResponse struct {
	Orders []Order        `json:"orders"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
	Filter FilterState    `json:"filter"`
}

// FilterStateFromQuery reads status, search, channel, dateRange and
// amountRange. Missing parameters mean All.
func FilterStateFromQuery(q url.Values) FilterState {
	state := DefaultFilterState()
	if v := q.Get("status"); v != "" {
		state.Tab = v
	}
	state.Search = q.Get("search")
	if v := q.Get("channel"); v != "" {
		state.Side.Channel = v
	}
	if v := q.Get("dateRange"); v != "" {
		state.Side.DateRange = DateRange(v)
	}
	if v := q.Get("amountRange"); v != "" {
		state.Side.Amount = AmountRange(v)
	}
	return state
}
