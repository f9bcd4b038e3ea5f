package dashboard

import (
	"math"
	"strings"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	dashboardDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/dashboard"
)

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// DefaultPeriod is the chart period shown before the operator picks one.
const DefaultPeriod = PeriodAll

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	case "":
		return DefaultPeriod, nil
	}
	return "", internal.NewValidationFieldError("period", "period must be one of: today, week, month, all", internal.ErrCodeInvalidPeriod)
}

func (p Period) Label() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodWeek:
		return "7 Days"
	case PeriodMonth:
		return "30 Days"
	}
	return "All Time"
}

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendNone Trend = ""
)

// Snapshot is the last accepted state of each dashboard part. A part is nil
// until its first successful fetch.
type Snapshot struct {
	KPIs          *dashboardDatamodel.KPIs          `json:"kpis"`
	Stock         *dashboardDatamodel.StockSummary  `json:"stock"`
	Sales         []dashboardDatamodel.ChannelSales `json:"sales"`
	Period        Period                            `json:"period"`
	MarginPercent *int                              `json:"marginPercent,omitempty"`
	Trend         Trend                             `json:"trend,omitempty"`
	UpdatedAt     time.Time                         `json:"updatedAt"`
}

// MarginPercent is profit over revenue for today, rounded. It is absent
// when there is no revenue.
func MarginPercent(k *dashboardDatamodel.KPIs) *int {
	if k == nil || k.RevenueToday == 0 {
		return nil
	}
	m := int(math.Round(k.ProfitToday / k.RevenueToday * 100))
	return &m
}

// RevenueTrend compares today's revenue with yesterday's.
func RevenueTrend(k *dashboardDatamodel.KPIs) Trend {
	if k == nil || k.RevenueChangePercent == nil {
		return TrendNone
	}
	if *k.RevenueChangePercent >= 0 {
		return TrendUp
	}
	return TrendDown
}
