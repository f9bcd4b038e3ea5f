package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	dashboardDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/dashboard"
	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
	productDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/product"
	"github.com/frahmantamala/crm-console/internal/dashboard"
	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/frahmantamala/crm-console/internal/user"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...interface{}) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func renderWhoami(w io.Writer, s *session.Session) {
	fmt.Fprintf(w, "%s (%s), role %s\n", s.User.Name, s.User.Username, s.User.Role)
	names := make([]string, 0)
	for _, item := range permission.NavItems(s) {
		names = append(names, item.Name)
	}
	fmt.Fprintf(w, "Views: %s\n", strings.Join(names, ", "))
}

func renderOrders(w io.Writer, orders []order.Order, counts map[string]int) {
	tabs := []string{fmt.Sprintf("All (%d)", counts[order.All])}
	for _, st := range order.Statuses() {
		tabs = append(tabs, fmt.Sprintf("%s (%d)", st, counts[string(st)]))
	}
	fmt.Fprintln(w, strings.Join(tabs, "  "))

	tw := newTable(w, "ORDER", "DATE", "CUSTOMER", "CHANNEL", "ITEMS", "REVENUE", "NET PROFIT", "STATUS")
	for i := range orders {
		o := &orders[i]
		row(tw, o.OrderID, o.CreatedAt.Local().Format("2006-01-02 15:04"), o.CustomerName(), o.Channel,
			o.ItemCount(), money(o.RevenueValue()), money(o.NetProfit), o.Status)
	}
	tw.Flush()
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders match the current filters.")
	}
}

func renderTransitions(w io.Writer, list []orderDatamodel.Transition) {
	tw := newTable(w, "WHEN", "ORDER", "FROM", "TO", "STATE", "ERROR")
	for _, t := range list {
		row(tw, t.CreatedAt.Local().Format(time.DateTime), t.DisplayID, t.FromStatus, t.ToStatus, t.State, t.Error)
	}
	tw.Flush()
}

func renderDashboard(w io.Writer, snap dashboard.Snapshot) {
	if k := snap.KPIs; k != nil {
		fmt.Fprintf(w, "Revenue today: %s", money(k.RevenueToday))
		if k.RevenueChangePercent != nil {
			arrow := "↓"
			if snap.Trend == dashboard.TrendUp {
				arrow = "↑"
			}
			fmt.Fprintf(w, " (%s %.1f%%)", arrow, *k.RevenueChangePercent)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Orders today: %d   Pending: %d   Low stock: %d\n", k.OrdersToday, k.PendingOrders, k.LowStockCount)
		fmt.Fprintf(w, "Profit today: %s", money(k.ProfitToday))
		if snap.MarginPercent != nil {
			fmt.Fprintf(w, " (%d%% margin)", *snap.MarginPercent)
		}
		fmt.Fprintln(w)
	}
	if s := snap.Stock; s != nil {
		fmt.Fprintf(w, "Products: %d (%d active), total stock %g\n", s.TotalProducts, s.ActiveProducts, s.TotalStock)
		if len(s.LowStockProducts) > 0 {
			tw := newTable(w, "LOW STOCK", "LEFT", "UNIT")
			for _, p := range s.LowStockProducts {
				row(tw, p.Name, p.Stock, p.Unit)
			}
			tw.Flush()
		}
	}
	if len(snap.Sales) > 0 {
		renderSales(w, snap.Period, snap.Sales)
	}
	if !snap.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "Updated %s\n", snap.UpdatedAt.Local().Format(time.TimeOnly))
	}
}

func renderSales(w io.Writer, period dashboard.Period, sales []dashboardDatamodel.ChannelSales) {
	fmt.Fprintf(w, "Sales by channel, %s\n", period.Label())
	tw := newTable(w, "CHANNEL", "REVENUE", "ORDERS")
	for _, s := range sales {
		row(tw, s.Name, money(s.Revenue), s.Orders)
	}
	tw.Flush()
}

func renderProducts(w io.Writer, products []productDatamodel.Product) {
	tw := newTable(w, "ID", "NAME", "CATEGORY", "PRICE", "STOCK", "UNIT")
	for _, p := range products {
		id := p.ProductID
		if id == "" {
			id = p.ID
		}
		row(tw, id, p.Name, p.Category, p.BasePrice, p.CurrentStock, p.Unit)
	}
	tw.Flush()
}

func renderUsers(w io.Writer, accounts []user.Account) {
	tw := newTable(w, "ID", "USERNAME", "NAME", "ROLE", "STATUS")
	for _, a := range accounts {
		row(tw, a.ID, a.Username, a.Name, a.Role, a.StatusLabel())
	}
	tw.Flush()
}
