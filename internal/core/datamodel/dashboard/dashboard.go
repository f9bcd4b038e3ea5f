package dashboard

type KPIs struct {
	RevenueToday         float64  `json:"revenueToday"`
	OrdersToday          int      `json:"ordersToday"`
	PendingOrders        int      `json:"pendingOrders"`
	ProfitToday          float64  `json:"profitToday"`
	LowStockCount        int      `json:"lowStockCount"`
	RevenueChangePercent *float64 `json:"revenueChangePercent"`
}

type ChannelSales struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders,omitempty"`
}

type LowStockProduct struct {
	Name  string  `json:"name"`
	Stock float64 `json:"stock"`
	Unit  string  `json:"unit"`
}

type StockSummary struct {
	TotalProducts    int               `json:"totalProducts"`
	ActiveProducts   int               `json:"activeProducts"`
	TotalStock       float64           `json:"totalStock"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts"`
}
