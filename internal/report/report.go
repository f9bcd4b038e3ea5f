// Package report renders order lists to spreadsheets.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet = "Orders"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var OrdersHeader = []string{
	"Order ID",
	"Date",
	"Customer",
	"Channel",
	"Items",
	"Revenue",
	"Commission",
	"Shipping",
	"Net Profit",
	"Status",
}

var columnWidths = []float64{14, 18, 24, 18, 8, 12, 12, 12, 12, 12}

type OrderSource interface {
	List(ctx context.Context, checker permission.Checker, state order.FilterState) ([]order.Order, error)
}

type Service struct {
	orders OrderSource
	logger *slog.Logger
	now    func() time.Time
}

func NewService(orders OrderSource, logger *slog.Logger) *Service {
	return &Service{orders: orders, logger: logger, now: time.Now}
}

// ExportOrders fetches the orders matching state and returns them as a
// workbook.
func (s *Service) ExportOrders(ctx context.Context, checker permission.Checker, state order.FilterState) (*bytes.Buffer, error) {
	if err := permission.Require(checker, permission.ResourceReports, permission.ActionRead); err != nil {
		return nil, err
	}

	orders, err := s.orders.List(ctx, checker, state)
	if err != nil {
		return nil, err
	}

	buf, err := WriteOrders(orders)
	if err != nil {
		s.logger.Error("failed to render order report", "error", err, "count", len(orders))
		return nil, err
	}
	s.logger.Info("order report exported", "count", len(orders), "bytes", buf.Len())
	return buf, nil
}

// WithClock replaces the clock used for file names.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// FileName is the suggested download name for an export taken at now.
func (s *Service) FileName() string {
	return "orders-" + s.now().Format("2006-01-02") + ".xlsx"
}

// WriteOrders lays orders out one per row below a bold header.
func WriteOrders(orders []order.Order) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(OrdersSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range OrdersHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(OrdersSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(OrdersSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(OrdersSheet, name, name, columnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i := range orders {
		o := &orders[i]
		row := []interface{}{
			o.OrderID,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.CustomerName(),
			o.Channel,
			o.ItemCount(),
			o.RevenueValue(),
			o.PlatformCommission,
			o.ShippingCost,
			o.NetProfit,
			string(o.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(OrdersSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
