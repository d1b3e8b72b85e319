// Package export writes back-office spreadsheet reports from cached
// state.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dotcomico/dotmarket-client/internal/model"
	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

const (
	ordersSheet   = "Orders"
	productsSheet = "Products"
	lowStockSheet = "Low Stock"
)

// Orders writes one row per order plus a totals row to path.
func Orders(path string, orders []model.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", ordersSheet)

	header := []interface{}{"ID", "Customer", "Address", "Items", "Total", "Status", "Created"}
	if err := f.SetSheetRow(ordersSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	total := 0.0
	for i, order := range orders {
		row := []interface{}{
			order.ID,
			order.CustomerName(),
			order.Address,
			order.ItemCount(),
			order.TotalAmount,
			order.Status.Label(),
			order.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write order %d: %w", order.ID, err)
		}
		total += order.TotalAmount
	}

	totalsCell := fmt.Sprintf("A%d", len(orders)+2)
	totalsRow := []interface{}{"", "", "", "Total", total}
	if err := f.SetSheetRow(ordersSheet, totalsCell, &totalsRow); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	logger.Info("Orders report written", map[string]interface{}{
		"path":   path,
		"orders": len(orders),
	})
	return nil
}

// Inventory writes every product plus a low-stock sheet for restock
// planning.
func Inventory(path string, products []model.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", productsSheet)
	if _, err := f.NewSheet(lowStockSheet); err != nil {
		return fmt.Errorf("failed to create low stock sheet: %w", err)
	}

	header := []interface{}{"ID", "Name", "Price", "Stock", "Category"}
	if err := f.SetSheetRow(productsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetSheetRow(lowStockSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write low stock header: %w", err)
	}

	lowRow := 2
	for i, product := range products {
		row := []interface{}{
			product.ID,
			product.Name,
			product.Price,
			product.Stock,
			product.CategoryID,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(productsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write product %d: %w", product.ID, err)
		}
		if product.LowStock() {
			cell := fmt.Sprintf("A%d", lowRow)
			if err := f.SetSheetRow(lowStockSheet, cell, &row); err != nil {
				return fmt.Errorf("failed to write low stock product %d: %w", product.ID, err)
			}
			lowRow++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	logger.Info("Inventory report written", map[string]interface{}{
		"path":      path,
		"products":  len(products),
		"low_stock": lowRow - 2,
	})
	return nil
}
