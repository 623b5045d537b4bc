package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qrdine/qr-menu/models"
	"github.com/qrdine/qr-menu/utils"
)

// OrderLineInput is one cart line as submitted at checkout. Name and price
// are the client-held menu snapshot; they are copied verbatim into the
// order so later menu edits never alter what the guest was shown.
type OrderLineInput struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Qty        int     `json:"qty"`
	Note       string  `json:"note"`
}

// PlaceOrder resolves the table, validates and prices the cart lines, and
// persists the order in a single transaction with status "pending". Orders
// created through this public path always start at "pending"; only
// operational tooling inserts orders at "placed" directly.
func PlaceOrder(db *gorm.DB, taxRate float64, tableIdentifier string, lines []OrderLineInput) (models.Order, error) {
	table, err := ResolveTable(db, tableIdentifier)
	if err != nil {
		return models.Order{}, err
	}

	if len(lines) == 0 {
		return models.Order{}, fmt.Errorf("%w: order has no items", ErrInvalidOrder)
	}
	for i, line := range lines {
		if line.MenuItemID == "" {
			return models.Order{}, fmt.Errorf("%w: item %d has no menu item id", ErrInvalidOrder, i)
		}
		if line.Qty < 1 {
			return models.Order{}, fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidOrder, i)
		}
		if line.Price < 0 {
			return models.Order{}, fmt.Errorf("%w: item %d price must not be negative", ErrInvalidOrder, i)
		}
	}

	// Round each line before summing so the subtotal matches the per-line
	// totals the guest already saw in the cart.
	var subTotal float64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		subTotal += utils.LineTotal(line.Price, line.Qty)
		items = append(items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Qty,
			Note:       line.Note,
		})
	}
	gst := utils.RoundCurrency(subTotal * taxRate)

	order := models.Order{
		TableID:    table.ID,
		Items:      items,
		SubTotal:   subTotal,
		GST:        gst,
		TotalPrice: utils.RoundCurrency(subTotal + gst),
		Status:     models.StatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	// One transaction: either the order and every line land, or nothing.
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return models.Order{}, err
	}

	order.Table = table
	return order, nil
}

// GetOrder fetches one order with its lines and resolved table.
func GetOrder(db *gorm.DB, orderID uint) (models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").Preload("Table").First(&order, orderID).Error; err != nil {
		return models.Order{}, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns orders newest first, optionally filtered to one status.
func ListOrders(db *gorm.DB, statusFilter string) ([]models.Order, error) {
	query := db.Preload("Items").Preload("Table").Order("created_at desc")
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionOrder applies one status transition: the immediate successor of
// the current status, or canceled from any non-terminal state. The update
// is a compare-and-update keyed on the expected current status, so two
// staff clients racing on the same order cannot both win.
func TransitionOrder(db *gorm.DB, orderID uint, newStatus string) (models.Order, error) {
	if !models.IsValidStatus(newStatus) {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return models.Order{}, ErrOrderNotFound
	}

	if !models.CanTransition(order.Status, newStatus) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return models.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Order{}, ErrStatusConflict
	}

	return GetOrder(db, orderID)
}
