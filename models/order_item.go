package models

import "time"

// OrderItem is the immutable, price-snapshotted copy of a cart line. Name
// and price are copied at placement so later menu edits never change what
// a historical order displays.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	OrderID    uint      `gorm:"not null;index" json:"-"`
	MenuItemID string    `gorm:"type:varchar(64);not null" json:"menuItemId"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int       `gorm:"not null" json:"qty"`
	Note       string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"-"`
	UpdatedAt  time.Time `gorm:"not null" json:"-"`
}
