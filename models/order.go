package models

import "time"

// Order lifecycle statuses, in progression order. An order moves one step
// forward at a time; "canceled" is reachable from any non-terminal status.
const (
	StatusPending   = "pending"
	StatusPlaced    = "placed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusServed    = "served"
	StatusCanceled  = "canceled"
)

// nextStatus maps each status to its immediate successor.
var nextStatus = map[string]string{
	StatusPending:   StatusPlaced,
	StatusPlaced:    StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusServed,
}

type Order struct {
	ID      uint        `gorm:"primaryKey" json:"id"`
	TableID uint        `gorm:"not null;index" json:"-"`
	Table   Table       `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	// SubTotal, GST and TotalPrice are computed once at placement from the
	// snapshotted line prices and never recomputed afterwards.
	SubTotal   float64   `gorm:"type:decimal(10,2);not null" json:"subTotal"`
	GST        float64   `gorm:"type:decimal(10,2);not null" json:"gst"`
	TotalPrice float64   `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null" json:"-"`
}

// IsValidStatus reports whether s is one of the known lifecycle statuses.
func IsValidStatus(s string) bool {
	if s == StatusCanceled {
		return true
	}
	if s == StatusServed {
		return true
	}
	_, ok := nextStatus[s]
	return ok
}

// IsTerminalStatus reports whether s admits no further transitions.
func IsTerminalStatus(s string) bool {
	return s == StatusServed || s == StatusCanceled
}

// CanTransition reports whether an order currently in from may move to to:
// either the immediate successor, or canceled while non-terminal.
func CanTransition(from, to string) bool {
	if IsTerminalStatus(from) {
		return false
	}
	if to == StatusCanceled {
		return true
	}
	return nextStatus[from] == to
}
