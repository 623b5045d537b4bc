package models

import "time"

// Menu is the collaborator-owned catalog entry. The order subsystem only
// reads it; placed orders carry their own copies of name and price.
type Menu struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CategoryID  uint         `gorm:"not null" json:"category_id"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable bool         `gorm:"not null;default:true" json:"is_available"`
	Description string       `gorm:"type:text" json:"description"`
	Tags        string       `gorm:"type:varchar(255)" json:"tags"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}
