package models

import "time"

type Table struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	Number uint `gorm:"uniqueIndex;not null" json:"number"`
	// QRSlug is the opaque identifier embedded in printed QR codes. Older
	// codes may embed the table number instead; both must keep resolving.
	QRSlug     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"qrSlug"`
	IsOccupied bool      `gorm:"not null;default:false" json:"isOccupied"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null" json:"-"`
}
