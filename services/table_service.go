package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/qrdine/qr-menu/models"
)

// ResolveTable accepts either a numeric table number or a QR slug. QR
// payloads embed one or the other depending on when the code was printed,
// so the identifier is parsed strictly as an integer first and only then
// treated as a slug.
func ResolveTable(db *gorm.DB, identifier string) (models.Table, error) {
	var table models.Table

	if number, err := strconv.Atoi(identifier); err == nil && number > 0 {
		if err := db.Where("number = ?", number).First(&table).Error; err != nil {
			return models.Table{}, ErrTableNotFound
		}
	} else {
		if err := db.Where("qr_slug = ?", identifier).First(&table).Error; err != nil {
			return models.Table{}, ErrTableNotFound
		}
	}

	// Tables created before slugs existed get one assigned on first resolve.
	if table.QRSlug == "" {
		table.QRSlug = newSlug(table.Number)
		if err := db.Model(&table).Update("qr_slug", table.QRSlug).Error; err != nil {
			return models.Table{}, err
		}
	}

	return table, nil
}

// CreateTable inserts a table, generating a slug when none is supplied.
// Number uniqueness is enforced by the unique index, not by a racy
// existence check.
func CreateTable(db *gorm.DB, number uint, slug string) (models.Table, error) {
	if number == 0 {
		return models.Table{}, ErrInvalidTable
	}

	generated := slug == ""
	for attempt := 0; attempt < 3; attempt++ {
		if generated {
			slug = newSlug(number)
		}

		table := models.Table{Number: number, QRSlug: slug}
		err := db.Create(&table).Error
		if err == nil {
			return table, nil
		}

		// A generated slug colliding with an issued one is retried; a
		// caller-supplied slug or number colliding is the caller's error.
		if isDuplicateError(err, "qr_slug") {
			if generated {
				continue
			}
			return models.Table{}, ErrDuplicateSlug
		}
		if isDuplicateError(err, "") {
			return models.Table{}, ErrDuplicateTable
		}
		return models.Table{}, err
	}
	return models.Table{}, ErrDuplicateTable
}

// ListTables returns all tables ordered by number ascending.
func ListTables(db *gorm.DB) ([]models.Table, error) {
	var tables []models.Table
	if err := db.Order("number asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// newSlug builds a URL-safe opaque slug: table-<number>-<8 hex chars>.
func newSlug(number uint) string {
	buf := make([]byte, 4)
	rand.Read(buf)
	return fmt.Sprintf("table-%d-%s", number, hex.EncodeToString(buf))
}

// isDuplicateError detects unique-index violations across the MySQL and
// SQLite drivers; column narrows the match to a specific index when the
// driver includes it in the message.
func isDuplicateError(err error, column string) bool {
	msg := err.Error()
	if !strings.Contains(msg, "Duplicate entry") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return column == "" || strings.Contains(msg, column)
}
