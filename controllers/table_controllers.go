package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/qrdine/qr-menu/services"
	"github.com/qrdine/qr-menu/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> add a new table; slug is generated when omitted
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number uint   `json:"number" binding:"required"`
		Slug   string `json:"slug"` // optional, generated when empty
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := services.CreateTable(tc.DB, req.Number, req.Slug)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateTable),
			errors.Is(err, services.ErrDuplicateSlug),
			errors.Is(err, services.ErrInvalidTable):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("New table created: %d (slug=%s)", table.Number, table.QRSlug)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> all tables ordered by number
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := services.ListTables(tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// ResolveTable -> look a table up by number or QR slug (QR scan entry point)
func (tc *TableController) ResolveTable(c *gin.Context) {
	identifier := c.Param("identifier")

	table, err := services.ResolveTable(tc.DB, identifier)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}
