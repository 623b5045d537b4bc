package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/qrdine/qr-menu/services"
	"github.com/qrdine/qr-menu/utils"
)

type OrderController struct {
	DB      *gorm.DB
	TaxRate float64
}

func NewOrderController(db *gorm.DB, taxRate float64) *OrderController {
	return &OrderController{DB: db, TaxRate: taxRate}
}

// CreateOrder -> place an order against a table (by number or QR slug)
func (oc *OrderController) CreateOrder(c *gin.Context) {
	tableParam := c.Param("table_param")

	var body struct {
		Items []services.OrderLineInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := services.PlaceOrder(oc.DB, oc.TaxRate, tableParam, body.Items)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrInvalidOrder):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("Order #%d placed for table %d (total=%.2f)",
		order.ID, order.Table.Number, order.TotalPrice)
	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", order)
}

// GetOrderByID -> one order with its lines and table.
// Knowing the order id is the only capability required; ids are handed out
// at placement and shown on the guest's tracking page.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
		return
	}

	order, err := services.GetOrder(oc.DB, uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders -> staff board listing, newest first, optional ?status=
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := services.ListOrders(oc.DB, c.Query("status"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", gin.H{"orders": orders})
}

// UpdateOrderStatus -> staff moves an order one step forward, or cancels it
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := services.TransitionOrder(oc.DB, uint(id), body.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidTransition):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrStatusConflict):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	role, _ := c.Get("role")
	utils.InfoLogger.Printf("Order #%d moved to %s by %v", order.ID, order.Status, role)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
