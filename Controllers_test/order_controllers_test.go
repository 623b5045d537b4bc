package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qrdine/qr-menu/controllers"
	"github.com/qrdine/qr-menu/models"
	"github.com/qrdine/qr-menu/utils"
)

const testTaxRate = 0.05

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatal(err)
	}
	db.Create(&models.Table{Number: 7, QRSlug: "table-7-0badf00d"})
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db, testTaxRate)
	router.POST("/orders/:table_param/orders", orderCtrl.CreateOrder)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.GET("/orders", orderCtrl.GetAllOrders)
	return router
}

func placeTestOrder(t *testing.T, router *gin.Engine, tableParam string, items []map[string]interface{}) *httptest.ResponseRecorder {
	return postJSON(t, router, "/orders/"+tableParam+"/orders", map[string]interface{}{"items": items})
}

func TestPlaceOrderComputesTotals(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := placeTestOrder(t, router, "7", []map[string]interface{}{
		{"menuItemId": "m1", "name": "Pizza", "price": 200, "qty": 2},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	assert.Equal(t, float64(400), data["subTotal"])
	assert.Equal(t, float64(20), data["gst"])
	assert.Equal(t, float64(420), data["totalPrice"])
	assert.Equal(t, "pending", data["status"])

	table := data["table"].(map[string]interface{})
	assert.Equal(t, float64(7), table["number"])

	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "m1", item["menuItemId"])
	assert.Equal(t, "Pizza", item["name"])
	assert.Equal(t, float64(2), item["qty"])
}

func TestPlaceOrderBySlug(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := placeTestOrder(t, router, "table-7-0badf00d", []map[string]interface{}{
		{"menuItemId": "m2", "name": "Tea", "price": 30.5, "qty": 1},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPlaceOrderRoundsPerLine(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	// 2.375 * 3 = 7.125 -> line rounds half-up to 7.13 before summation.
	w := placeTestOrder(t, router, "7", []map[string]interface{}{
		{"menuItemId": "m3", "name": "Samosa", "price": 2.375, "qty": 3},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.InDelta(t, 7.13, data["subTotal"].(float64), 1e-9)
	assert.InDelta(t, 0.36, data["gst"].(float64), 1e-9)
	assert.InDelta(t, 7.49, data["totalPrice"].(float64), 1e-9)
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := placeTestOrder(t, router, "7", []map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing persisted.
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPlaceOrderInvalidLines(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	cases := []map[string]interface{}{
		{"menuItemId": "m1", "name": "Pizza", "price": 200, "qty": 0},
		{"menuItemId": "m1", "name": "Pizza", "price": -5, "qty": 1},
		{"menuItemId": "", "name": "Pizza", "price": 200, "qty": 1},
	}
	for _, line := range cases {
		w := placeTestOrder(t, router, "7", []map[string]interface{}{line})
		assert.Equal(t, http.StatusBadRequest, w.Code, "line %v", line)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.OrderItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPlaceOrderUnknownTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	for _, param := range []string{"42", "table-42-ffffffff"} {
		w := placeTestOrder(t, router, param, []map[string]interface{}{
			{"menuItemId": "m1", "name": "Pizza", "price": 200, "qty": 1},
		})
		assert.Equal(t, http.StatusNotFound, w.Code, "param %q", param)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetOrderByID(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := placeTestOrder(t, router, "7", []map[string]interface{}{
		{"menuItemId": "m1", "name": "Pizza", "price": 200, "qty": 2},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	orderID := int(createResp["data"].(map[string]interface{})["id"].(float64))

	req, _ := http.NewRequest("GET", "/orders/"+strconv.Itoa(orderID), nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	var getResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w2.Body.Bytes(), &getResp))
	data := getResp["data"].(map[string]interface{})
	assert.Equal(t, float64(orderID), data["id"])
	assert.Equal(t, float64(7), data["table"].(map[string]interface{})["number"])
	assert.Len(t, data["items"].([]interface{}), 1)
}

func TestGetOrderNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	req, _ := http.NewRequest("GET", "/orders/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersFilterAndOrdering(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	for i := 0; i < 3; i++ {
		w := placeTestOrder(t, router, "7", []map[string]interface{}{
			{"menuItemId": "m1", "name": "Pizza", "price": 100, "qty": 1},
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	}
	// Move the first order forward so the filter has something to exclude.
	db.Model(&models.Order{}).Where("id = ?", 1).Update("status", models.StatusPlaced)

	req, _ := http.NewRequest("GET", "/orders?status=placed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orders := resp["data"].(map[string]interface{})["orders"].([]interface{})
	assert.Len(t, orders, 1)
	assert.Equal(t, "placed", orders[0].(map[string]interface{})["status"])

	req, _ = http.NewRequest("GET", "/orders", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orders = resp["data"].(map[string]interface{})["orders"].([]interface{})
	assert.Len(t, orders, 3)

	// Newest first.
	first := orders[0].(map[string]interface{})["id"].(float64)
	last := orders[2].(map[string]interface{})["id"].(float64)
	assert.Greater(t, first, last)
}
