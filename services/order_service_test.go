package services

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qrdine/qr-menu/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestPlaceOrderSubtotalMatchesLines(t *testing.T) {
	db := openTestDB(t)
	db.Create(&models.Table{Number: 4, QRSlug: "table-4-0000aaaa"})

	lines := []OrderLineInput{
		{MenuItemID: "m1", Name: "Pizza", Price: 199.99, Qty: 2},
		{MenuItemID: "m2", Name: "Tea", Price: 30.50, Qty: 3},
		{MenuItemID: "m1", Name: "Pizza", Price: 199.99, Qty: 1, Note: "extra cheese"},
	}

	order, err := PlaceOrder(db, 0.05, "4", lines)
	assert.NoError(t, err)

	// 399.98 + 91.50 + 199.99
	assert.InDelta(t, 691.47, order.SubTotal, 1e-9)
	assert.InDelta(t, 34.57, order.GST, 1e-9)
	assert.InDelta(t, 726.04, order.TotalPrice, 1e-9)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Len(t, order.Items, 3)
}

func TestPlaceOrderPersistsNothingOnValidationFailure(t *testing.T) {
	db := openTestDB(t)
	db.Create(&models.Table{Number: 4, QRSlug: "table-4-0000aaaa"})

	_, err := PlaceOrder(db, 0.05, "4", nil)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = PlaceOrder(db, 0.05, "4", []OrderLineInput{
		{MenuItemID: "m1", Name: "Pizza", Price: 10, Qty: -1},
	})
	assert.ErrorIs(t, err, ErrInvalidOrder)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPlaceOrderUnknownTablePersistsNothing(t *testing.T) {
	db := openTestDB(t)

	_, err := PlaceOrder(db, 0.05, "77", []OrderLineInput{
		{MenuItemID: "m1", Name: "Pizza", Price: 10, Qty: 1},
	})
	assert.ErrorIs(t, err, ErrTableNotFound)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

// TestTransitionLostUpdate encodes the two-staff race: both clients read
// the order at "placed", the first moves it to "preparing", and the
// second's compare-and-update (still expecting "placed") must affect zero
// rows instead of silently overwriting.
func TestTransitionLostUpdate(t *testing.T) {
	db := openTestDB(t)
	db.Create(&models.Table{Number: 1, QRSlug: "table-1-00000001"})

	order := models.Order{TableID: 1, SubTotal: 10, GST: 0.5, TotalPrice: 10.5, Status: models.StatusPlaced}
	db.Create(&order)

	_, err := TransitionOrder(db, order.ID, models.StatusPreparing)
	assert.NoError(t, err)

	// The stale client's update predicated on "placed" must not apply.
	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.StatusPlaced).
		Updates(map[string]interface{}{"status": models.StatusCanceled, "updated_at": time.Now()})
	assert.NoError(t, res.Error)
	assert.Equal(t, int64(0), res.RowsAffected)

	var got models.Order
	db.First(&got, order.ID)
	assert.Equal(t, models.StatusPreparing, got.Status)
}

// TestConcurrentTransitions races a forward transition against a
// cancellation. The order must end in exactly one coherent state and at
// least one caller must succeed; nothing may be half-applied.
func TestConcurrentTransitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	db, err := gorm.Open(sqlite.Open("file:"+path+"?_busy_timeout=5000"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatal(err)
	}
	db.Create(&models.Table{Number: 1, QRSlug: "table-1-00000001"})

	order := models.Order{TableID: 1, SubTotal: 10, GST: 0.5, TotalPrice: 10.5, Status: models.StatusPlaced}
	db.Create(&order)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	targets := []string{models.StatusPreparing, models.StatusCanceled}
	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = TransitionOrder(db, order.ID, targets[i])
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	assert.GreaterOrEqual(t, successes, 1)

	var got models.Order
	db.First(&got, order.ID)
	assert.Contains(t, []string{models.StatusPreparing, models.StatusCanceled}, got.Status)
}

func TestTransitionInvalidStatusValue(t *testing.T) {
	db := openTestDB(t)
	db.Create(&models.Table{Number: 1, QRSlug: "table-1-00000001"})
	order := models.Order{TableID: 1, Status: models.StatusPending}
	db.Create(&order)

	_, err := TransitionOrder(db, order.ID, "delivered")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
