package inventory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pizza-delivery-api/apperr"
	"pizza-delivery-api/config"
	"pizza-delivery-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLedger(t *testing.T) (*Ledger, *gorm.DB) {
	t.Helper()
	db, err := config.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewLedger(db), db
}

func seedItem(t *testing.T, db *gorm.DB, item models.InventoryItem) models.InventoryItem {
	t.Helper()
	if item.Unit == "" {
		item.Unit = models.UnitKg
	}
	item.IsAvailable = true
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestUpdateStockNeverNegative(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()
	item := seedItem(t, db, models.InventoryItem{
		Name: "Mozzarella", Category: models.StockCheese,
		CurrentStock: 10, MaxStock: 50, Threshold: 3,
	})

	// arbitrary signed deltas: stock tracks max(0, running sum) per step
	deltas := []float64{-4, -8, 5, -2, -10, 7}
	expected := 10.0
	for _, d := range deltas {
		updated, err := ledger.UpdateStock(ctx, item.ID, d)
		require.NoError(t, err)

		if expected += d; expected < 0 {
			expected = 0
		}
		assert.Equal(t, expected, updated.CurrentStock)
		assert.GreaterOrEqual(t, updated.CurrentStock, 0.0)
	}
}

func TestUpdateStockRestockStampsTime(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)
	item := seedItem(t, db, models.InventoryItem{
		Name: "Thin Crust", Category: models.StockBase,
		CurrentStock: 5, MaxStock: 100, Threshold: 10, Unit: models.UnitPieces,
		LastRestocked: old,
	})

	decremented, err := ledger.UpdateStock(ctx, item.ID, -2)
	require.NoError(t, err)
	assert.WithinDuration(t, old, decremented.LastRestocked, time.Minute,
		"a decrement must not stamp LastRestocked")

	restocked, err := ledger.UpdateStock(ctx, item.ID, 20)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), restocked.LastRestocked, time.Minute)
	assert.Equal(t, 23.0, restocked.CurrentStock)
}

func TestUpdateStockMissingItem(t *testing.T) {
	ledger, _ := newTestLedger(t)
	_, err := ledger.UpdateStock(context.Background(), 9999, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDecrementByNameMissingIsNoOp(t *testing.T) {
	ledger, _ := newTestLedger(t)
	err := ledger.DecrementByName(context.Background(), "Renamed Ingredient", models.StockSauce, 2)
	assert.NoError(t, err)
}

func TestDecrementByNameScopedToCategory(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()
	cheese := seedItem(t, db, models.InventoryItem{
		Name: "Mozzarella", Category: models.StockCheese, CurrentStock: 10, Threshold: 2,
	})
	base := seedItem(t, db, models.InventoryItem{
		Name: "Mozzarella", Category: models.StockBase, CurrentStock: 10, Threshold: 2,
	})

	require.NoError(t, ledger.DecrementByName(ctx, "Mozzarella", models.StockCheese, 3))

	var got models.InventoryItem
	require.NoError(t, db.First(&got, cheese.ID).Error)
	assert.Equal(t, 7.0, got.CurrentStock)
	got = models.InventoryItem{}
	require.NoError(t, db.First(&got, base.ID).Error)
	assert.Equal(t, 10.0, got.CurrentStock, "same name in another category must be untouched")
}

func TestIsLowStockBoundary(t *testing.T) {
	at := models.InventoryItem{CurrentStock: 5, Threshold: 5}
	above := models.InventoryItem{CurrentStock: 6, Threshold: 5}

	assert.True(t, at.IsLowStock())
	assert.False(t, above.IsLowStock())
}

func TestScanLowStock(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()
	seedItem(t, db, models.InventoryItem{
		Name: "Olives", Category: models.StockVeggie, CurrentStock: 5, Threshold: 5,
	})
	seedItem(t, db, models.InventoryItem{
		Name: "Onions", Category: models.StockVeggie, CurrentStock: 6, Threshold: 5,
	})
	unavailable := models.InventoryItem{
		Name: "Anchovies", Category: models.StockMeat, CurrentStock: 0, Threshold: 5,
		Unit: models.UnitKg,
	}
	require.NoError(t, db.Create(&unavailable).Error)
	require.NoError(t, db.Model(&unavailable).Update("is_available", false).Error)

	low, err := ledger.ScanLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Olives", low[0].Name)

	// no intervening stock change: a second scan returns the same set
	again, err := ledger.ScanLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, low, again)
}

func TestSummarize(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()
	seedItem(t, db, models.InventoryItem{
		Name: "Thin Crust", Category: models.StockBase, CurrentStock: 30, Threshold: 10, Unit: models.UnitPieces,
	})
	seedItem(t, db, models.InventoryItem{
		Name: "Cheese Burst", Category: models.StockBase, CurrentStock: 4, Threshold: 10, Unit: models.UnitPieces,
	})
	seedItem(t, db, models.InventoryItem{
		Name: "Pepperoni", Category: models.StockMeat, CurrentStock: 12, Threshold: 6,
	})

	summary, err := ledger.Summarize(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	// categories come back in dashboard order: base before meat
	base := summary[0]
	assert.Equal(t, models.StockBase, base.Category)
	assert.Equal(t, 2, base.TotalItems)
	assert.Equal(t, 1, base.LowStockItems)
	assert.Equal(t, 34.0, base.TotalStock)
	require.Len(t, base.Items, 2)
	assert.Equal(t, "Cheese Burst", base.Items[0].Name)
	assert.True(t, base.Items[0].IsLowStock)

	meat := summary[1]
	assert.Equal(t, models.StockMeat, meat.Category)
	assert.Equal(t, 0, meat.LowStockItems)
}
