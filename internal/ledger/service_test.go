package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/ledger"
	"github.com/vegmart/vegmart/internal/testdb"
	"github.com/vegmart/vegmart/pkg/common"
	"github.com/vegmart/vegmart/pkg/errs"
)

func setup(t *testing.T) (*gorm.DB, *ledger.Service, *domain.Product) {
	db := testdb.New(t)
	p := &domain.Product{
		ID:          common.UUIDint64(),
		Name:        "Tomato",
		RetailPrice: decimal.NewFromInt(40),
		Stock:       5,
	}
	require.NoError(t, db.Create(p).Error)
	return db, ledger.NewService(db), p
}

func TestRecordPurchaseIncrementsStock(t *testing.T) {
	db, svc, p := setup(t)

	purchase := &domain.Purchase{
		ProductId:   p.ID,
		Quantity:    20,
		CostPerUnit: decimal.NewFromInt(25),
	}
	require.NoError(t, svc.RecordPurchase(context.Background(), purchase))

	assert.True(t, purchase.TotalCost.Equal(decimal.NewFromInt(500)),
		"want 500, got %s", purchase.TotalCost)

	var got domain.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, float64(25), got.Stock)
}

func TestRecordPurchaseValidation(t *testing.T) {
	_, svc, p := setup(t)

	err := svc.RecordPurchase(context.Background(), &domain.Purchase{
		ProductId:   p.ID,
		Quantity:    0,
		CostPerUnit: decimal.NewFromInt(25),
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	err = svc.RecordPurchase(context.Background(), &domain.Purchase{
		ProductId:   p.ID,
		Quantity:    10,
		CostPerUnit: decimal.Zero,
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestRecordPurchaseUnknownProduct(t *testing.T) {
	db, svc, p := setup(t)

	err := svc.RecordPurchase(context.Background(), &domain.Purchase{
		ProductId:   424242,
		Quantity:    10,
		CostPerUnit: decimal.NewFromInt(25),
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	// Nothing persisted, stock of the real product untouched.
	var count int64
	require.NoError(t, db.Model(&domain.Purchase{}).Count(&count).Error)
	assert.Zero(t, count)

	var got domain.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, float64(5), got.Stock)
}

func TestLatestCostNewestWins(t *testing.T) {
	_, svc, p := setup(t)

	require.NoError(t, svc.RecordPurchase(context.Background(), &domain.Purchase{
		ProductId:   p.ID,
		Quantity:    10,
		CostPerUnit: decimal.NewFromInt(30),
		PurchasedAt: time.Now().Add(-72 * time.Hour),
	}))
	require.NoError(t, svc.RecordPurchase(context.Background(), &domain.Purchase{
		ProductId:   p.ID,
		Quantity:    10,
		CostPerUnit: decimal.NewFromInt(22),
		PurchasedAt: time.Now().Add(-time.Hour),
	}))

	cost, err := svc.LatestCost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.NewFromInt(22)), "want 22, got %s", cost)
}

func TestLatestCostNoHistory(t *testing.T) {
	_, svc, p := setup(t)

	cost, err := svc.LatestCost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, cost.IsZero())
}

func TestListPurchasesFilterAndOrder(t *testing.T) {
	db, svc, p := setup(t)

	other := &domain.Product{
		ID:          common.UUIDint64(),
		Name:        "Potato",
		RetailPrice: decimal.NewFromInt(25),
	}
	require.NoError(t, db.Create(other).Error)

	for i, cost := range []int64{30, 28, 26} {
		require.NoError(t, svc.RecordPurchase(context.Background(), &domain.Purchase{
			ProductId:   p.ID,
			Quantity:    5,
			CostPerUnit: decimal.NewFromInt(cost),
			PurchasedAt: time.Now().Add(-time.Duration(72-i*24) * time.Hour),
		}))
	}
	require.NoError(t, svc.RecordPurchase(context.Background(), &domain.Purchase{
		ProductId:   other.ID,
		Quantity:    5,
		CostPerUnit: decimal.NewFromInt(18),
	}))

	rows, total, err := svc.ListPurchases(context.Background(), p.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
	// Most recent purchase first.
	assert.True(t, rows[0].CostPerUnit.Equal(decimal.NewFromInt(26)))

	rows, total, err = svc.ListPurchases(context.Background(), 0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, rows, 4)
}

func TestGetPurchaseNotFound(t *testing.T) {
	_, svc, _ := setup(t)

	_, err := svc.GetPurchase(context.Background(), 424242)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
