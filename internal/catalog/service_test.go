package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegmart/vegmart/internal/catalog"
	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/testdb"
	"github.com/vegmart/vegmart/pkg/errs"
)

func newProduct(t *testing.T, svc *catalog.Service, name string, stock float64) *domain.Product {
	t.Helper()
	p := &domain.Product{
		Name:            name,
		RetailPrice:     decimal.NewFromInt(40),
		WholesalePrice:  decimal.NewFromInt(30),
		MinWholesaleQty: 10,
		Stock:           stock,
	}
	require.NoError(t, svc.CreateProduct(context.Background(), p))
	return p
}

func TestCreateAndGetProduct(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))
	p := newProduct(t, svc, "Tomato", 100)

	got, err := svc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato", got.Name)
	assert.Equal(t, float64(100), got.Stock)
}

func TestGetProductNotFound(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))

	_, err := svc.GetProduct(context.Background(), 12345)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestCreateProductValidation(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))

	err := svc.CreateProduct(context.Background(), &domain.Product{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	err = svc.CreateProduct(context.Background(), &domain.Product{Name: "Okra", Stock: -1, MinWholesaleQty: 5})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestDecreaseStock(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))
	p := newProduct(t, svc, "Tomato", 10)

	require.NoError(t, svc.DecreaseStock(context.Background(), p.ID, 4))

	got, err := svc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(6), got.Stock)
}

func TestDecreaseStockInsufficient(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))
	p := newProduct(t, svc, "Tomato", 3)

	err := svc.DecreaseStock(context.Background(), p.ID, 5)
	require.Error(t, err)
	assert.Equal(t, errs.KindInsufficientStock, errs.KindOf(err))

	// Stock untouched on failure.
	got, err := svc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(3), got.Stock)
}

func TestDecreaseStockExactlyToZero(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))
	p := newProduct(t, svc, "Tomato", 5)

	require.NoError(t, svc.DecreaseStock(context.Background(), p.ID, 5))

	got, err := svc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), got.Stock)
}

func TestIncreaseStock(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))
	p := newProduct(t, svc, "Tomato", 10)

	require.NoError(t, svc.IncreaseStock(context.Background(), p.ID, 15))

	got, err := svc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(25), got.Stock)
}

func TestIncreaseStockUnknownProduct(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))

	err := svc.IncreaseStock(context.Background(), 999, 5)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestStockQuantityValidation(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))
	p := newProduct(t, svc, "Tomato", 10)

	for _, qty := range []float64{0, -3} {
		err := svc.DecreaseStock(context.Background(), p.ID, qty)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		err = svc.IncreaseStock(context.Background(), p.ID, qty)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	}
}

func TestListAvailableProducts(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))
	newProduct(t, svc, "Tomato", 10)
	p := newProduct(t, svc, "Potato", 5)
	require.NoError(t, svc.DecreaseStock(context.Background(), p.ID, 5))

	rows, err := svc.ListAvailableProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tomato", rows[0].Name)
}

func TestListProductsKeyword(t *testing.T) {
	svc := catalog.NewService(testdb.New(t))
	newProduct(t, svc, "Tomato", 10)
	newProduct(t, svc, "Potato", 10)
	newProduct(t, svc, "Onion", 10)

	rows, total, err := svc.ListProducts(context.Background(), "tom", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tomato", rows[0].Name)
}
