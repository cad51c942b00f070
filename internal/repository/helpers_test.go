package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

var (
	currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
)

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func randomPrice(cur currency.Unit) domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: cur,
	}
}

func randomNewProduct(cur currency.Unit) domain.NewProduct {
	return domain.NewProduct{
		Name:           gofakeit.ProductName(),
		SKU:            gofakeit.UUID(),
		Price:          randomPrice(cur),
		Status:         domain.ProductStatusActive,
		InitialStock:   gofakeit.Number(10, 100),
		LowStockLevel:  gofakeit.Number(1, 5),
		StockThreshold: gofakeit.Number(1, 5),
	}
}

func insertProduct(t *testing.T, repo port.ProductRepository, p domain.NewProduct) domain.Product {
	t.Helper()

	product, err := repo.InsertProduct(t.Context(), p)
	require.NoError(t, err)

	return product
}

func randomUUID() uuid.UUID {
	return uuid.MustParse(gofakeit.UUID())
}

func assertDiff(t *testing.T, expected, actual any, opts ...cmp.Option) {
	t.Helper()

	opts = append(opts, currencyComparer, decimalComparer, cmpopts.EquateEmpty())

	diff := cmp.Diff(expected, actual, opts...)
	assert.Empty(t, diff)
}

var ignoreHistoryGenerated = cmpopts.IgnoreFields(domain.InventoryHistory{}, "ID", "CreatedAt")
