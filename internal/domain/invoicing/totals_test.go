package invoicing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/invoicing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name        string
		qty, price  string
		useQuantity bool
		want        string
	}{
		{"cantidad por precio", "2", "50", true, "100"},
		{"monto plano ignora cantidad", "7", "30", false, "30"},
		{"monto plano con cantidad cero", "0", "30", false, "30"},
		{"decimales exactos", "1.5", "0.1", true, "0.15"},
		{"negativo se acepta", "-1", "20", true, "-20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoicing.LineTotal(d(tt.qty), d(tt.price), tt.useQuantity)
			assert.True(t, d(tt.want).Equal(got), "esperado %s, obtenido %s", tt.want, got)
		})
	}
}

func TestComputeTotals_Ejemplo130(t *testing.T) {
	items := []entity.LineItem{
		{Description: "Desarrollo", Quantity: d("2"), UnitPrice: d("50"), UseQuantity: true},
		{Description: "Setup", Quantity: d("1"), UnitPrice: d("30"), UseQuantity: false},
	}

	total, err := invoicing.ComputeTotals(items)
	require.NoError(t, err)

	assert.True(t, d("130").Equal(total), "total esperado 130, obtenido %s", total)
	assert.True(t, d("100").Equal(items[0].LineTotal))
	assert.True(t, d("30").Equal(items[1].LineTotal))
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, 2, items[1].Position)
}

func TestComputeTotals_SumaDeLineas(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: d("3"), UnitPrice: d("19.99"), UseQuantity: true},
		{Quantity: d("10"), UnitPrice: d("0.333"), UseQuantity: true},
		{Quantity: d("4"), UnitPrice: d("250"), UseQuantity: false},
		{Quantity: d("0.25"), UnitPrice: d("80"), UseQuantity: true},
	}

	total, err := invoicing.ComputeTotals(items)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal)
	}
	assert.True(t, sum.Equal(total))
	assert.True(t, d("333.30").Equal(total), "obtenido %s", total)
}

func TestComputeTotals_SinLineas(t *testing.T) {
	_, err := invoicing.ComputeTotals(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
