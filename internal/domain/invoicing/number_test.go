package invoicing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freelance-forge-api/internal/domain/invoicing"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "IN-00001", invoicing.FormatNumber(1))
	assert.Equal(t, "IN-00042", invoicing.FormatNumber(42))
	assert.Equal(t, "IN-123456", invoicing.FormatNumber(123456))
}

func TestParseNumber(t *testing.T) {
	seq, err := invoicing.ParseNumber("IN-00042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)

	for _, bad := range []string{"", "IN-", "XX-00001", "IN-abc", "IN-00000"} {
		_, err := invoicing.ParseNumber(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	got, err := invoicing.NormalizeCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got)

	got, err = invoicing.NormalizeCurrency("")
	require.NoError(t, err)
	assert.Equal(t, invoicing.DefaultCurrency, got)

	_, err = invoicing.NormalizeCurrency("ZZZ")
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "130.00 USD", invoicing.FormatMoney(decimal.NewFromInt(130), "USD"))
	assert.Equal(t, "1500 JPY", invoicing.FormatMoney(decimal.NewFromInt(1500), "JPY"))
}
