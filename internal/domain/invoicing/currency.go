package invoicing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jhoicas/freelance-forge-api/internal/domain"
)

// DefaultCurrency se usa cuando la petición no indica moneda.
const DefaultCurrency = "USD"

// NormalizeCurrency valida un código ISO-4217 y lo devuelve en mayúsculas.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: moneda %q no reconocida", domain.ErrInvalidInput, code)
	}
	return unit.String(), nil
}

// FormatAmount formatea un monto con la escala estándar de la moneda (2 para USD, 0 para JPY).
func FormatAmount(amount decimal.Decimal, code string) string {
	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}
	return amount.StringFixed(int32(scale))
}

// FormatMoney formatea monto y código: "130.00 USD".
func FormatMoney(amount decimal.Decimal, code string) string {
	return FormatAmount(amount, code) + " " + code
}
