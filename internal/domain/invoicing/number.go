package invoicing

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberPrefix prefijo de la numeración de facturas.
const NumberPrefix = "IN-"

// FormatNumber devuelve el número visible de la factura para el consecutivo seq (IN-00001).
func FormatNumber(seq int64) string {
	return fmt.Sprintf("%s%05d", NumberPrefix, seq)
}

// ParseNumber extrae el consecutivo de un número IN-xxxxx.
func ParseNumber(number string) (int64, error) {
	rest, ok := strings.CutPrefix(number, NumberPrefix)
	if !ok || rest == "" {
		return 0, fmt.Errorf("número de factura inválido: %q", number)
	}
	seq, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("número de factura inválido: %q", number)
	}
	return seq, nil
}
