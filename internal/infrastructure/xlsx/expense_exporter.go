// Package xlsx exporta los gastos del usuario a una hoja de cálculo con excelize.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/freelance-forge-api/internal/application/ports"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
)

const (
	// ContentType MIME de los libros .xlsx.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName   = "Gastos"
	numFmtMoney = 4 // #,##0.00
)

var headers = []string{"Fecha", "Proveedor", "Descripción", "Categoría", "Importe", "Moneda", "Comprobante"}

var _ ports.ExpenseExporter = (*ExpenseExporter)(nil)

// ExpenseExporter implementa ports.ExpenseExporter.
type ExpenseExporter struct{}

// NewExpenseExporter construye el exportador.
func NewExpenseExporter() *ExpenseExporter { return &ExpenseExporter{} }

// Export escribe una fila por gasto, en el orden recibido, bajo una fila de cabecera.
func (e *ExpenseExporter) Export(expenses []*entity.Expense) ([]byte, string, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, "", "", fmt.Errorf("xlsx: hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", "", fmt.Errorf("xlsx: estilo: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return nil, "", "", fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", last, headerStyle)

	for i, exp := range expenses {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		write(1, exp.Date.Format("2006-01-02"))
		write(2, exp.Vendor)
		write(3, exp.Description)
		write(4, exp.Category)
		write(5, exp.Amount.InexactFloat64())
		write(6, exp.Currency)
		write(7, exp.ReceiptURL)

		amountCell, _ := excelize.CoordinatesToCellName(5, row)
		_ = f.SetCellStyle(sheetName, amountCell, amountCell, moneyStyle)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "B", "B", 24)
	_ = f.SetColWidth(sheetName, "C", "C", 40)
	_ = f.SetColWidth(sheetName, "D", "D", 18)
	_ = f.SetColWidth(sheetName, "E", "F", 12)
	_ = f.SetColWidth(sheetName, "G", "G", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", "", fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), ContentType, "xlsx", nil
}
