package ports

import "github.com/jhoicas/freelance-forge-api/internal/domain/entity"

// ExpenseExporter genera un archivo descargable con los gastos del usuario.
type ExpenseExporter interface {
	// Export devuelve el contenido del archivo, su content-type y la extensión (sin punto).
	Export(expenses []*entity.Expense) (content []byte, contentType string, ext string, err error)
}
