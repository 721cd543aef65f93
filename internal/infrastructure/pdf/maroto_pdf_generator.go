// Package pdf convierte el HTML renderizado de una factura en un PDF A4.
//
// El HTML se aplana en bloques (ver html_blocks.go) y cada bloque se pinta como una fila de Maroto:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  h1..h6      → texto en negrita, tamaño según nivel          │
//	│  p / texto   → párrafo (alto estimado según longitud)        │
//	│  li          → "• " + texto con sangría                      │
//	│  tr          → columnas repartidas en la grilla de 12        │
//	│  hr          → línea horizontal                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"math"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/freelance-forge-api/internal/application/billing"
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const (
	gridSize     = 12
	charsPerLine = 110 // aprox. a 9pt en A4 con márgenes de 10mm
	lineHeight   = 4.5
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// RenderHTML genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderHTML(ctx context.Context, doc billing.RenderedDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blocks, err := parseBlocks(doc.HTML)
	if err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Author, true).
		Build()

	m := maroto.New(cfg)
	for _, b := range blocks {
		m.AddRows(blockRows(b)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Bloques ───────────────────────────────────────────────────────────────────

func blockRows(b block) []core.Row {
	switch b.Kind {
	case blockHeading:
		size, height := headingSize(b.Level)
		return []core.Row{row.New(height).Add(col.New(gridSize).Add(
			text.New(b.Text, props.Text{Style: fontstyle.Bold, Size: size, Color: colorPrimary, Top: 1}),
		))}
	case blockParagraph:
		return []core.Row{row.New(textHeight(b.Text, gridSize)).Add(col.New(gridSize).Add(
			text.New(b.Text, props.Text{Size: 9, Top: 1}),
		))}
	case blockListItem:
		return []core.Row{row.New(textHeight(b.Text, gridSize-1)).Add(col.New(gridSize).Add(
			text.New("• "+b.Text, props.Text{Size: 9, Top: 1, Left: 4}),
		))}
	case blockTableRow:
		return tableRows(b)
	case blockRule:
		return []core.Row{line.NewRow(3, props.Line{Color: colorGray, Thickness: 0.3})}
	}
	return nil
}

// tableRows reparte las celdas en la grilla de 12 columnas; la primera (descripción) toma el sobrante.
func tableRows(b block) []core.Row {
	cells := b.Cells
	if len(cells) > gridSize {
		cells = cells[:gridSize]
	}
	sizes := columnSizes(len(cells))

	height := 0.0
	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		height = math.Max(height, textHeight(c, sizes[i]))
		p := props.Text{Size: 8, Top: 1, Left: 1, Right: 1, Align: align.Left}
		if i > 0 {
			p.Align = align.Right
		}
		if b.Header {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(c, p)))
	}

	rows := []core.Row{row.New(height).Add(cols...)}
	if b.Header {
		rows = append(rows, line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}
	return rows
}

func columnSizes(n int) []int {
	if n == 0 {
		return nil
	}
	sizes := make([]int, n)
	base := gridSize / n
	for i := range sizes {
		sizes[i] = base
	}
	sizes[0] += gridSize - base*n
	// con 3 o más columnas la primera suele ser la descripción
	if n >= 3 && base >= 2 {
		for i := 1; i < n && sizes[0] < gridSize/2; i++ {
			sizes[i]--
			sizes[0]++
		}
	}
	return sizes
}

func headingSize(level int) (size, height float64) {
	switch level {
	case 1:
		return 16, 12
	case 2:
		return 13, 10
	case 3:
		return 11, 8
	default:
		return 10, 7
	}
}

// textHeight estima el alto de fila para un texto que ocupa span columnas.
func textHeight(s string, span int) float64 {
	width := charsPerLine * span / gridSize
	if width < 1 {
		width = 1
	}
	lines := (len([]rune(s)) + width - 1) / width
	if lines < 1 {
		lines = 1
	}
	return float64(lines)*lineHeight + 2
}
