package pdf

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockKind tipo de bloque de maquetación extraído del HTML.
type blockKind int

const (
	blockHeading blockKind = iota + 1
	blockParagraph
	blockListItem
	blockTableRow
	blockRule
)

// block unidad mínima que el generador sabe pintar en una fila de Maroto.
type block struct {
	Kind   blockKind
	Level  int      // 1..6 para encabezados
	Text   string   // encabezado, párrafo o ítem de lista
	Cells  []string // celdas de una fila de tabla
	Header bool     // la fila contiene <th>
}

// parseBlocks recorre el árbol HTML y lo aplana en bloques.
// El texto suelto dentro de contenedores (div, body, p, td fuera de tabla) se agrupa en párrafos.
func parseBlocks(src string) ([]block, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("pdf: parsear html: %w", err)
	}
	w := &blockWalker{}
	w.walk(root)
	w.flush()
	return w.blocks, nil
}

type blockWalker struct {
	blocks []block
	inline strings.Builder
}

func (w *blockWalker) flush() {
	if s := normalizeSpace(w.inline.String()); s != "" {
		w.blocks = append(w.blocks, block{Kind: blockParagraph, Text: s})
	}
	w.inline.Reset()
}

func (w *blockWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.inline.WriteString(n.Data)
		return
	case html.ElementNode:
	case html.DocumentNode:
		w.children(n)
		return
	default:
		return
	}

	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Title, atom.Template:
		return
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		w.flush()
		if s := textOf(n); s != "" {
			w.blocks = append(w.blocks, block{Kind: blockHeading, Level: int(n.Data[1] - '0'), Text: s})
		}
	case atom.Li:
		w.flush()
		if s := textOf(n); s != "" {
			w.blocks = append(w.blocks, block{Kind: blockListItem, Text: s})
		}
	case atom.Tr:
		w.flush()
		if b, ok := tableRow(n); ok {
			w.blocks = append(w.blocks, b)
		}
	case atom.Hr:
		w.flush()
		w.blocks = append(w.blocks, block{Kind: blockRule})
	case atom.Br:
		w.flush()
	case atom.Html, atom.Body, atom.Div, atom.P, atom.Section, atom.Article, atom.Header, atom.Footer,
		atom.Main, atom.Table, atom.Thead, atom.Tbody, atom.Tfoot, atom.Ul, atom.Ol, atom.Blockquote,
		atom.Address, atom.Pre:
		w.flush()
		w.children(n)
		w.flush()
	default:
		// inline: span, strong, em, a, ...
		w.children(n)
	}
}

func (w *blockWalker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func tableRow(tr *html.Node) (block, bool) {
	b := block{Kind: blockTableRow}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Th:
			b.Header = true
			b.Cells = append(b.Cells, textOf(c))
		case atom.Td:
			b.Cells = append(b.Cells, textOf(c))
		}
	}
	return b, len(b.Cells) > 0
}

// textOf concatena el texto visible de n y sus descendientes.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Br {
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return normalizeSpace(sb.String())
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
