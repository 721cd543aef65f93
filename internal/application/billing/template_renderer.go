package billing

import (
	"html"
	"regexp"
	"strings"

	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/invoicing"
)

// DefaultTemplateHTML se usa cuando la factura no referencia ninguna plantilla.
const DefaultTemplateHTML = `<html>
<body>
<h1>Invoice {{ invoice_number }}</h1>
<p>Date: {{ date }}</p>
<h3>From</h3>
<p>{{ company_name }}</p>
<p>{{ user_address }}</p>
<p>Registration: {{ company_registration_number }}</p>
<p>{{ user_email }}</p>
<h3>Bill to</h3>
<p>{{ client_name }}</p>
<p>{{ client_address }}</p>
<hr>
<p>{{ description }}</p>
{{ line_items }}
<hr>
<h2>Total: {{ total }} {{ currency }}</h2>
</body>
</html>`

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-z_]+)\s*\}\}`)

// TemplateData datos disponibles para los marcadores de una plantilla.
// User y Company (la empresa propia del emisor) pueden ser nil.
type TemplateData struct {
	Invoice *entity.Invoice
	User    *entity.User
	Company *entity.Company
}

// RenderTemplate sustituye los marcadores {{ nombre }} por sus valores escapados como HTML.
// line_items se expande a una tabla. Los marcadores desconocidos se dejan tal cual.
func RenderTemplate(tpl string, data TemplateData) string {
	values := placeholderValues(data)
	return placeholderRe.ReplaceAllStringFunc(tpl, func(token string) string {
		name := placeholderRe.FindStringSubmatch(token)[1]
		if name == "line_items" {
			return lineItemsTable(data.Invoice)
		}
		v, ok := values[name]
		if !ok {
			return token
		}
		return html.EscapeString(v)
	})
}

func placeholderValues(data TemplateData) map[string]string {
	inv := data.Invoice
	v := map[string]string{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
		"date":           inv.Date.Format("2006-01-02"),
		"currency":       inv.Currency,
		"total":          invoicing.FormatAmount(inv.TotalAmount, inv.Currency),
		"description":    inv.Description,
		"client_name":    inv.ClientName,
		"client_address": inv.ClientAddress,
		"user_address":   inv.UserAddress,

		"user_email":                  "",
		"company_name":                "",
		"company_address":             "",
		"company_registration_number": "",
	}
	if data.User != nil {
		v["user_email"] = data.User.Email
	}
	if c := data.Company; c != nil {
		v["company_name"] = c.Name
		v["company_address"] = c.Address
		v["company_registration_number"] = c.RegistrationNumber
	}
	return v
}

// lineItemsTable arma la tabla de líneas: Descripción | Cant. | Precio | Total.
func lineItemsTable(inv *entity.Invoice) string {
	var b strings.Builder
	b.WriteString("<table>\n<tr><th>Description</th><th>Qty</th><th>Unit price</th><th>Amount</th></tr>\n")
	for _, it := range inv.Items {
		qty := "-"
		if it.UseQuantity {
			qty = it.Quantity.String()
		}
		b.WriteString("<tr><td>")
		b.WriteString(html.EscapeString(it.Description))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(qty))
		b.WriteString("</td><td>")
		b.WriteString(invoicing.FormatAmount(it.UnitPrice, inv.Currency))
		b.WriteString("</td><td>")
		b.WriteString(invoicing.FormatAmount(it.LineTotal, inv.Currency))
		b.WriteString("</td></tr>\n")
	}
	b.WriteString("</table>")
	return b.String()
}
