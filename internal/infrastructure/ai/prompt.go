package ai

import (
	"fmt"
	"strings"
)

// lineItemSystemPrompt instrucciones comunes a todos los proveedores.
const lineItemSystemPrompt = `You rewrite line-item descriptions for freelance invoices.
Return ONLY the improved description as plain text: no quotes, no markdown, no explanations.

Rules:
- Keep the meaning and every concrete fact (hours, dates, deliverables, versions).
- Be concise and professional; one sentence, at most 120 characters.
- Keep the language of the original description.
- If a previous description is given, match its tone and structure.`

// lineItemUserMessage arma el mensaje del usuario con la descripción y, si existe, la anterior.
func lineItemUserMessage(description, previous string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Description: %s", description)
	if p := strings.TrimSpace(previous); p != "" {
		fmt.Fprintf(&b, "\nPrevious description: %s", p)
	}
	return b.String()
}
