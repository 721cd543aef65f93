package ports

import "context"

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
type LLMService interface {
	// ImproveLineItem reescribe la descripción de una línea de factura de forma concisa y profesional.
	// previous es la última descripción facturada por el usuario (vacía si no hay) y sirve de referencia de estilo.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	ImproveLineItem(ctx context.Context, description, previous string) (string, error)
}
