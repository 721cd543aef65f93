package dto

import "time"

// InvoiceTemplateRequest entrada para crear o reemplazar una plantilla.
type InvoiceTemplateRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	HTML string `json:"html" validate:"required,max=200000"`
}

// InvoiceTemplateResponse salida de una plantilla.
type InvoiceTemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceTemplateListResponse listado de plantillas del usuario.
type InvoiceTemplateListResponse struct {
	Items []InvoiceTemplateResponse `json:"items"`
}
