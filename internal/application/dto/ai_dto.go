package dto

// ImproveLineItemRequest descripción de línea a mejorar con IA.
type ImproveLineItemRequest struct {
	Description string `json:"description" validate:"required,max=1000"`
}

// ImproveLineItemResponse sugerencia del modelo. BasedOn es la última línea facturada usada como contexto.
type ImproveLineItemResponse struct {
	Suggestion string  `json:"suggestion"`
	BasedOn    *string `json:"based_on"`
}

// LastLineItemResponse descripción de la última línea facturada por el usuario (null si no hay).
type LastLineItemResponse struct {
	Description *string `json:"description"`
}
