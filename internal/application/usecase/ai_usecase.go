package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/application/ports"
	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

// AIUseCase orquesta la mejora de descripciones de línea asistida por IA.
// Aplica un timeout de 10 segundos en cada llamada al LLM para evitar
// que las latencias externas bloqueen los goroutines del servidor.
type AIUseCase struct {
	llm         ports.LLMService // nil si no hay proveedor configurado
	invoiceRepo repository.InvoiceRepository
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(llm ports.LLMService, invoiceRepo repository.InvoiceRepository) *AIUseCase {
	return &AIUseCase{llm: llm, invoiceRepo: invoiceRepo}
}

// ImproveLineItem pide al modelo una versión más clara de la descripción, usando
// la última línea facturada por el usuario como referencia de estilo.
func (uc *AIUseCase) ImproveLineItem(ctx context.Context, userID string, req dto.ImproveLineItemRequest) (*dto.ImproveLineItemResponse, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description es obligatorio", domain.ErrInvalidInput)
	}
	if uc.llm == nil {
		return nil, domain.ErrAIUnavailable
	}
	last, err := uc.lastDescription(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Timeout de 10 s: las llamadas a LLMs pueden demorar varios segundos.
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	previous := ""
	if last != nil {
		previous = *last
	}
	suggestion, err := uc.llm.ImproveLineItem(ctx, description, previous)
	if err != nil {
		return nil, fmt.Errorf("mejora IA: %w", err)
	}
	suggestion = strings.Trim(strings.TrimSpace(suggestion), `"`)
	if suggestion == "" {
		suggestion = description
	}
	return &dto.ImproveLineItemResponse{Suggestion: suggestion, BasedOn: last}, nil
}

// LastLineItem devuelve la descripción de la última línea facturada (nil si no hay facturas).
func (uc *AIUseCase) LastLineItem(ctx context.Context, userID string) (*dto.LastLineItemResponse, error) {
	last, err := uc.lastDescription(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.LastLineItemResponse{Description: last}, nil
}

func (uc *AIUseCase) lastDescription(ctx context.Context, userID string) (*string, error) {
	item, err := uc.invoiceRepo.LastLineItemByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("mejora IA: última línea: %w", err)
	}
	if item == nil {
		return nil, nil
	}
	d := item.Description
	return &d, nil
}
