package ai

import (
	"fmt"
	"strings"

	"github.com/jhoicas/freelance-forge-api/internal/application/ports"
	"github.com/jhoicas/freelance-forge-api/pkg/config"
)

// Proveedores soportados en AI_PROVIDER.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// NewLLMService elige el adaptador según la configuración.
// Devuelve nil (IA deshabilitada) cuando el proveedor elegido no tiene API key.
func NewLLMService(cfg config.AIConfig) (ports.LLMService, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, nil
		}
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("AI: proveedor desconocido %q", cfg.Provider)
	}
}
