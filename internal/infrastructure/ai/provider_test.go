package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freelance-forge-api/pkg/config"
)

func TestNewLLMService(t *testing.T) {
	svc, err := NewLLMService(config.AIConfig{})
	require.NoError(t, err)
	assert.Nil(t, svc, "sin API key la IA queda deshabilitada")

	svc, err = NewLLMService(config.AIConfig{AnthropicAPIKey: "k", AnthropicModel: "m"})
	require.NoError(t, err)
	assert.IsType(t, &AnthropicService{}, svc)

	svc, err = NewLLMService(config.AIConfig{Provider: "Gemini", GeminiAPIKey: "k", GeminiModel: "m"})
	require.NoError(t, err)
	assert.IsType(t, &GeminiService{}, svc)

	_, err = NewLLMService(config.AIConfig{Provider: "openai"})
	assert.Error(t, err)
}
