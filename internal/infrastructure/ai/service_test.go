package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemUserMessage(t *testing.T) {
	assert.Equal(t, "Description: logo", lineItemUserMessage("logo", "  "))
	assert.Equal(t, "Description: logo\nPrevious description: Diseño web", lineItemUserMessage("logo", "Diseño web"))
}

func TestAnthropicService_ImproveLineItem(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"  Logo design, 3 revisions \n"}]}`))
	}))
	defer srv.Close()

	s := NewAnthropicService("k", "claude-test")
	s.url = srv.URL

	out, err := s.ImproveLineItem(context.Background(), "logo 3 rev", "Web design")
	require.NoError(t, err)
	assert.Equal(t, "Logo design, 3 revisions", out)
	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, lineItemSystemPrompt, got.System)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "Previous description: Web design")
}

func TestAnthropicService_ErrorAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	s := NewAnthropicService("k", "m")
	s.url = srv.URL

	_, err := s.ImproveLineItem(context.Background(), "x", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func TestAnthropicService_SinAPIKey(t *testing.T) {
	_, err := NewAnthropicService("", "m").ImproveLineItem(context.Background(), "x", "")
	assert.Error(t, err)
}

func TestGeminiService_ImproveLineItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Monthly hosting fee\n"}]}}]}`))
	}))
	defer srv.Close()

	s := NewGeminiService("k", "gemini-test")
	s.baseURL = srv.URL

	out, err := s.ImproveLineItem(context.Background(), "hosting", "")
	require.NoError(t, err)
	assert.Equal(t, "Monthly hosting fee", out)
}

func TestGeminiService_RespuestaVacia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	s := NewGeminiService("k", "m")
	s.baseURL = srv.URL

	_, err := s.ImproveLineItem(context.Background(), "x", "")
	assert.Error(t, err)
}
