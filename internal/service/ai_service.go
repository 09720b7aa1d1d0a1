package service

import (
	"bytes"
	"context"
	"encoding/json"
	"feedback_backend/internal/config"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChatCompleter is the slice of an OpenAI-compatible API the suggestion flow needs.
type ChatCompleter interface {
	Chat(ctx context.Context, messages []AIChatMessage) (string, error)
}

type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model     string          `json:"model"`
	Messages  []AIChatMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) Chat(ctx context.Context, messages []AIChatMessage) (string, error) {
	if s.config.BaseURL == "" {
		return "", fmt.Errorf("AI endpoint is not configured")
	}

	jsonData, err := json.Marshal(ChatCompletionRequest{
		Model:     s.config.Model,
		Messages:  messages,
		MaxTokens: 400,
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(s.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}
