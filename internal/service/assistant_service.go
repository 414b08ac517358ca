package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// ErrAssistantUnavailable is returned when no Gemini API key is configured.
var ErrAssistantUnavailable = errors.New("assistant is not configured")

// AssistantMessage is one turn of the chat history.
type AssistantMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// AssistantService answers client questions about the business using Gemini.
// The business context (services, opening hours, custom prompt) is injected
// as the system instruction on every call so the model stays on topic.
type AssistantService interface {
	Chat(ctx context.Context, businessContext string, history []AssistantMessage, message string) (string, error)
	Close() error
}

type assistantService struct {
	client  *genai.Client
	modelID string
	log     *logrus.Logger
}

func NewAssistantService(ctx context.Context, apiKey, modelID string, log *logrus.Logger) (AssistantService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return &assistantService{log: log, modelID: modelID}, nil
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &assistantService{
		client:  client,
		modelID: modelID,
		log:     log,
	}, nil
}

func (s *assistantService) Chat(ctx context.Context, businessContext string, history []AssistantMessage, message string) (string, error) {
	if s.client == nil {
		return "", ErrAssistantUnavailable
	}
	if strings.TrimSpace(message) == "" {
		return "", errors.New("message is required")
	}

	model := s.client.GenerativeModel(s.modelID)
	if strings.TrimSpace(businessContext) != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(businessContext))
	}

	cs := model.StartChat()
	for _, msg := range history {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		s.log.Warnf("Gemini completion failed: %+v", err)
		return "", fmt.Errorf("gemini completion: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no content")
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}

	return strings.TrimSpace(reply.String()), nil
}

func (s *assistantService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
