package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/medihelp/sally-api/internal/application/ports"
	"github.com/medihelp/sally-api/internal/domain/conversation"
	"github.com/medihelp/sally-api/pkg/config"
)

var _ ports.CompletionService = (*OpenAIService)(nil)

// OpenAIService adaptador del puerto CompletionService sobre la API de
// chat completions de OpenAI.
type OpenAIService struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewOpenAIService construye el adaptador. Si no hay API key el cliente
// queda nulo y Enabled() devuelve false: el asistente sigue funcionando
// en modo degradado.
func NewOpenAIService(cfg config.OpenAIConfig) *OpenAIService {
	svc := &OpenAIService{
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if cfg.APIKey != "" {
		svc.client = openai.NewClient(cfg.APIKey)
	}
	return svc
}

// Enabled indica si hay credencial configurada.
func (s *OpenAIService) Enabled() bool {
	return s.client != nil
}

// Complete envía la conversación al modelo y devuelve el texto generado.
func (s *OpenAIService) Complete(ctx context.Context, messages []conversation.Message) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("openai: cliente no configurado")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages:    toChatMessages(messages),
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func toChatMessages(messages []conversation.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		switch role {
		case conversation.RoleUser, conversation.RoleAssistant, openai.ChatMessageRoleSystem:
		default:
			role = openai.ChatMessageRoleUser
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
