package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/guruchat/guru/internal/conversation"
	"github.com/guruchat/guru/internal/log"
)

// GenkitClient implements Client on top of a genkit instance. The model is
// fixed at construction; there is no per-call model selection.
type GenkitClient struct {
	g           *genkit.Genkit
	modelName   string
	temperature float64
	logger      log.Logger
}

// NewGenkitClient creates a client bound to the provider-qualified model
// name (e.g. "googleai/gemini-2.5-flash", "openai/gpt-4.1-mini").
func NewGenkitClient(g *genkit.Genkit, modelName string, temperature float64, logger log.Logger) *GenkitClient {
	return &GenkitClient{
		g:           g,
		modelName:   modelName,
		temperature: temperature,
		logger:      logger,
	}
}

// Stream implements Client.
func (c *GenkitClient) Stream(ctx context.Context, msgs []conversation.Message, onDelta DeltaFunc) (string, error) {
	opts := c.generateOptions(msgs, 0)
	opts = append(opts, ai.WithStreaming(func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
		text := chunk.Text()
		if text == "" {
			return nil
		}
		return onDelta(ctx, text)
	}))

	resp, err := genkit.Generate(ctx, c.g, opts...)
	if err != nil {
		return "", fmt.Errorf("streaming completion: %w", err)
	}

	text := resp.Text()
	c.logger.Debug("stream completed", "messages", len(msgs), "response_len", len(text))
	return text, nil
}

// Complete implements Client.
func (c *GenkitClient) Complete(ctx context.Context, msgs []conversation.Message, maxTokens int) (string, error) {
	opts := c.generateOptions(msgs, maxTokens)

	resp, err := genkit.Generate(ctx, c.g, opts...)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}

	text := resp.Text()
	c.logger.Debug("completion finished", "messages", len(msgs), "response_len", len(text))
	return text, nil
}

// generateOptions maps conversation messages onto genkit generate options.
// A leading system message becomes ai.WithSystem; the rest keep their order.
// maxTokens bounds the output when positive.
func (c *GenkitClient) generateOptions(msgs []conversation.Message, maxTokens int) []ai.GenerateOption {
	var system string
	rest := msgs
	if len(msgs) > 0 && msgs[0].Role == conversation.RoleSystem {
		system = msgs[0].Content
		rest = msgs[1:]
	}

	aiMsgs := make([]*ai.Message, 0, len(rest))
	for _, m := range rest {
		switch m.Role {
		case conversation.RoleAssistant:
			aiMsgs = append(aiMsgs, ai.NewModelMessage(ai.NewTextPart(m.Content)))
		default:
			aiMsgs = append(aiMsgs, ai.NewUserMessage(ai.NewTextPart(m.Content)))
		}
	}

	cfg := &ai.GenerationCommonConfig{Temperature: c.temperature}
	if maxTokens > 0 {
		cfg.MaxOutputTokens = maxTokens
	}

	opts := []ai.GenerateOption{
		ai.WithModelName(c.modelName),
		ai.WithMessages(aiMsgs...),
		ai.WithConfig(cfg),
	}
	if system != "" {
		opts = append(opts, ai.WithSystem(system))
	}
	return opts
}
