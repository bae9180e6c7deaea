package generation

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"brandkit-server-go/internal/platform/config"
	"brandkit-server-go/internal/platform/errors"
)

// OpenAIProvider speaks to any OpenAI-compatible generation endpoint.
type OpenAIProvider struct {
	client *openai.Client
	cfg    config.GenerationConfig
}

// NewOpenAIProvider builds the production provider from configuration.
func NewOpenAIProvider(cfg config.GenerationConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.KindGeneration, "provider.init", "generation API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// GenerateImage requests one image and returns it inline-encoded.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (ImageResult, error) {
	size := req.Size
	if size == "" {
		size = p.cfg.ImageSize
	}

	resp, err := p.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          p.cfg.ImageModel,
		N:              1,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return ImageResult{}, errors.Wrap(errors.KindGeneration, "provider.image", "image generation failed", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return ImageResult{}, errors.New(errors.KindGeneration, "provider.image", "empty image response")
	}

	return ImageResult{Base64: resp.Data[0].B64JSON, Format: "png"}, nil
}

// GenerateText requests a single chat completion.
func (p *OpenAIProvider) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.cfg.TextModel,
		Messages:    messages,
		Temperature: float32(p.cfg.Temperature),
	})
	if err != nil {
		return "", errors.Wrap(errors.KindGeneration, "provider.text", "text generation failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.KindGeneration, "provider.text", "empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}

// promptForConcept renders the logo-concept prompt for one variation.
func promptForConcept(kitName, industry, description string, index int) string {
	base := fmt.Sprintf("Minimalist vector logo for %q", kitName)
	if industry != "" {
		base += fmt.Sprintf(", a %s brand", industry)
	}
	if description != "" {
		base += ". " + description
	}
	return fmt.Sprintf("%s. Concept variation %d, flat design, plain background.", base, index+1)
}
