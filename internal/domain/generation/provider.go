// Package generation proxies image and text generation to an
// OpenAI-compatible API and fans out multi-concept runs.
package generation

import "context"

// ImageRequest asks for a single generated image.
type ImageRequest struct {
	Prompt string
	Size   string
}

// ImageResult is an inline-encoded generated image.
type ImageResult struct {
	Base64 string
	Format string
}

// TextRequest asks for generated copy (taglines, descriptions).
type TextRequest struct {
	System string
	Prompt string
}

// Provider is the external generation API boundary.
type Provider interface {
	GenerateImage(ctx context.Context, req ImageRequest) (ImageResult, error)
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}
