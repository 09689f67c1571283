package service

import "context"

// TextProvider is the text-generation boundary the orchestrators depend on.
// Implementations are slow, rate-limited and occasionally malformed; callers
// bound every call with a context deadline.
type TextProvider interface {
	// GenerateText returns the raw model response for a prompt. The
	// response is free-form text that may or may not honor the prompt's
	// formatting instructions.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateEmbedding returns an embedding vector for the given text.
	// Providers without an embedding model return an error; callers treat
	// embedding-backed features as optional.
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
