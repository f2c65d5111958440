package secondary

import "context"

// CodeReviewer defines the text generation capability used for audits
type CodeReviewer interface {
	// Generate returns the model's answer to prompt
	Generate(ctx context.Context, prompt string) (string, error)
}
