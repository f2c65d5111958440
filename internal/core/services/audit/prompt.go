package audit

import "fmt"

const promptTemplate = `Analyze this Python code and provide feedback as a Senior Engineer would.

Code:
%s

Provide a brief analysis including:
1. Time Complexity (Big-O notation)
2. Code Style Assessment
3. A fun "RPG-style" badge (e.g., "Python Ninja 🥷", "Code Wizard 🧙", "Clean Coder ✨")

Keep the response concise (2-3 sentences max).`

// BuildPrompt embeds sourceText into the review request
func BuildPrompt(sourceText string) string {
	return fmt.Sprintf(promptTemplate, sourceText)
}
