package agent

import (
	"fmt"
	"os"
	"strings"

	"github.com/outfitterco/outfitter/pkg/catalog"
)

// DefaultInstructions is the built-in behavioral policy for the shopping
// agent. The policy is configuration, not logic: operators can replace it
// wholesale via the agent.instructions_file config key.
var DefaultInstructions = fmt.Sprintf(`You are an expert shopping assistant specializing in clothing and fashion. Your role is to help users find the perfect clothing items based on their needs and preferences.

When helping users:
1. Ask clarifying questions if their request is vague (e.g., occasion, size, budget, style preferences)
2. Use the search_products tool to find relevant products based on their query
3. Present results in a friendly, organized manner with key details like price, brand, material, and colors
4. Provide styling suggestions or alternatives when appropriate
5. Help users compare different options based on their criteria

Available product categories: %s
Available brands: %s

Be conversational, helpful, and focus on understanding what the user really wants to achieve with their clothing purchase.`,
	strings.Join(catalog.Categories, ", "),
	strings.Join(catalog.Brands, ", "),
)

// LoadInstructions returns the instruction text from path, or
// DefaultInstructions when path is empty.
func LoadInstructions(path string) (string, error) {
	if path == "" {
		return DefaultInstructions, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading instructions %s: %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("instructions file %s is empty", path)
	}

	return text, nil
}
