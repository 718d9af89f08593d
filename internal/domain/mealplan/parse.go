package mealplan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// stripFences removes markdown code fences the model sometimes wraps around
// its JSON despite instructions.
func stripFences(content string) string {
	content = strings.ReplaceAll(content, "```json\n", "")
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```\n", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

func parseGroceryItems(content string) ([]GroceryItem, error) {
	var items []GroceryItem
	if err := json.Unmarshal([]byte(stripFences(content)), &items); err != nil {
		return nil, fmt.Errorf("%w: failed to parse grocery list", apperr.ErrBadUpstreamOutput)
	}
	for i := range items {
		if items[i].Category == "" {
			items[i].Category = "Other"
		}
	}
	return items, nil
}

func parseRecipes(content string) ([]Recipe, error) {
	var recipes []Recipe
	if err := json.Unmarshal([]byte(stripFences(content)), &recipes); err != nil {
		return nil, fmt.Errorf("%w: failed to parse recipes", apperr.ErrBadUpstreamOutput)
	}
	return recipes, nil
}
