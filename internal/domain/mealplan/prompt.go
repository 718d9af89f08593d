package mealplan

import (
	"fmt"
	"strings"
)

// systemPrompt pins the model to machine-readable output. The clinical
// instructions live in the user prompts below.
const systemPrompt = "You are a clinical nutrition expert. Always respond with valid JSON only."

const defaultRecipeCount = 3

func formatTargets(p *Profile) string {
	if len(p.NutrientTargets) > 0 {
		return string(p.NutrientTargets)
	}
	return "Standard adult (1800-2000 kcal, 65-80g protein)"
}

func formatOr(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func formatList(values []string, fallback string) string {
	if len(values) > 0 {
		return strings.Join(values, ", ")
	}
	return fallback
}

// groceryPrompt builds the weekly grocery list instruction. The adaptation
// rules (soluble fiber for diarrhea, high fiber for constipation, hard
// allergen exclusion) are the clinical core of this product and must stay
// intact.
func groceryPrompt(p *Profile) string {
	return fmt.Sprintf(`You are a Registered Dietitian creating a weekly grocery list for a patient who uses blenderized tube feedings (BTF).

Patient profile:
- Nutrient targets: %s
- Food allergies: %s
- Food intolerances: %s
- Dietary preferences: %s
- Current GI symptoms: %s

Requirements:
- Generate a 7-day grocery list with items organized by category
- Include enough variety for diverse BTF recipes
- Quantities should cover one week of tube feedings (~3-5 blends per day)
- If patient has diarrhea, emphasize soluble fiber foods (oats, bananas, applesauce, white rice)
- If patient has constipation, include high-fiber foods
- Avoid ALL listed allergens completely
- Respect dietary preferences
- Include categories: Fruits, Vegetables, Protein, Dairy, Grains, Oils & Fats, Staples, Supplements

Return a JSON array of grocery items. Each item must have exactly these fields:
{
  "name": "string",
  "category": "string",
  "quantity": "string"
}

Return ONLY the JSON array, no other text.`,
		formatTargets(p),
		formatOr(p.Allergies, "None reported"),
		formatOr(p.Intolerances, "None reported"),
		formatList(p.DietaryPreferences, "No restrictions"),
		formatList(p.GISymptoms, "None"))
}

// recipePrompt builds the recipe generation instruction. Reflux avoidance is
// recipe-specific; the grocery prompt deliberately omits it.
func recipePrompt(p *Profile, count int) string {
	if count <= 0 {
		count = defaultRecipeCount
	}
	return fmt.Sprintf(`You are a Registered Dietitian specializing in blenderized tube feedings (BTF). Generate %d unique BTF recipes.

Patient profile:
- Nutrient targets: %s
- Food allergies: %s
- Food intolerances: %s
- Dietary preferences: %s
- Current GI symptoms: %s
- Feeding goal: %s

Requirements:
- Each recipe must blend to a smooth consistency safe for tube feeding
- Include specific measurements in grams or mL
- Target 300-550 calories per recipe depending on daily needs
- Ensure adequate protein per recipe
- If patient has diarrhea, favor soluble fiber (oats, banana, applesauce)
- If patient has constipation, include more insoluble fiber
- If patient has reflux/GERD, avoid acidic/spicy ingredients
- Avoid ALL listed allergens completely
- Respect all dietary preferences

Return a JSON array of recipes. Each recipe must have exactly these fields:
{
  "name": "string",
  "description": "string (1-2 sentences)",
  "calories": number,
  "protein": number,
  "volume_ml": number,
  "prep_time": "string",
  "tags": ["string"],
  "ingredients": [{"name": "string", "amount": "string"}],
  "instructions": "string (step-by-step, separated by newlines)"
}

Return ONLY the JSON array, no other text.`,
		count,
		formatTargets(p),
		formatOr(p.Allergies, "None reported"),
		formatOr(p.Intolerances, "None reported"),
		formatList(p.DietaryPreferences, "No restrictions"),
		formatList(p.GISymptoms, "None"),
		formatOr(p.FeedingGoal, "General BTF"))
}
