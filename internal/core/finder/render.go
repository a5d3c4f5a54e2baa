package finder

import (
	"fmt"
	"strings"

	"recipe-finder/internal/core/spoonacular"
)

// 顯示用固定文字
const (
	MsgNoRecipes       = "Sorry, no recipes found."
	MsgNoInstructions  = "No instructions available. Please check the recipe URL for more details."
	SummaryPrefix      = "Recipe summary:"
	SectionNutrition   = "Calorie & Fat Content:"
	SectionIngredients = "Ingredients Needed:"
	SectionSteps       = "Instructions:"
)

// RenderResults 將搜尋結果轉為純文字；總數為零時只輸出找不到的訊息
func RenderResults(result *spoonacular.SearchResult) string {
	if result.TotalResults == 0 {
		return MsgNoRecipes
	}

	var sb strings.Builder
	for i := range result.Results {
		renderRecipe(&sb, &result.Results[i])
	}
	return sb.String()
}

// renderRecipe 依固定順序輸出單一食譜
func renderRecipe(sb *strings.Builder, r *spoonacular.Recipe) {
	fmt.Fprintf(sb, "Recipe ID: %s\n", r.DisplayID())
	fmt.Fprintf(sb, "Recipe Title: %s\n", r.DisplayTitle())
	fmt.Fprintf(sb, "Time Required: %s minutes\n", r.DisplayReadyInMinutes())
	fmt.Fprintf(sb, "Recipe URL: %s\n", r.DisplaySourceURL())

	sb.WriteString(SectionNutrition + "\n")
	for _, n := range r.Nutrients() {
		writeQuantity(sb, n)
	}

	sb.WriteString(SectionIngredients + "\n")
	for _, ing := range r.ExtendedIngredients {
		writeQuantity(sb, ing)
	}

	sb.WriteString(SectionSteps + "\n")
	renderInstructions(sb, r)

	sb.WriteString("\n")
}

func writeQuantity(sb *strings.Builder, q spoonacular.Quantity) {
	fmt.Fprintf(sb, "%s: %s %s\n", q.DisplayName(), q.DisplayAmount(), q.DisplayUnit())
}

// renderInstructions 步驟 > 純文字說明 > 摘要 > 固定提示
func renderInstructions(sb *strings.Builder, r *spoonacular.Recipe) {
	switch r.ResolveInstructions() {
	case spoonacular.InstructionsSteps:
		for _, step := range r.Steps() {
			fmt.Fprintf(sb, "%s. %s\n", step.DisplayNumber(), step.DisplayText())
		}
	case spoonacular.InstructionsText:
		sb.WriteString(*r.Instructions + "\n")
	case spoonacular.InstructionsSummary:
		sb.WriteString(SummaryPrefix + "\n" + *r.Summary + "\n")
	default:
		sb.WriteString(MsgNoInstructions + "\n")
	}
}
