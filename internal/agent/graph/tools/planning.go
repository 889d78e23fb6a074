package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

// ===================================
// generate_meal_plan
// ===================================

type GenerateMealPlanInput struct {
	HealthFocus       string   `json:"health_focus,omitempty"`
	MaxAvgHealthScore *float64 `json:"max_avg_health_score,omitempty"`
	IncludeCategories []string `json:"include_categories,omitempty"`
}

type GenerateMealPlanOutput struct {
	*kb.MealPlan
	Goal GenerateMealPlanInput `json:"goal"`
}

func newGenerateMealPlanTool(planner *kb.Planner) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGenerateMealPlan,
			Desc: "Generate a meal plan by picking the healthiest qualifying course per requested category. Categories with no qualifying course are omitted.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"health_focus": {
					Type: "string",
					Desc: "Dietary goal setting the FSA threshold (default: balanced)",
					Enum: []string{"weight_loss", "heart_healthy", "balanced", "low_sodium"},
				},
				"max_avg_health_score": {
					Type: "number",
					Desc: "Optional explicit FSA threshold overriding the health focus",
				},
				"include_categories": {
					Type: "array",
					Desc: "Categories to fill (default: appetizer, main, dessert)",
					ElemInfo: &schema.ParameterInfo{
						Type: "string",
						Enum: []string{"appetizer", "main", "dessert"},
					},
				},
			}),
		},
		func(ctx context.Context, in *GenerateMealPlanInput) (map[string]any, error) {
			plan := planner.PlanMeal(kb.PlanGoal{
				HealthFocus:       in.HealthFocus,
				MaxAvgHealthScore: in.MaxAvgHealthScore,
				IncludeCategories: in.IncludeCategories,
			})
			return finish(&GenerateMealPlanOutput{MealPlan: plan, Goal: *in}, nil)
		},
	)
}

// ===================================
// get_meal_composition
// ===================================

type GetMealCompositionInput struct {
	MealID int `json:"meal_id"`
}

func newGetMealCompositionTool(idx *kb.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetMealComposition,
			Desc: "Get the full course list of one meal with per-score averages and a health rating.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"meal_id": {
					Type:     "number",
					Desc:     "Meal ID from the dataset",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetMealCompositionInput) (map[string]any, error) {
			return finish(idx.MealComposition(in.MealID))
		},
	)
}
