package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

// ===================================
// summarize_recipe
// ===================================

type SummarizeRecipeInput struct {
	CourseID int `json:"course_id"`
}

func newSummarizeRecipeTool(idx *kb.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSummarizeRecipe,
			Desc: "Produce a short natural-language summary of a course covering its health rating, scores, and how often it appears in meals.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"course_id": {
					Type:     "number",
					Desc:     "Course to summarize",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SummarizeRecipeInput) (map[string]any, error) {
			return finish(idx.Summarize(in.CourseID))
		},
	)
}

// ===================================
// recommend_similar_meals
// ===================================

type RecommendSimilarMealsInput struct {
	CourseID int `json:"course_id"`
	Limit    int `json:"limit,omitempty"`
}

func newRecommendSimilarMealsTool(idx *kb.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolRecommendSimilarMeals,
			Desc: "Recommend meals that contain courses of the same category as a reference course but not the course itself, healthiest meals first.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"course_id": {
					Type:     "number",
					Desc:     "Reference course",
					Required: true,
				},
				"limit": {
					Type: "number",
					Desc: "Maximum number of meals to return (default: 5)",
				},
			}),
		},
		func(ctx context.Context, in *RecommendSimilarMealsInput) (map[string]any, error) {
			limit := in.Limit
			if limit <= 0 {
				limit = 5
			}
			return finish(idx.SimilarMeals(in.CourseID, limit))
		},
	)
}
