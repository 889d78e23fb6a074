package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

// ===================================
// calculate_health_score
// ===================================

type CalculateHealthScoreInput struct {
	ItemID    int    `json:"item_id"`
	ScoreType string `json:"score_type"`
	ItemType  string `json:"item_type,omitempty"`
}

func newCalculateHealthScoreTool(idx *kb.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCalculateHealthScore,
			Desc: "Calculate a health score for a course or a meal. Meal scores average over the meal's courses.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"item_id": {
					Type:     "number",
					Desc:     "Course ID or meal ID depending on item_type",
					Required: true,
				},
				"score_type": {
					Type:     "string",
					Desc:     "Which score to compute",
					Enum:     []string{"fsa", "who", "combined"},
					Required: true,
				},
				"item_type": {
					Type: "string",
					Desc: "Whether item_id names a course or a meal (default: course)",
					Enum: []string{"course", "meal"},
				},
			}),
		},
		func(ctx context.Context, in *CalculateHealthScoreInput) (map[string]any, error) {
			itemType := in.ItemType
			if itemType == "" {
				itemType = "course"
			}
			return finish(idx.HealthScore(in.ItemID, in.ScoreType, itemType))
		},
	)
}

// ===================================
// swap_for_healthier
// ===================================

type SwapForHealthierInput struct {
	CourseID             int      `json:"course_id"`
	ImprovementThreshold *float64 `json:"improvement_threshold,omitempty"`
}

func newSwapForHealthierTool(idx *kb.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSwapForHealthier,
			Desc: "Find a clearly healthier alternative to a course within the same category. Reports how many candidates were checked when nothing qualifies.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"course_id": {
					Type:     "number",
					Desc:     "Course to replace",
					Required: true,
				},
				"improvement_threshold": {
					Type: "number",
					Desc: "Minimum FSA score improvement the alternative must exceed (default: 1.0)",
				},
			}),
		},
		func(ctx context.Context, in *SwapForHealthierInput) (map[string]any, error) {
			threshold := 1.0
			if in.ImprovementThreshold != nil {
				threshold = *in.ImprovementThreshold
			}
			return finish(idx.SwapForHealthier(in.CourseID, threshold))
		},
	)
}
