package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/mealrec-agent-poc/server/internal/agent/graph/tools"
	"github.com/mealrec-agent-poc/server/internal/agent/model"
)

//go:embed template/response_prompt.txt
var coreSystemPrompt string

// RenderResponseSystem renders the response system prompt and triggers prompt callbacks.
func RenderResponseSystem(ctx context.Context, config model.ResponsePromptConfig) (string, error) {
	// Render via Eino prompt component (Go template) to both format and emit callbacks
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"AssistantName":   config.AssistantName,
		"DatasetName":     config.DatasetName,
		"FilterTool":      tools.ToolFilterCourses,
		"SearchTool":      tools.ToolSearchByCategory,
		"HealthyTool":     tools.ToolFindHealthyCourses,
		"PlanTool":        tools.ToolGenerateMealPlan,
		"CompositionTool": tools.ToolGetMealComposition,
		"ScoreTool":       tools.ToolCalculateHealthScore,
		"SwapTool":        tools.ToolSwapForHealthier,
		"HistoryTool":     tools.ToolGetUserHistory,
		"SummaryTool":     tools.ToolSummarizeRecipe,
		"SimilarTool":     tools.ToolRecommendSimilarMeals,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("response prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("response prompt render: empty result")
	}
	return msgs[0].Content, nil
}
