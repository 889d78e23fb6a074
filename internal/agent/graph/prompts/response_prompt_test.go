package prompts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealrec-agent-poc/server/internal/agent/graph/prompts"
	"github.com/mealrec-agent-poc/server/internal/agent/graph/tools"
	"github.com/mealrec-agent-poc/server/internal/agent/model"
)

func TestRenderResponseSystem(t *testing.T) {
	assert := assert.New(t)

	cfg := model.ResponsePromptConfig{
		AssistantName: "MealRec Assistant",
		DatasetName:   "MealRec+",
	}

	out, err := prompts.RenderResponseSystem(context.Background(), cfg)
	require.NoError(t, err)

	assert.Contains(out, "MealRec Assistant")
	assert.Contains(out, "MealRec+")
	assert.Contains(out, tools.ToolFilterCourses)
	assert.Contains(out, tools.ToolGenerateMealPlan)
	assert.Contains(out, tools.ToolRecommendSimilarMeals)
	assert.NotContains(out, "{{", "all template variables must be substituted")
}
