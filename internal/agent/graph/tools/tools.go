// Package tools exposes the meal knowledge base to the conversational agent
// as eino tools, and provides the name-based dispatch registry that is the
// only boundary callers outside the package may cross: the recipe index
// itself is never handed out.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/mealrec-agent-poc/server/internal/kb"
	logx "github.com/mealrec-agent-poc/server/pkg/logger"
)

// Operation names. The set is fixed at registry construction so unknown
// names fail predictably instead of via reflection.
const (
	ToolFilterCourses         = "filter_courses"
	ToolSearchByCategory      = "search_courses_by_category"
	ToolFindHealthyCourses    = "find_healthy_courses"
	ToolGenerateMealPlan      = "generate_meal_plan"
	ToolGetMealComposition    = "get_meal_composition"
	ToolCalculateHealthScore  = "calculate_health_score"
	ToolSwapForHealthier      = "swap_for_healthier"
	ToolGetUserHistory        = "get_user_history"
	ToolSummarizeRecipe       = "summarize_recipe"
	ToolRecommendSimilarMeals = "recommend_similar_meals"
)

// Registry maps operation names to their tools. Built once over an index;
// read-only afterwards.
type Registry struct {
	tools  []tool.InvokableTool
	byName map[string]tool.InvokableTool
}

// NewRegistry builds every knowledge-base tool over the given index.
func NewRegistry(idx *kb.Index) *Registry {
	planner := kb.NewPlanner(idx, nil)

	all := []tool.InvokableTool{
		newFilterCoursesTool(idx),
		newSearchByCategoryTool(idx),
		newFindHealthyCoursesTool(idx),
		newGenerateMealPlanTool(planner),
		newGetMealCompositionTool(idx),
		newCalculateHealthScoreTool(idx),
		newSwapForHealthierTool(idx),
		newGetUserHistoryTool(idx),
		newSummarizeRecipeTool(idx),
		newRecommendSimilarMealsTool(idx),
	}

	byName := make(map[string]tool.InvokableTool, len(all))
	for _, t := range all {
		info, err := t.Info(context.Background())
		if err != nil || info == nil {
			// Static tool definitions; Info cannot fail in practice.
			continue
		}
		byName[info.Name] = t
	}

	return &Registry{tools: all, byName: byName}
}

// Tools returns the full tool set for binding to a chat model.
func (r *Registry) Tools() []tool.BaseTool {
	out := make([]tool.BaseTool, len(r.tools))
	for i, t := range r.tools {
		out[i] = t
	}
	return out
}

// ToolInfos collects the schema descriptions of every registered tool.
func (r *Registry) ToolInfos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.tools))
	for _, t := range r.tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Names lists the registered operation names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for _, t := range r.tools {
		if info, err := t.Info(context.Background()); err == nil && info != nil {
			names = append(names, info.Name)
		}
	}
	return names
}

// Has reports whether an operation name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Execute dispatches an operation by name with JSON keyword arguments and
// always returns a JSON-serializable map: either the operation's payload or
// {"error": ...}. No error ever propagates past this boundary.
func (r *Registry) Execute(ctx context.Context, name string, argsJSON string) map[string]any {
	t, ok := r.byName[name]
	if !ok {
		return map[string]any{"error": fmt.Sprintf("Unknown tool: %s", name)}
	}
	if argsJSON == "" {
		argsJSON = "{}"
	}

	out, err := t.InvokableRun(ctx, argsJSON)
	if err != nil {
		logx.Warn().Err(err).Str("tool", name).Msg("Tool execution failed")
		return map[string]any{"error": fmt.Sprintf("Tool execution failed: %v", err)}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return map[string]any{"error": fmt.Sprintf("Tool execution failed: %v", err)}
	}
	return payload
}

// errorPayload converts domain lookup and argument errors into the error
// payload the boundary contract requires. Other errors are left to fail the
// call so Execute can wrap them uniformly.
func errorPayload(err error) (map[string]any, bool) {
	var notFound *kb.NotFoundError
	var badArg *kb.ArgumentError
	if errors.As(err, &notFound) || errors.As(err, &badArg) {
		return map[string]any{"error": err.Error()}, true
	}
	return nil, false
}

// resultMap flattens any payload struct into a generic map through its JSON
// form, the shape Execute and the LLM tool channel both consume.
func resultMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// finish applies the uniform result/error conversion used by every tool.
func finish(v any, err error) (map[string]any, error) {
	if err != nil {
		if payload, ok := errorPayload(err); ok {
			return payload, nil
		}
		return nil, err
	}
	return resultMap(v)
}
