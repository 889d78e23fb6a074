package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

type GetUserHistoryInput struct {
	UserID int `json:"user_id"`
}

func newGetUserHistoryTool(idx *kb.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetUserHistory,
			Desc: "Summarize a user's interaction history: category preference percentages, average health score, and most preferred category.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_id": {
					Type:     "number",
					Desc:     "User ID from the interaction logs",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetUserHistoryInput) (map[string]any, error) {
			return finish(idx.UserHistory(in.UserID))
		},
	)
}
