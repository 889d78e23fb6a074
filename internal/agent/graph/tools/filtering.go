package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

const defaultFilterLimit = 10

// courseRow is the course listing entry shared by the filter tools.
type courseRow struct {
	CourseID   int     `json:"course_id"`
	CourseName string  `json:"course_name"`
	Category   string  `json:"category"`
	FSAScore   float64 `json:"fsa_score"`
	WHOScore   float64 `json:"who_score"`
	MealCount  int     `json:"meal_count"`
}

func toCourseRow(c kb.Course) courseRow {
	return courseRow{
		CourseID:   c.ID,
		CourseName: c.Name,
		Category:   c.Category.String(),
		FSAScore:   c.FSAScore,
		WHOScore:   c.WHOScore,
		MealCount:  c.MealCount(),
	}
}

// ===================================
// filter_courses
// ===================================

type FilterCoursesInput struct {
	Category    string   `json:"category,omitempty"`
	MaxFSAScore *float64 `json:"max_fsa_score,omitempty"`
	MaxWHOScore *float64 `json:"max_who_score,omitempty"`
	Limit       int      `json:"limit,omitempty"`
}

type FilterCoursesOutput struct {
	Courses         []courseRow        `json:"courses"`
	TotalFound      int                `json:"total_found"`
	CriteriaApplied FilterCoursesInput `json:"criteria_applied"`
}

func newFilterCoursesTool(idx *kb.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolFilterCourses,
			Desc: "Filter courses by category and/or maximum health scores. Lower FSA/WHO scores are healthier. Results are sorted healthiest first.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"category": {
					Type: "string",
					Desc: "Optional category filter: appetizer, main, or dessert",
					Enum: []string{"appetizer", "main", "dessert"},
				},
				"max_fsa_score": {
					Type: "number",
					Desc: "Optional inclusive upper bound on the FSA health score (typical range 1-15, lower is healthier)",
				},
				"max_who_score": {
					Type: "number",
					Desc: "Optional inclusive upper bound on the WHO health score",
				},
				"limit": {
					Type: "number",
					Desc: "Maximum number of results to return (default: 10)",
				},
			}),
		},
		func(ctx context.Context, in *FilterCoursesInput) (map[string]any, error) {
			criteria := kb.Criteria{
				MaxFSA: in.MaxFSAScore,
				MaxWHO: in.MaxWHOScore,
				Limit:  in.Limit,
			}
			if criteria.Limit <= 0 {
				criteria.Limit = defaultFilterLimit
			}
			if in.Category != "" {
				category, err := kb.ParseCategory(in.Category)
				if err != nil {
					return finish(nil, err)
				}
				criteria.Category = &category
			}

			matched, total := idx.Filter(criteria)
			rows := make([]courseRow, 0, len(matched))
			for _, c := range matched {
				rows = append(rows, toCourseRow(c))
			}
			return finish(&FilterCoursesOutput{
				Courses:         rows,
				TotalFound:      total,
				CriteriaApplied: *in,
			}, nil)
		},
	)
}

// ===================================
// search_courses_by_category
// ===================================

type SearchByCategoryInput struct {
	Category string `json:"category"`
	Limit    int    `json:"limit,omitempty"`
}

type SearchByCategoryOutput struct {
	Category       string      `json:"category"`
	Courses        []courseRow `json:"courses"`
	TotalAvailable int         `json:"total_available"`
	Showing        int         `json:"showing"`
}

func newSearchByCategoryTool(idx *kb.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchByCategory,
			Desc: "List the courses of one category (appetizer, main, dessert), sorted healthiest first.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"category": {
					Type:     "string",
					Desc:     "Category to search: appetizer, main, or dessert",
					Enum:     []string{"appetizer", "main", "dessert"},
					Required: true,
				},
				"limit": {
					Type: "number",
					Desc: "Maximum number of results to return (default: 10)",
				},
			}),
		},
		func(ctx context.Context, in *SearchByCategoryInput) (map[string]any, error) {
			category, err := kb.ParseCategory(in.Category)
			if err != nil {
				return finish(nil, err)
			}
			limit := in.Limit
			if limit <= 0 {
				limit = defaultFilterLimit
			}

			courses := idx.CoursesByCategory(category)
			total := len(courses)
			if len(courses) > limit {
				courses = courses[:limit]
			}
			rows := make([]courseRow, 0, len(courses))
			for _, c := range courses {
				rows = append(rows, toCourseRow(c))
			}
			return finish(&SearchByCategoryOutput{
				Category:       in.Category,
				Courses:        rows,
				TotalAvailable: total,
				Showing:        len(rows),
			}, nil)
		},
	)
}

// ===================================
// find_healthy_courses
// ===================================

type FindHealthyCoursesInput struct {
	MaxFSAScore float64 `json:"max_fsa_score"`
	Category    string  `json:"category,omitempty"`
	Limit       int     `json:"limit,omitempty"`
}

type healthyCourseRow struct {
	courseRow
	CombinedScore float64 `json:"combined_score"`
}

type FindHealthyCoursesOutput struct {
	Criteria   FindHealthyCoursesInput `json:"criteria"`
	Courses    []healthyCourseRow      `json:"courses"`
	TotalFound int                     `json:"total_found"`
	Showing    int                     `json:"showing"`
}

func newFindHealthyCoursesTool(idx *kb.Index) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolFindHealthyCourses,
			Desc: "Find the healthiest courses under an FSA score bound, optionally within one category. Lower scores are healthier.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"max_fsa_score": {
					Type:     "number",
					Desc:     "Inclusive maximum FSA health score (typical range 1-15, lower is healthier)",
					Required: true,
				},
				"category": {
					Type: "string",
					Desc: "Optional category filter: appetizer, main, or dessert",
					Enum: []string{"appetizer", "main", "dessert"},
				},
				"limit": {
					Type: "number",
					Desc: "Maximum number of results to return (default: 10)",
				},
			}),
		},
		func(ctx context.Context, in *FindHealthyCoursesInput) (map[string]any, error) {
			criteria := kb.Criteria{MaxFSA: &in.MaxFSAScore, Limit: in.Limit}
			if criteria.Limit <= 0 {
				criteria.Limit = defaultFilterLimit
			}
			if in.Category != "" {
				category, err := kb.ParseCategory(in.Category)
				if err != nil {
					return finish(nil, err)
				}
				criteria.Category = &category
			}

			matched, total := idx.Filter(criteria)
			rows := make([]healthyCourseRow, 0, len(matched))
			for _, c := range matched {
				rows = append(rows, healthyCourseRow{
					courseRow:     toCourseRow(c),
					CombinedScore: c.CombinedSort(),
				})
			}
			return finish(&FindHealthyCoursesOutput{
				Criteria:   *in,
				Courses:    rows,
				TotalFound: total,
				Showing:    len(rows),
			}, nil)
		},
	)
}
