package kb

import (
	"math/rand"
)

// Health-focus vocabulary with its fsa thresholds. Unknown labels fall back
// to the balanced threshold like the original dataset demos did.
var focusThresholds = map[string]float64{
	"weight_loss":   5.0,
	"heart_healthy": 6.0,
	"balanced":      8.0,
	"low_sodium":    7.0,
}

const defaultFocusThreshold = 8.0

// PlanGoal describes what a generated meal plan should satisfy.
type PlanGoal struct {
	// HealthFocus selects an fsa threshold; see focusThresholds.
	HealthFocus string
	// MaxAvgHealthScore overrides the focus threshold when set.
	MaxAvgHealthScore *float64
	// IncludeCategories lists the category names to fill. Empty means the
	// full appetizer/main/dessert spread.
	IncludeCategories []string
}

// PlanCourse is one selected course of a meal plan.
type PlanCourse struct {
	CourseID   int     `json:"course_id"`
	CourseName string  `json:"course_name"`
	FSAScore   float64 `json:"fsa_score"`
	WHOScore   float64 `json:"who_score"`
	Category   string  `json:"category"`
}

// MealPlan is the generated plan: one course per filled category.
// Categories with no qualifying course are omitted, not errors.
type MealPlan struct {
	Plan            map[string]PlanCourse `json:"meal_plan"`
	HealthFocus     string                `json:"health_focus"`
	AverageFSAScore float64               `json:"average_fsa_score"`
	AverageWHOScore float64               `json:"average_who_score"`
	CoursesIncluded int                   `json:"courses_included"`
}

// Planner generates meal plans over an index. A nil random source makes the
// plan fully deterministic (lowest course index wins exact score ties); a
// provided source picks randomly among equally-healthy candidates, which is
// why the source is injected rather than global.
type Planner struct {
	idx *Index
	rng *rand.Rand
}

// NewPlanner returns a planner over the index. rng may be nil for the
// deterministic variant.
func NewPlanner(idx *Index, rng *rand.Rand) *Planner {
	return &Planner{idx: idx, rng: rng}
}

// PlanMeal independently picks the best-scoring course per requested
// category under the goal's fsa threshold and reports averages over the
// filled categories only.
func (p *Planner) PlanMeal(goal PlanGoal) *MealPlan {
	focus := goal.HealthFocus
	if focus == "" {
		focus = "balanced"
	}
	maxScore, ok := focusThresholds[focus]
	if !ok {
		maxScore = defaultFocusThreshold
	}
	if goal.MaxAvgHealthScore != nil {
		maxScore = *goal.MaxAvgHealthScore
	}

	include := goal.IncludeCategories
	if len(include) == 0 {
		include = []string{"appetizer", "main", "dessert"}
	}

	plan := make(map[string]PlanCourse)
	var totalFSA, totalWHO float64
	for _, name := range include {
		category, err := ParseCategory(name)
		if err != nil {
			continue
		}
		best, found := p.bestInCategory(category, maxScore)
		if !found {
			continue
		}
		plan[name] = PlanCourse{
			CourseID:   best.ID,
			CourseName: best.Name,
			FSAScore:   best.FSAScore,
			WHOScore:   best.WHOScore,
			Category:   name,
		}
		totalFSA += best.FSAScore
		totalWHO += best.WHOScore
	}

	var avgFSA, avgWHO float64
	if len(plan) > 0 {
		avgFSA = totalFSA / float64(len(plan))
		avgWHO = totalWHO / float64(len(plan))
	}

	return &MealPlan{
		Plan:            plan,
		HealthFocus:     focus,
		AverageFSAScore: round2(avgFSA),
		AverageWHOScore: round2(avgWHO),
		CoursesIncluded: len(plan),
	}
}

// bestInCategory returns the single best course of the category whose fsa
// score is at or under maxScore, per the canonical composite sort. With a
// random source, one of the courses tied for the best combined score is
// chosen instead of always the lowest index.
func (p *Planner) bestInCategory(category Category, maxScore float64) (Course, bool) {
	candidates, _ := p.idx.Filter(Criteria{Category: &category, MaxFSA: &maxScore})
	if len(candidates) == 0 {
		return Course{}, false
	}
	if p.rng == nil {
		return candidates[0], true
	}

	tied := 1
	for tied < len(candidates) && candidates[tied].CombinedSort() == candidates[0].CombinedSort() {
		tied++
	}
	return candidates[p.rng.Intn(tied)], true
}
