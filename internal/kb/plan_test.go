package kb_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

func TestPlanMealBalancedDefault(t *testing.T) {
	assert := assert.New(t)
	planner := kb.NewPlanner(testIndex(t), nil)

	plan := planner.PlanMeal(kb.PlanGoal{})

	assert.Equal("balanced", plan.HealthFocus)
	assert.Equal(2, plan.CoursesIncluded)
	assert.Contains(plan.Plan, "appetizer")
	assert.Contains(plan.Plan, "main")
	assert.NotContains(plan.Plan, "dessert", "empty categories are omitted, not errors")

	assert.Equal(1001, plan.Plan["appetizer"].CourseID)
	assert.Equal(1002, plan.Plan["main"].CourseID, "healthiest qualifying main wins")
	assert.Equal(4.0, plan.AverageFSAScore)
	assert.Equal(5.0, plan.AverageWHOScore)
}

func TestPlanMealFocusThresholds(t *testing.T) {
	assert := assert.New(t)
	planner := kb.NewPlanner(testIndex(t), nil)

	// weight_loss caps fsa at 5.0: the appetizer sits exactly on the bound.
	plan := planner.PlanMeal(kb.PlanGoal{HealthFocus: "weight_loss"})
	assert.Equal("weight_loss", plan.HealthFocus)
	assert.Contains(plan.Plan, "appetizer")
	assert.Equal(1002, plan.Plan["main"].CourseID)

	// Unknown focus labels fall back to the balanced threshold.
	plan = planner.PlanMeal(kb.PlanGoal{HealthFocus: "keto"})
	assert.Equal("keto", plan.HealthFocus)
	assert.Equal(2, plan.CoursesIncluded)
}

func TestPlanMealExplicitScoreOverride(t *testing.T) {
	assert := assert.New(t)
	planner := kb.NewPlanner(testIndex(t), nil)

	plan := planner.PlanMeal(kb.PlanGoal{MaxAvgHealthScore: f64(4.0)})

	assert.Equal(1, plan.CoursesIncluded)
	assert.NotContains(plan.Plan, "appetizer", "fsa 5.0 exceeds the explicit cap")
	assert.Equal(1002, plan.Plan["main"].CourseID)
	assert.Equal(3.0, plan.AverageFSAScore)
}

func TestPlanMealSkipsInvalidCategories(t *testing.T) {
	assert := assert.New(t)
	planner := kb.NewPlanner(testIndex(t), nil)

	plan := planner.PlanMeal(kb.PlanGoal{IncludeCategories: []string{"main", "soup"}})

	assert.Equal(1, plan.CoursesIncluded)
	assert.Contains(plan.Plan, "main")
	assert.NotContains(plan.Plan, "soup")
}

func TestPlanMealEmptyIndex(t *testing.T) {
	assert := assert.New(t)
	planner := kb.NewPlanner(kb.BuildIndex(&kb.Dataset{}), nil)

	plan := planner.PlanMeal(kb.PlanGoal{})

	assert.Zero(plan.CoursesIncluded)
	assert.Empty(plan.Plan)
	assert.Zero(plan.AverageFSAScore)
	assert.Zero(plan.AverageWHOScore)
}

func TestPlanMealRandomTieBreak(t *testing.T) {
	assert := assert.New(t)

	// Two appetizers tied on the combined score.
	ds := &kb.Dataset{
		Categories: map[int]kb.Category{1: kb.Appetizer, 2: kb.Appetizer},
		FSAScores:  map[int]float64{1: 4.0, 2: 4.0},
		WHOScores:  map[int]float64{1: 3.0, 2: 3.0},
	}
	idx := kb.BuildIndex(ds)

	// Deterministic planner always picks the lowest index.
	plan := kb.NewPlanner(idx, nil).PlanMeal(kb.PlanGoal{IncludeCategories: []string{"appetizer"}})
	assert.Equal(1, plan.Plan["appetizer"].CourseID)

	// A seeded source stays within the tied set.
	rng := rand.New(rand.NewSource(42))
	seen := make(map[int]bool)
	for i := 0; i < 20; i++ {
		plan := kb.NewPlanner(idx, rng).PlanMeal(kb.PlanGoal{IncludeCategories: []string{"appetizer"}})
		id := plan.Plan["appetizer"].CourseID
		assert.Contains([]int{1, 2}, id)
		seen[id] = true
	}
	assert.Len(seen, 2, "both tied candidates should eventually be chosen")
}
