package kb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

func TestMealComposition(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	comp, err := idx.MealComposition(100)
	require.NoError(t, err)

	assert.Equal(100, comp.MealID)
	assert.Equal(3, comp.CourseCount)
	assert.Len(comp.Courses, 3)
	assert.Equal(5.33, comp.AverageScores.FSA)
	assert.Equal(6.33, comp.AverageScores.WHO)
	assert.Equal(5.83, comp.AverageScores.Combined)
	assert.Equal("very good", comp.HealthRating)

	// Course rows resolve external IDs.
	assert.Equal(1001, comp.Courses[0].CourseID)
	assert.Equal("appetizer", comp.Courses[0].Category)
}

func TestMealCompositionNotFound(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	_, err := idx.MealComposition(999)
	require.Error(t, err)
	assert.EqualError(err, "Meal 999 not found")

	var notFound *kb.NotFoundError
	assert.ErrorAs(err, &notFound)
}

func TestHealthScoreCourse(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	res, err := idx.HealthScore(1001, "fsa", "course")
	require.NoError(t, err)
	assert.Equal("course", res.ItemType)
	assert.Equal(5.0, res.Score)
	assert.Equal("very good", res.HealthRating)
	assert.Equal("appetizer", res.Category)
	assert.NotEmpty(res.CourseName)

	res, err = idx.HealthScore(2, "combined", "course")
	require.NoError(t, err)
	assert.Equal(4.5, res.Score)
}

func TestHealthScoreMealCombined(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	res, err := idx.HealthScore(100, "combined", "meal")
	require.NoError(t, err)

	assert.Equal("meal", res.ItemType)
	assert.Equal(3, res.CourseCount)
	// Mean of per-course combined scores, not a flat mean over raw values.
	assert.Equal([]float64{4.5, 4.5, 8.5}, res.IndividualScores)
	assert.Equal(5.83, res.Score)
	assert.Equal("very good", res.HealthRating)
}

func TestHealthScoreInvalidArguments(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	_, err := idx.HealthScore(1, "bogus", "course")
	assert.EqualError(err, "invalid score_type: bogus. Use fsa, who, or combined")
	var badArg *kb.ArgumentError
	assert.ErrorAs(err, &badArg)

	_, err = idx.HealthScore(1, "fsa", "bogus")
	assert.EqualError(err, "invalid item_type: bogus. Use course or meal")

	_, err = idx.HealthScore(9999, "fsa", "course")
	assert.EqualError(err, "Course 9999 not found")

	_, err = idx.HealthScore(9999, "fsa", "meal")
	assert.EqualError(err, "Meal 9999 not found")
}

func TestSwapForHealthierFindsBestAlternative(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	// Course 3 (main, fsa 8.0 default): course 2 at fsa 3.0 clears the
	// threshold with a 5.0 improvement.
	res, err := idx.SwapForHealthier(3, 1.0)
	require.NoError(t, err)

	require.NotNil(t, res.Alternative)
	assert.Equal(1002, res.Alternative.CourseID)
	assert.Equal("main", res.Category)
	assert.Equal(1, res.TotalAlternatives)
	require.NotNil(t, res.Improvement)
	assert.Equal(5.0, res.Improvement.FSAImprovement)
	assert.Equal(3.0, res.Improvement.WHOImprovement)
	assert.Empty(res.Message)
}

func TestSwapForHealthierNoAlternative(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	// Course 1 is the only appetizer.
	res, err := idx.SwapForHealthier(1001, 1.0)
	require.NoError(t, err)

	assert.Nil(res.Alternative)
	assert.Equal("No healthier alternatives found with improvement >= 1", res.Message)
	assert.Zero(res.AlternativesChecked)

	// Course 2 is already the healthiest main: course 3 does not qualify.
	res, err = idx.SwapForHealthier(2, 0.5)
	require.NoError(t, err)
	assert.Nil(res.Alternative)
	assert.Equal(1, res.AlternativesChecked)
}

func TestSwapForHealthierUnknownCourse(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	_, err := idx.SwapForHealthier(9999, 1.0)
	assert.EqualError(err, "Course 9999 not found")
}

func TestSimilarMeals(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	// Reference course 3 (main) appears only in meal 100; meal 101 holds a
	// different main.
	res, err := idx.SimilarMeals(3, 5)
	require.NoError(t, err)

	assert.Equal(3, res.ReferenceCourse.CourseID)
	assert.Equal(1, res.MealsWithReferenceCourse)
	assert.Equal(1, res.TotalFound)
	require.Len(t, res.SimilarMeals, 1)
	assert.Equal(101, res.SimilarMeals[0].MealID)
	assert.Equal(3.0, res.SimilarMeals[0].AverageHealthScore)
	assert.Equal(1, res.SimilarMeals[0].CourseCount)
}

func TestSimilarMealsExcludesOtherCategories(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	// Course 1 (appetizer) is in meal 100; meal 101 has no appetizer.
	res, err := idx.SimilarMeals(1001, 5)
	require.NoError(t, err)
	assert.Zero(res.TotalFound)
	assert.Empty(res.SimilarMeals)
}

func TestSummarize(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	sum, err := idx.Summarize(1002)
	require.NoError(t, err)

	assert.Equal(1002, sum.CourseID)
	assert.Equal("main course", sum.Category)
	assert.Equal("excellent", sum.HealthRating)
	assert.Equal(2, sum.MealAppearances)
	assert.Equal(3.0, sum.Scores.FSA)
	assert.Equal(6.0, sum.Scores.WHO)
	assert.Contains(sum.Summary, "FSA health score of 3 and WHO score of 6")
	assert.Contains(sum.Summary, "appears in 2 different meal combinations")
	assert.Contains(sum.Summary, "excellent choice for health-conscious diners")
}

func TestSummarizeQualityTiers(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	// Course 1 sits in the middle tier (fsa 5.0 <= 7).
	sum, err := idx.Summarize(1001)
	require.NoError(t, err)
	assert.Contains(sum.Summary, "good balance of taste and nutrition")

	// Course 3 (fsa 8.0) lands in the occasional-treat tier.
	sum, err = idx.Summarize(3)
	require.NoError(t, err)
	assert.Contains(sum.Summary, "occasional treat")
}

func TestUserHistory(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	res, err := idx.UserHistory(7)
	require.NoError(t, err)

	assert.Equal(3, res.TotalCourse)
	assert.Equal(1, res.TotalMeals)
	assert.Equal(33.3, res.CategoryPreferences["appetizer"])
	assert.Equal(66.7, res.CategoryPreferences["main"])
	assert.Equal(0.0, res.CategoryPreferences["dessert"])
	assert.Equal("main", res.MostPreferredCategory)
	assert.Equal(3.67, res.AverageHealthScore)
	assert.Equal("excellent", res.HealthPreference)
}

func TestUserHistoryTieBreakByEnumOrder(t *testing.T) {
	assert := assert.New(t)

	ds := testDataset()
	ds.UserCourses = []kb.Interaction{
		{UserID: 9, ItemID: 1},
		{UserID: 9, ItemID: 2},
	}
	idx := kb.BuildIndex(ds)

	res, err := idx.UserHistory(9)
	require.NoError(t, err)
	assert.Equal("appetizer", res.MostPreferredCategory)
}

func TestUserHistoryNotFound(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	_, err := idx.UserHistory(42)
	require.Error(t, err)
	assert.EqualError(err, "No history found for user 42")

	var notFound *kb.NotFoundError
	assert.ErrorAs(err, &notFound)
}
