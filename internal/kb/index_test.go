package kb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

// testDataset builds the in-memory table set used across the index, query,
// and operation tests. Course 1 is an appetizer, courses 2 and 3 are mains;
// course 3 carries no fsa score so the documented default applies.
func testDataset() *kb.Dataset {
	return &kb.Dataset{
		Categories: map[int]kb.Category{
			1: kb.Appetizer,
			2: kb.Main,
			3: kb.Main,
		},
		FSAScores: map[int]float64{1: 5.0, 2: 3.0},
		WHOScores: map[int]float64{1: 4.0, 2: 6.0, 3: 9.0},
		MealCourses: map[int][]int{
			100: {1, 2, 3},
			101: {2},
		},
		CourseToIndex: map[int]int{1001: 1, 1002: 2},
		UserCourses: []kb.Interaction{
			{UserID: 7, ItemID: 1},
			{UserID: 7, ItemID: 2},
			{UserID: 7, ItemID: 2},
		},
		UserMeals: map[string][]kb.Interaction{
			"train": {{UserID: 7, ItemID: 100}},
			"test":  {},
			"tune":  {},
		},
	}
}

func testIndex(t *testing.T) *kb.Index {
	t.Helper()
	idx := kb.BuildIndex(testDataset())
	require.NotNil(t, idx)
	return idx
}

func TestBuildIndexScoresAndDefaults(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	c1, ok := idx.Course(1)
	assert.True(ok)
	assert.Equal(5.0, c1.FSAScore)
	assert.Equal(4.0, c1.WHOScore)
	assert.True(c1.ScoredFSA)
	assert.True(c1.ScoredWHO)

	c3, ok := idx.Course(3)
	assert.True(ok)
	assert.Equal(kb.DefaultFSAScore, c3.FSAScore, "missing fsa score uses the default")
	assert.Equal(9.0, c3.WHOScore)
	assert.False(c3.ScoredFSA)
	assert.True(c3.ScoredWHO)
}

func TestBuildIndexMealAffiliations(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	c2, ok := idx.Course(2)
	assert.True(ok)
	assert.Equal([]int{100, 101}, c2.MealIDs)
	assert.Equal(2, c2.MealCount())

	c1, _ := idx.Course(1)
	assert.Equal([]int{100}, c1.MealIDs)
}

func TestExternalIDRoundTrip(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	// Mapped course: external ID resolves first.
	c, ok := idx.ResolveCourse(1001)
	assert.True(ok)
	assert.Equal(1, c.Index)
	assert.Equal(1001, c.ID)
	assert.Equal(1001, idx.ExternalID(1))

	gotIdx, ok := idx.IndexForID(1002)
	assert.True(ok)
	assert.Equal(2, gotIdx)

	// Unmapped course falls back to the index itself.
	c3, ok := idx.ResolveCourse(3)
	assert.True(ok)
	assert.Equal(3, c3.ID)
	assert.Equal(3, idx.ExternalID(3))

	_, ok = idx.ResolveCourse(9999)
	assert.False(ok)
}

func TestBuildIndexDeterministicNames(t *testing.T) {
	assert := assert.New(t)

	first := kb.BuildIndex(testDataset())
	second := kb.BuildIndex(testDataset())

	for _, courseIdx := range []int{1, 2, 3} {
		a, _ := first.Course(courseIdx)
		b, _ := second.Course(courseIdx)
		assert.Equal(a.Name, b.Name, "names must be stable across builds")
		assert.NotEmpty(a.Name)
	}

	// Same-category courses in index order receive distinct template names.
	c2, _ := first.Course(2)
	c3, _ := first.Course(3)
	assert.NotEqual(c2.Name, c3.Name)
}

func TestBuildIndexUnknownCategoryFallbackName(t *testing.T) {
	assert := assert.New(t)

	ds := testDataset()
	ds.Categories[4] = kb.Category(7)
	idx := kb.BuildIndex(ds)

	c, ok := idx.Course(4)
	assert.True(ok)
	assert.Equal("Course_4", c.Name)
	assert.False(c.Category.Valid())
}

func TestMealLookups(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	courses, ok := idx.Meal(100)
	assert.True(ok)
	assert.Equal([]int{1, 2, 3}, courses)

	_, ok = idx.Meal(999)
	assert.False(ok)

	assert.Equal([]int{100, 101}, idx.MealIDs())
	assert.Equal(3, idx.Len())
}

func TestParseCategory(t *testing.T) {
	assert := assert.New(t)

	for name, want := range map[string]kb.Category{
		"appetizer": kb.Appetizer,
		"main":      kb.Main,
		"dessert":   kb.Dessert,
	} {
		got, err := kb.ParseCategory(name)
		assert.NoError(err)
		assert.Equal(want, got)
		assert.Equal(name, got.String())
	}

	_, err := kb.ParseCategory("soup")
	assert.EqualError(err, "invalid category: soup. Use appetizer, main, or dessert")
}

func TestHealthRatingBands(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("excellent", kb.HealthRating(4.0))
	assert.Equal("very good", kb.HealthRating(5.5))
	assert.Equal("good", kb.HealthRating(8.0))
	assert.Equal("fair", kb.HealthRating(9.9))
	assert.Equal("poor", kb.HealthRating(10.1))
}

func TestPopularityBands(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("very popular", kb.Popularity(11))
	assert.Equal("popular", kb.Popularity(6))
	assert.Equal("moderate", kb.Popularity(5))
	assert.Equal("moderate", kb.Popularity(0))
}
