package kb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

func f64(v float64) *float64 { return &v }

func catPtr(c kb.Category) *kb.Category { return &c }

func TestFilterByMaxFSA(t *testing.T) {
	assert := assert.New(t)

	// No WHO table: every course carries the default WHO score, so ordering
	// is driven purely by fsa.
	idx := kb.BuildIndex(&kb.Dataset{
		Categories: map[int]kb.Category{
			1: kb.Appetizer,
			2: kb.Main,
			3: kb.Main,
		},
		FSAScores: map[int]float64{1: 5.0, 2: 3.0, 3: 9.0},
	})

	matched, total := idx.Filter(kb.Criteria{MaxFSA: f64(6.0)})

	assert.Equal(2, total)
	if assert.Len(matched, 2) {
		assert.Equal(2, matched[0].Index, "lowest combined score first")
		assert.Equal(3.0+kb.DefaultWHOScore, matched[0].CombinedSort())
		assert.Equal(1, matched[1].Index)
		assert.Equal(5.0+kb.DefaultWHOScore, matched[1].CombinedSort())
	}
}

func TestFilterCombinesBounds(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	// Category + WHO bound together: only course 1 is an appetizer, and its
	// who score 4.0 passes the inclusive bound.
	matched, total := idx.Filter(kb.Criteria{
		Category: catPtr(kb.Appetizer),
		MaxWHO:   f64(4.0),
	})
	assert.Equal(1, total)
	if assert.Len(matched, 1) {
		assert.Equal(1, matched[0].Index)
	}

	// The bound is inclusive, so tightening below the score excludes it.
	matched, total = idx.Filter(kb.Criteria{
		Category: catPtr(kb.Appetizer),
		MaxWHO:   f64(3.9),
	})
	assert.Zero(total)
	assert.Empty(matched)
}

func TestFilterTruncatesAfterSorting(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	matched, total := idx.Filter(kb.Criteria{Limit: 1})

	assert.Equal(3, total, "total reflects matches before truncation")
	if assert.Len(matched, 1) {
		// Courses 1 and 2 tie on combined score 9; the lower index wins.
		assert.Equal(1, matched[0].Index)
	}
}

func TestFilterTieBreakByIndex(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	matched, _ := idx.Filter(kb.Criteria{})
	if assert.Len(matched, 3) {
		assert.Equal([]int{1, 2, 3}, []int{matched[0].Index, matched[1].Index, matched[2].Index})
	}
}

func TestCoursesByCategory(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	mains := idx.CoursesByCategory(kb.Main)
	if assert.Len(mains, 2) {
		assert.Equal(2, mains[0].Index, "healthier main first")
		assert.Equal(3, mains[1].Index)
	}

	assert.Empty(idx.CoursesByCategory(kb.Dessert))
}

func TestFilterReturnsCopies(t *testing.T) {
	assert := assert.New(t)
	idx := testIndex(t)

	matched, _ := idx.Filter(kb.Criteria{})
	matched[0].FSAScore = -1

	again, _ := idx.Filter(kb.Criteria{})
	assert.NotEqual(-1.0, again[0].FSAScore, "mutating results must not touch the index")
}
