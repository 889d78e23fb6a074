package kb

import (
	"fmt"
	"sort"

	logx "github.com/mealrec-agent-poc/server/pkg/logger"
)

// Display-name templates cycled per category. The dataset carries no recipe
// text, so names are labels for demo output, nothing more.
var nameTemplates = map[Category][]string{
	Appetizer: {
		"Mediterranean Bruschetta", "Spinach Artichoke Dip", "Stuffed Mushrooms",
		"Caprese Skewers", "Hummus Platter", "Caesar Salad", "Soup of the Day",
	},
	Main: {
		"Grilled Herb Chicken", "Pan-Seared Salmon", "Vegetarian Pasta Primavera",
		"Lean Beef Stir Fry", "Mediterranean Tofu Bowl", "Baked Cod with Vegetables",
		"Quinoa Power Bowl", "Turkey Meatballs", "Vegetable Curry",
	},
	Dessert: {
		"Mixed Berry Fruit Salad", "Dark Chocolate Avocado Mousse",
		"Greek Yogurt Parfait", "Baked Cinnamon Apple", "Chia Seed Pudding",
		"Fresh Fruit Tart", "Coconut Rice Pudding",
	},
}

// Index is the in-memory join of the dataset tables: one Course per entry in
// the category table plus precomputed lookup maps. It is built once and
// treated as immutable; every query method is a pure read, so the Index is
// safe to share across goroutines without locking.
type Index struct {
	courses     map[int]*Course
	mealCourses map[int][]int
	indexByID   map[int]int
	idByIndex   map[int]int
	userCourses []Interaction
	userMeals   map[string][]Interaction
}

// BuildIndex joins the dataset tables into the unified course index. The
// build is deterministic and idempotent for a given dataset. Courses absent
// from the category table are invisible to every downstream operation.
func BuildIndex(ds *Dataset) *Index {
	idx := &Index{
		courses:     make(map[int]*Course, len(ds.Categories)),
		mealCourses: ds.MealCourses,
		indexByID:   make(map[int]int, len(ds.CourseToIndex)),
		idByIndex:   make(map[int]int, len(ds.CourseToIndex)),
		userCourses: ds.UserCourses,
		userMeals:   ds.UserMeals,
	}

	// Both directions of the ID mapping come from the same immutable file,
	// so building them together keeps them consistent with O(1) lookups.
	for id, courseIdx := range ds.CourseToIndex {
		idx.indexByID[id] = courseIdx
		idx.idByIndex[courseIdx] = id
	}

	// Reverse meal affiliations with a single pass over the meal table
	// rather than one scan per course.
	affiliations := make(map[int][]int)
	mealIDs := sortedKeys(ds.MealCourses)
	for _, mealID := range mealIDs {
		for _, courseIdx := range ds.MealCourses[mealID] {
			affiliations[courseIdx] = append(affiliations[courseIdx], mealID)
		}
	}

	// Assign display names in ascending index order so builds are
	// reproducible regardless of map iteration order.
	counters := make(map[Category]int, len(nameTemplates))
	for _, courseIdx := range sortedKeys(ds.Categories) {
		category := ds.Categories[courseIdx]

		name := ""
		if templates, ok := nameTemplates[category]; ok {
			name = templates[counters[category]%len(templates)]
			counters[category]++
		}

		id, hasID := idx.idByIndex[courseIdx]
		if !hasID {
			id = courseIdx
		}
		if name == "" {
			name = fmt.Sprintf("Course_%d", id)
		}

		fsa, scoredFSA := ds.FSAScores[courseIdx]
		if !scoredFSA {
			fsa = DefaultFSAScore
		}
		who, scoredWHO := ds.WHOScores[courseIdx]
		if !scoredWHO {
			who = DefaultWHOScore
		}

		idx.courses[courseIdx] = &Course{
			Index:     courseIdx,
			ID:        id,
			Name:      name,
			Category:  category,
			FSAScore:  fsa,
			WHOScore:  who,
			ScoredFSA: scoredFSA,
			ScoredWHO: scoredWHO,
			MealIDs:   affiliations[courseIdx],
		}
	}

	logx.Info().
		Int("courses", len(idx.courses)).
		Int("meals", len(idx.mealCourses)).
		Msg("Recipe index built")

	return idx
}

// Course returns the course at the internal index.
func (idx *Index) Course(courseIdx int) (Course, bool) {
	c, ok := idx.courses[courseIdx]
	if !ok {
		return Course{}, false
	}
	return *c, true
}

// ResolveCourse accepts either an external course ID or an internal index,
// the way the original tool surface did: the external mapping is consulted
// first, then the value is treated as an index.
func (idx *Index) ResolveCourse(id int) (Course, bool) {
	if courseIdx, ok := idx.indexByID[id]; ok {
		return idx.Course(courseIdx)
	}
	return idx.Course(id)
}

// ExternalID maps an internal index back to its external course ID, falling
// back to the index itself when the mapping has no entry.
func (idx *Index) ExternalID(courseIdx int) int {
	if id, ok := idx.idByIndex[courseIdx]; ok {
		return id
	}
	return courseIdx
}

// IndexForID maps an external course ID to the internal index.
func (idx *Index) IndexForID(courseID int) (int, bool) {
	courseIdx, ok := idx.indexByID[courseID]
	return courseIdx, ok
}

// Meal returns the course-index list for a meal ID.
func (idx *Index) Meal(mealID int) ([]int, bool) {
	courses, ok := idx.mealCourses[mealID]
	return courses, ok
}

// MealIDs returns all known meal IDs in ascending order.
func (idx *Index) MealIDs() []int {
	return sortedKeys(idx.mealCourses)
}

// Len reports the number of indexed courses.
func (idx *Index) Len() int {
	return len(idx.courses)
}

// all returns every course sorted ascending by internal index, the stable
// base order the filter engine starts from.
func (idx *Index) all() []Course {
	courses := make([]Course, 0, len(idx.courses))
	for _, courseIdx := range sortedKeys(idx.courses) {
		courses = append(courses, *idx.courses[courseIdx])
	}
	return courses
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
