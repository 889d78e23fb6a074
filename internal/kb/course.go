package kb

import "fmt"

// Category classifies a course within a meal. The MealRec+ dataset encodes
// categories as small integers; the string forms are what the tool surface
// and the LLM see.
type Category int

const (
	Appetizer Category = iota
	Main
	Dessert
)

// Categories lists all valid categories in enumeration order. Tie-breaks in
// preference analysis follow this order.
var Categories = []Category{Appetizer, Main, Dessert}

func (c Category) String() string {
	switch c {
	case Appetizer:
		return "appetizer"
	case Main:
		return "main"
	case Dessert:
		return "dessert"
	default:
		return "unknown"
	}
}

// DisplayName is the long form used in generated summaries.
func (c Category) DisplayName() string {
	if c == Main {
		return "main course"
	}
	return c.String()
}

// Valid reports whether the category is one of the three known values.
func (c Category) Valid() bool {
	return c >= Appetizer && c <= Dessert
}

// ParseCategory converts the string form to a Category. Unknown values yield
// an error naming the accepted set so the boundary can report it verbatim.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "appetizer":
		return Appetizer, nil
	case "main":
		return Main, nil
	case "dessert":
		return Dessert, nil
	default:
		return 0, fmt.Errorf("invalid category: %s. Use appetizer, main, or dessert", s)
	}
}

// Default health scores used when a course is missing from a score file.
// These are documented dataset conventions, not measurements: a defaulted
// course still participates in aggregates.
const (
	DefaultFSAScore = 8.0
	DefaultWHOScore = 7.0
)

// Course is one recipe-like unit joined from the dataset tables. Instances
// are built once by BuildIndex and never mutated afterwards.
type Course struct {
	// Index is the dense internal ID (position in the dataset).
	Index int `json:"course_index"`
	// ID is the external course ID from course2index.txt, falling back to
	// Index when the mapping has no entry.
	ID int `json:"course_id"`
	// Name is a display label only; the dataset carries no recipe text.
	Name     string   `json:"course_name"`
	Category Category `json:"category"`
	// FSAScore and WHOScore are healthiness metrics where lower is better,
	// domain roughly 1-15.
	FSAScore float64 `json:"fsa_score"`
	WHOScore float64 `json:"who_score"`
	// ScoredFSA/ScoredWHO record whether the score came from the dataset or
	// is the documented default.
	ScoredFSA bool `json:"-"`
	ScoredWHO bool `json:"-"`
	// MealIDs lists every meal whose course list contains this course.
	MealIDs []int `json:"-"`
}

// CombinedSort is the composite ordering metric every "top" and "best"
// operation uses: ascending fsa+who, lower is healthier.
func (c Course) CombinedSort() float64 {
	return c.FSAScore + c.WHOScore
}

// CombinedScore is the arithmetic mean of the two metrics, the "combined"
// score type exposed by calculate_health_score.
func (c Course) CombinedScore() float64 {
	return (c.FSAScore + c.WHOScore) / 2
}

// MealCount reports how many meals include this course.
func (c Course) MealCount() int {
	return len(c.MealIDs)
}

// HealthRating maps a score to the qualitative label shared by every
// operation that renders one. Band boundaries are user-visible text.
func HealthRating(score float64) string {
	switch {
	case score <= 4:
		return "excellent"
	case score <= 6:
		return "very good"
	case score <= 8:
		return "good"
	case score <= 10:
		return "fair"
	default:
		return "poor"
	}
}

// Popularity buckets a meal-appearance count for recipe summaries.
func Popularity(mealCount int) string {
	switch {
	case mealCount > 10:
		return "very popular"
	case mealCount > 5:
		return "popular"
	default:
		return "moderate"
	}
}
