package kb

import (
	"fmt"
	"math"
	"sort"
)

// NotFoundError reports an unknown course, meal, or user. The tool boundary
// renders it verbatim as an error payload instead of failing the call.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

func notFound(format string, args ...any) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// ArgumentError reports an invalid enum argument, naming the value and the
// accepted set.
type ArgumentError struct {
	msg string
}

func (e *ArgumentError) Error() string { return e.msg }

func badArgument(format string, args ...any) error {
	return &ArgumentError{msg: fmt.Sprintf(format, args...)}
}

// CourseRef is the course row embedded in operation payloads.
type CourseRef struct {
	CourseID   int     `json:"course_id"`
	CourseName string  `json:"course_name"`
	Category   string  `json:"category"`
	FSAScore   float64 `json:"fsa_score"`
	WHOScore   float64 `json:"who_score"`
}

func courseRef(c Course) CourseRef {
	return CourseRef{
		CourseID:   c.ID,
		CourseName: c.Name,
		Category:   c.Category.String(),
		FSAScore:   c.FSAScore,
		WHOScore:   c.WHOScore,
	}
}

// ScoreAverages carries the per-meal score means, rounded to 2 decimals.
type ScoreAverages struct {
	FSA      float64 `json:"fsa"`
	WHO      float64 `json:"who"`
	Combined float64 `json:"combined"`
}

// MealComposition is the resolved course list of one meal.
type MealComposition struct {
	MealID        int           `json:"meal_id"`
	Courses       []CourseRef   `json:"courses"`
	CourseCount   int           `json:"course_count"`
	AverageScores ScoreAverages `json:"average_scores"`
	HealthRating  string        `json:"health_rating"`
}

// MealComposition resolves a meal to its full course records plus score
// averages. An unknown meal is a not-found error: "meal does not exist" is
// distinct from "meal has no resolvable courses".
func (idx *Index) MealComposition(mealID int) (*MealComposition, error) {
	courseIndices, ok := idx.Meal(mealID)
	if !ok {
		return nil, notFound("Meal %d not found", mealID)
	}

	var courses []CourseRef
	var totalFSA, totalWHO float64
	for _, courseIdx := range courseIndices {
		course, ok := idx.Course(courseIdx)
		if !ok {
			continue
		}
		courses = append(courses, courseRef(course))
		totalFSA += course.FSAScore
		totalWHO += course.WHOScore
	}

	var avgFSA, avgWHO float64
	if len(courses) > 0 {
		avgFSA = totalFSA / float64(len(courses))
		avgWHO = totalWHO / float64(len(courses))
	}

	return &MealComposition{
		MealID:      mealID,
		Courses:     courses,
		CourseCount: len(courses),
		AverageScores: ScoreAverages{
			FSA:      round2(avgFSA),
			WHO:      round2(avgWHO),
			Combined: round2((avgFSA + avgWHO) / 2),
		},
		HealthRating: HealthRating(avgFSA),
	}, nil
}

// HealthScoreResult is the outcome of a single-course or per-meal score
// calculation.
type HealthScoreResult struct {
	ItemID       int     `json:"item_id"`
	ItemType     string  `json:"item_type"`
	ScoreType    string  `json:"score_type"`
	Score        float64 `json:"score"`
	HealthRating string  `json:"health_rating"`

	// Course fields.
	CourseName string `json:"course_name,omitempty"`
	Category   string `json:"category,omitempty"`

	// Meal fields.
	CourseCount      int       `json:"course_count,omitempty"`
	IndividualScores []float64 `json:"individual_scores,omitempty"`
}

// HealthScore computes the requested score for a course or a meal.
// scoreType is one of fsa, who, combined; itemType is course or meal. For
// meal+combined the result is the mean of each course's own combined score,
// not a flattened mean over all raw values.
func (idx *Index) HealthScore(itemID int, scoreType, itemType string) (*HealthScoreResult, error) {
	switch itemType {
	case "course":
		course, ok := idx.ResolveCourse(itemID)
		if !ok {
			return nil, notFound("Course %d not found", itemID)
		}
		score, err := scoreOf(course, scoreType)
		if err != nil {
			return nil, err
		}
		return &HealthScoreResult{
			ItemID:       itemID,
			ItemType:     "course",
			ScoreType:    scoreType,
			Score:        score,
			HealthRating: HealthRating(score),
			CourseName:   course.Name,
			Category:     course.Category.String(),
		}, nil

	case "meal":
		courseIndices, ok := idx.Meal(itemID)
		if !ok {
			return nil, notFound("Meal %d not found", itemID)
		}
		var scores []float64
		for _, courseIdx := range courseIndices {
			course, ok := idx.Course(courseIdx)
			if !ok {
				continue
			}
			score, err := scoreOf(course, scoreType)
			if err != nil {
				return nil, err
			}
			scores = append(scores, score)
		}
		if len(scores) == 0 {
			return nil, notFound("No valid courses found for meal %d", itemID)
		}
		var sum float64
		for _, s := range scores {
			sum += s
		}
		avg := sum / float64(len(scores))
		return &HealthScoreResult{
			ItemID:           itemID,
			ItemType:         "meal",
			ScoreType:        scoreType,
			Score:            round2(avg),
			HealthRating:     HealthRating(avg),
			CourseCount:      len(scores),
			IndividualScores: scores,
		}, nil

	default:
		return nil, badArgument("invalid item_type: %s. Use course or meal", itemType)
	}
}

func scoreOf(c Course, scoreType string) (float64, error) {
	switch scoreType {
	case "fsa":
		return c.FSAScore, nil
	case "who":
		return c.WHOScore, nil
	case "combined":
		return c.CombinedScore(), nil
	default:
		return 0, badArgument("invalid score_type: %s. Use fsa, who, or combined", scoreType)
	}
}

// Improvement quantifies how much healthier the suggested swap is.
type Improvement struct {
	FSAImprovement float64 `json:"fsa_improvement"`
	WHOImprovement float64 `json:"who_improvement"`
}

// SwapResult reports either a healthier same-category alternative or, when
// no candidate clears the threshold, how many were examined.
type SwapResult struct {
	OriginalCourse CourseRef    `json:"original_course"`
	Alternative    *CourseRef   `json:"healthier_alternative,omitempty"`
	Improvement    *Improvement `json:"improvement,omitempty"`
	Category       string       `json:"category,omitempty"`
	// TotalAlternatives counts every candidate that cleared the threshold.
	TotalAlternatives int `json:"total_alternatives,omitempty"`

	// No-alternative fields.
	Message             string `json:"message,omitempty"`
	AlternativesChecked int    `json:"alternatives_checked,omitempty"`
}

// SwapForHealthier searches the other courses of the same category for one
// whose fsa score is strictly below original-threshold and returns the
// candidate with the largest improvement. Finding nothing is a normal
// outcome, not an error.
func (idx *Index) SwapForHealthier(courseID int, threshold float64) (*SwapResult, error) {
	original, ok := idx.ResolveCourse(courseID)
	if !ok {
		return nil, notFound("Course %d not found", courseID)
	}

	var best *Course
	var bestImprovement float64
	total := 0
	sameCategory := 0
	for _, candidate := range idx.all() {
		if candidate.Category != original.Category || candidate.Index == original.Index {
			continue
		}
		sameCategory++
		if candidate.FSAScore >= original.FSAScore-threshold {
			continue
		}
		improvement := original.FSAScore - candidate.FSAScore
		total++
		// Strict > keeps the lowest-index winner among exact ties.
		if best == nil || improvement > bestImprovement {
			c := candidate
			best = &c
			bestImprovement = improvement
		}
	}

	if best == nil {
		return &SwapResult{
			OriginalCourse:      courseRef(original),
			Message:             fmt.Sprintf("No healthier alternatives found with improvement >= %g", threshold),
			AlternativesChecked: sameCategory,
		}, nil
	}

	alt := courseRef(*best)
	return &SwapResult{
		OriginalCourse: courseRef(original),
		Alternative:    &alt,
		Improvement: &Improvement{
			FSAImprovement: round2(bestImprovement),
			WHOImprovement: round2(original.WHOScore - best.WHOScore),
		},
		Category:          original.Category.String(),
		TotalAlternatives: total,
	}, nil
}

// SimilarMeal is one candidate in a similar-meals recommendation.
type SimilarMeal struct {
	MealID             int         `json:"meal_id"`
	CourseCount        int         `json:"course_count"`
	AverageHealthScore float64     `json:"average_health_score"`
	Courses            []CourseRef `json:"courses"`
}

// SimilarMealsResult carries the ranked candidates plus the context counts
// the caller may want to surface.
type SimilarMealsResult struct {
	ReferenceCourse          CourseRef     `json:"reference_course"`
	SimilarMeals             []SimilarMeal `json:"similar_meals"`
	TotalFound               int           `json:"total_found"`
	MealsWithReferenceCourse int           `json:"meals_with_reference_course"`
}

// SimilarMeals finds meals that do not contain the reference course but hold
// at least one course of the same category, ranked by mean fsa ascending.
func (idx *Index) SimilarMeals(courseID int, limit int) (*SimilarMealsResult, error) {
	reference, ok := idx.ResolveCourse(courseID)
	if !ok {
		return nil, notFound("Course %d not found", courseID)
	}

	containsReference := make(map[int]bool, len(reference.MealIDs))
	for _, mealID := range reference.MealIDs {
		containsReference[mealID] = true
	}

	var candidates []SimilarMeal
	for _, mealID := range idx.MealIDs() {
		if containsReference[mealID] {
			continue
		}
		courseIndices, _ := idx.Meal(mealID)

		sameCategory := false
		var scoreSum float64
		var scored int
		var courses []CourseRef
		for _, courseIdx := range courseIndices {
			course, ok := idx.Course(courseIdx)
			if !ok {
				continue
			}
			if course.Category == reference.Category {
				sameCategory = true
			}
			scoreSum += course.FSAScore
			scored++
			courses = append(courses, courseRef(course))
		}
		if !sameCategory {
			continue
		}

		avg := 10.0
		if scored > 0 {
			avg = scoreSum / float64(scored)
		}
		candidates = append(candidates, SimilarMeal{
			MealID:             mealID,
			CourseCount:        len(courseIndices),
			AverageHealthScore: round2(avg),
			Courses:            courses,
		})
	}

	// Stable sort over the ascending meal-ID base order keeps equal scores
	// deterministic.
	sortSimilarMeals(candidates)

	total := len(candidates)
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return &SimilarMealsResult{
		ReferenceCourse:          courseRef(reference),
		SimilarMeals:             candidates,
		TotalFound:               total,
		MealsWithReferenceCourse: len(reference.MealIDs),
	}, nil
}

// RecipeSummary is the deterministic natural-language rendering of a course.
type RecipeSummary struct {
	CourseID        int     `json:"course_id"`
	CourseName      string  `json:"course_name"`
	Summary         string  `json:"summary"`
	Category        string  `json:"category"`
	HealthRating    string  `json:"health_rating"`
	MealAppearances int     `json:"meal_appearances"`
	Scores          struct {
		FSA float64 `json:"fsa"`
		WHO float64 `json:"who"`
	} `json:"scores"`
}

// Summarize assembles the fixed-template summary text for a course, using
// the shared rating bands, the popularity bands, and the fsa quality tiers.
func (idx *Index) Summarize(courseID int) (*RecipeSummary, error) {
	course, ok := idx.ResolveCourse(courseID)
	if !ok {
		return nil, notFound("Course %d not found", courseID)
	}

	rating := HealthRating(course.FSAScore)
	popularity := Popularity(course.MealCount())

	summary := fmt.Sprintf("%s is a %s %s with an FSA health score of %g and WHO score of %g. ",
		course.Name, rating, course.Category.DisplayName(), course.FSAScore, course.WHOScore)
	summary += fmt.Sprintf("This %s recipe appears in %d different meal combinations in our dataset.",
		popularity, course.MealCount())

	switch {
	case course.FSAScore <= 5:
		summary += " This is an excellent choice for health-conscious diners."
	case course.FSAScore <= 7:
		summary += " This offers a good balance of taste and nutrition."
	default:
		summary += " Consider this as an occasional treat rather than a regular choice."
	}

	result := &RecipeSummary{
		CourseID:        course.ID,
		CourseName:      course.Name,
		Summary:         summary,
		Category:        course.Category.DisplayName(),
		HealthRating:    rating,
		MealAppearances: course.MealCount(),
	}
	result.Scores.FSA = course.FSAScore
	result.Scores.WHO = course.WHOScore
	return result, nil
}

// UserHistoryResult summarizes one user's interaction records.
type UserHistoryResult struct {
	UserID      int `json:"user_id"`
	TotalCourse int `json:"total_courses"`
	TotalMeals  int `json:"total_meals"`
	// CategoryPreferences maps category name to a percentage of the user's
	// course interactions, rounded to 1 decimal.
	CategoryPreferences   map[string]float64 `json:"category_preferences"`
	AverageHealthScore    float64            `json:"average_health_score"`
	HealthPreference      string             `json:"health_preference"`
	MostPreferredCategory string             `json:"most_preferred_category,omitempty"`
}

// UserHistory gathers the user's course and meal interactions across every
// stored split and derives category and health preferences. A user with no
// records at all is a not-found error.
func (idx *Index) UserHistory(userID int) (*UserHistoryResult, error) {
	var userCourses []int
	for _, rec := range idx.userCourses {
		if rec.UserID == userID {
			userCourses = append(userCourses, rec.ItemID)
		}
	}

	var totalMeals int
	for _, split := range userMealSplits {
		for _, rec := range idx.userMeals[split] {
			if rec.UserID == userID {
				totalMeals++
			}
		}
	}

	if len(userCourses) == 0 && totalMeals == 0 {
		return nil, notFound("No history found for user %d", userID)
	}

	counts := make(map[Category]int, len(Categories))
	var healthScores []float64
	for _, courseIdx := range userCourses {
		course, ok := idx.Course(courseIdx)
		if !ok {
			continue
		}
		counts[course.Category]++
		healthScores = append(healthScores, course.FSAScore)
	}

	totalCounted := 0
	for _, n := range counts {
		totalCounted += n
	}

	preferences := make(map[string]float64)
	mostPreferred := ""
	if totalCounted > 0 {
		best := -1
		for _, cat := range Categories {
			pct := float64(counts[cat]) / float64(totalCounted) * 100
			preferences[cat.String()] = round1(pct)
			// Strict > means ties resolve to the earliest enum value.
			if counts[cat] > best {
				best = counts[cat]
				mostPreferred = cat.String()
			}
		}
	}

	var avg float64
	if len(healthScores) > 0 {
		var sum float64
		for _, s := range healthScores {
			sum += s
		}
		avg = sum / float64(len(healthScores))
	}

	return &UserHistoryResult{
		UserID:                userID,
		TotalCourse:           len(userCourses),
		TotalMeals:            totalMeals,
		CategoryPreferences:   preferences,
		AverageHealthScore:    round2(avg),
		HealthPreference:      HealthRating(avg),
		MostPreferredCategory: mostPreferred,
	}, nil
}

func sortSimilarMeals(meals []SimilarMeal) {
	// Stable over the ascending meal-ID base order.
	sort.SliceStable(meals, func(i, j int) bool {
		return meals[i].AverageHealthScore < meals[j].AverageHealthScore
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
