package kb

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	logx "github.com/mealrec-agent-poc/server/pkg/logger"
)

// Fixed relative layout of the MealRec+ dataset under the base directory.
const (
	categoryFile    = "course_category.txt"
	fsaScoreFile    = "healthiness/course_fsa.txt"
	whoScoreFile    = "healthiness/course_who.txt"
	mealCourseFile  = "meal_course.txt"
	courseIndexFile = "meta_data/course2index.txt"
	userCourseFile  = "user_course.txt"
)

// Splits of the user-meal interaction log.
var userMealSplits = []string{"train", "test", "tune"}

// Interaction is one (user, item) pair from an interaction log.
type Interaction struct {
	UserID int
	ItemID int
}

// Dataset holds the raw tables parsed from the flat files. Each facet loads
// independently: a missing or malformed file leaves its table empty so the
// knowledge base can still be built in degraded mode.
type Dataset struct {
	// Categories maps course index to its category code.
	Categories map[int]Category
	// FSAScores and WHOScores are positional: line N of the score file is
	// the score for course index N.
	FSAScores map[int]float64
	WHOScores map[int]float64
	// MealCourses maps meal ID to its ordered course-index list.
	MealCourses map[int][]int
	// CourseToIndex maps external course ID to internal course index.
	CourseToIndex map[int]int
	// UserCourses are (user, course) interaction pairs.
	UserCourses []Interaction
	// UserMeals are (user, meal) interaction pairs keyed by split.
	UserMeals map[string][]Interaction
}

// LoadDataset parses all dataset files under dir. It never fails: every
// table that cannot be read logs a diagnostic and stays empty.
func LoadDataset(dir string) *Dataset {
	ds := &Dataset{
		Categories:    loadCategories(filepath.Join(dir, categoryFile)),
		FSAScores:     loadScores(filepath.Join(dir, fsaScoreFile), "fsa"),
		WHOScores:     loadScores(filepath.Join(dir, whoScoreFile), "who"),
		MealCourses:   loadMealCourses(filepath.Join(dir, mealCourseFile)),
		CourseToIndex: loadCourseToIndex(filepath.Join(dir, courseIndexFile)),
		UserCourses:   loadInteractions(filepath.Join(dir, userCourseFile), "user_course"),
		UserMeals:     make(map[string][]Interaction, len(userMealSplits)),
	}
	for _, split := range userMealSplits {
		name := "user_meal_" + split + ".txt"
		ds.UserMeals[split] = loadInteractions(filepath.Join(dir, name), "user_meal_"+split)
	}

	logx.Info().
		Str("path", dir).
		Int("categories", len(ds.Categories)).
		Int("fsa_scores", len(ds.FSAScores)).
		Int("who_scores", len(ds.WHOScores)).
		Int("meals", len(ds.MealCourses)).
		Int("course_ids", len(ds.CourseToIndex)).
		Int("user_course_interactions", len(ds.UserCourses)).
		Msg("Dataset loaded")

	return ds
}

// loadCategories reads "{course_index}\t{category}" records.
func loadCategories(path string) map[int]Category {
	categories := make(map[int]Category)
	err := eachPairLine(path, func(a, b int) {
		categories[a] = Category(b)
	})
	if err != nil {
		logx.Warn().Err(err).Str("file", path).Msg("Error loading categories")
	}
	return categories
}

// loadScores reads a positional score file: line N holds the float score for
// course index N. A non-numeric line is a parse error for this file only;
// the table comes back empty and construction continues.
func loadScores(path string, scoreType string) map[int]float64 {
	f, err := os.Open(path)
	if err != nil {
		logx.Warn().Err(err).Str("score_type", scoreType).Msg("Error loading health scores")
		return map[int]float64{}
	}
	defer f.Close()

	scores := make(map[int]float64)
	scanner := bufio.NewScanner(f)
	for idx := 0; scanner.Scan(); idx++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		score, err := strconv.ParseFloat(line, 64)
		if err != nil {
			logx.Warn().Err(err).Str("score_type", scoreType).Int("line", idx+1).
				Msg("Malformed health score file; table left empty")
			return map[int]float64{}
		}
		scores[idx] = score
	}
	if err := scanner.Err(); err != nil {
		logx.Warn().Err(err).Str("score_type", scoreType).Msg("Error reading health scores")
		return map[int]float64{}
	}
	return scores
}

// loadMealCourses reads "{meal_id}\t{course_index}" records; repeated meal
// IDs accumulate a course list in file order.
func loadMealCourses(path string) map[int][]int {
	meals := make(map[int][]int)
	err := eachPairLine(path, func(mealID, courseIdx int) {
		meals[mealID] = append(meals[mealID], courseIdx)
	})
	if err != nil {
		logx.Warn().Err(err).Str("file", path).Msg("Error loading meal-course mapping")
	}
	return meals
}

// loadCourseToIndex reads "{course_id}\t{course_index}" records.
func loadCourseToIndex(path string) map[int]int {
	mapping := make(map[int]int)
	err := eachPairLine(path, func(courseID, courseIdx int) {
		mapping[courseID] = courseIdx
	})
	if err != nil {
		logx.Warn().Err(err).Str("file", path).Msg("Error loading course-to-index mapping")
	}
	return mapping
}

// loadInteractions reads "{user_id}\t{item_id}" records.
func loadInteractions(path string, name string) []Interaction {
	var interactions []Interaction
	err := eachPairLine(path, func(userID, itemID int) {
		interactions = append(interactions, Interaction{UserID: userID, ItemID: itemID})
	})
	if err != nil {
		logx.Warn().Err(err).Str("table", name).Msg("Error loading interactions")
	}
	return interactions
}

// eachPairLine streams a two-column tab-separated file, calling fn for every
// line that parses as two integers. Lines with fewer than two fields or
// non-integer fields are skipped defensively, matching the permissive
// parsing the dataset files need.
func eachPairLine(path string, fn func(a, b int)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), "\t")
		if len(parts) < 2 {
			continue
		}
		a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		fn(a, b)
	}
	return scanner.Err()
}
