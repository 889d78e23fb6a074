package kb_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealrec-agent-poc/server/internal/kb"
)

// writeDatasetFiles lays out a miniature MealRec+ directory tree.
func writeDatasetFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLoadDatasetMissingDirectory(t *testing.T) {
	assert := assert.New(t)

	ds := kb.LoadDataset(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.NotNil(ds)
	assert.Empty(ds.Categories)
	assert.Empty(ds.FSAScores)
	assert.Empty(ds.WHOScores)
	assert.Empty(ds.MealCourses)
	assert.Empty(ds.CourseToIndex)
	assert.Empty(ds.UserCourses)
	for _, split := range []string{"train", "test", "tune"} {
		assert.Empty(ds.UserMeals[split])
	}
}

func TestLoadDatasetParsesTables(t *testing.T) {
	assert := assert.New(t)

	dir := writeDatasetFiles(t, map[string]string{
		"course_category.txt":        "0\t0\n1\t1\n2\t2\n",
		"healthiness/course_fsa.txt": "5.0\n3.5\n9.0\n",
		"healthiness/course_who.txt": "4.0\n6.0\n8.0\n",
		"meal_course.txt":            "100\t0\n100\t1\n101\t2\n",
		"meta_data/course2index.txt": "1001\t0\n1002\t1\n",
		"user_course.txt":            "7\t0\n7\t1\n8\t2\n",
		"user_meal_train.txt":        "7\t100\n",
		"user_meal_test.txt":         "7\t101\n",
		"user_meal_tune.txt":         "",
	})

	ds := kb.LoadDataset(dir)

	assert.Len(ds.Categories, 3)
	assert.Equal(kb.Main, ds.Categories[1])
	assert.Equal(5.0, ds.FSAScores[0])
	assert.Equal(3.5, ds.FSAScores[1])
	assert.Equal(8.0, ds.WHOScores[2])
	assert.Equal([]int{0, 1}, ds.MealCourses[100])
	assert.Equal([]int{2}, ds.MealCourses[101])
	assert.Equal(0, ds.CourseToIndex[1001])
	assert.Len(ds.UserCourses, 3)
	assert.Equal(kb.Interaction{UserID: 7, ItemID: 0}, ds.UserCourses[0])
	assert.Len(ds.UserMeals["train"], 1)
	assert.Len(ds.UserMeals["test"], 1)
	assert.Empty(ds.UserMeals["tune"])
}

func TestLoadDatasetMalformedScoreFileEmptiesOnlyThatTable(t *testing.T) {
	assert := assert.New(t)

	dir := writeDatasetFiles(t, map[string]string{
		"course_category.txt":        "0\t0\n1\t1\n",
		"healthiness/course_fsa.txt": "5.0\nnot-a-number\n",
		"healthiness/course_who.txt": "4.0\n6.0\n",
	})

	ds := kb.LoadDataset(dir)

	assert.Empty(ds.FSAScores, "malformed score file should leave its table empty")
	assert.Len(ds.WHOScores, 2, "other score table must be unaffected")
	assert.Len(ds.Categories, 2)
}

func TestLoadDatasetSkipsUnparseableLines(t *testing.T) {
	assert := assert.New(t)

	dir := writeDatasetFiles(t, map[string]string{
		"course_category.txt": "0\t0\njunk line\n1\n2\tx\n1\t1\n",
	})

	ds := kb.LoadDataset(dir)

	assert.Len(ds.Categories, 2)
	assert.Equal(kb.Appetizer, ds.Categories[0])
	assert.Equal(kb.Main, ds.Categories[1])
}

func TestLoadDatasetBlankScoreLinesSkipped(t *testing.T) {
	assert := assert.New(t)

	dir := writeDatasetFiles(t, map[string]string{
		"course_category.txt":        "0\t0\n",
		"healthiness/course_fsa.txt": "5.0\n\n3.0\n",
	})

	ds := kb.LoadDataset(dir)

	// A blank line holds no score but still occupies its position.
	assert.Equal(5.0, ds.FSAScores[0])
	assert.Equal(3.0, ds.FSAScores[2])
	assert.NotContains(ds.FSAScores, 1)
}
