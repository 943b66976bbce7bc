package report_test

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgar-analytics/edgar-dashboard/internal/db"
	"github.com/edgar-analytics/edgar-dashboard/internal/report"
)

// Runs the production statements against a live Edgar database (read-only).
// Set EDGAR_PG_DSN, plus EDGAR_PG_COURSE/EDGAR_PG_YEAR/EDGAR_PG_TEST to probe
// a specific test.
func TestPostgres_ReadOnlyReports(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("EDGAR_PG_DSN"))
	if dsn == "" {
		t.Skip("set EDGAR_PG_DSN to run postgres integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	d, err := db.Open(ctx, db.DriverPostgres, dsn, 2)
	require.NoError(t, err)
	defer d.Close()

	st := report.NewSQLStore(d.SQL, string(d.Driver))

	courses, err := st.Courses(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(courses), 20)
	for i := 1; i < len(courses); i++ {
		assert.Greater(t, courses[i-1].ID, courses[i].ID)
	}

	years, err := st.AcademicYears(ctx)
	require.NoError(t, err)
	for i := 1; i < len(years); i++ {
		assert.Greater(t, years[i-1].ID, years[i].ID)
	}

	course, year, test := os.Getenv("EDGAR_PG_COURSE"), os.Getenv("EDGAR_PG_YEAR"), os.Getenv("EDGAR_PG_TEST")
	if course == "" || year == "" || test == "" {
		return
	}

	_, err = st.ExamScores(ctx, course, year)
	require.NoError(t, err)

	instances, err := st.TestInstances(ctx, test, year, course)
	require.NoError(t, err)

	buckets, err := st.ScoreHistogram(ctx, test, year, course)
	require.NoError(t, err)
	var sum int64
	for _, b := range buckets {
		sum += b.StudentCount
	}
	assert.Equal(t, int64(len(instances)), sum)

	ratio, err := st.PassRatio(ctx, test, year, course)
	require.NoError(t, err)
	if len(instances) > 0 {
		require.Len(t, ratio, 2)
		assert.InDelta(t, 100, ratio[0].Percentage+ratio[1].Percentage, 0.01)
	}

	questions, err := st.TestQuestions(ctx, test, year, course)
	require.NoError(t, err)
	for _, q := range questions {
		_, err := st.QuestionScores(ctx, strconv.FormatInt(q.QuestionID, 10), year)
		require.NoError(t, err)
		_, err = st.AnswerDistribution(ctx, strconv.FormatInt(q.QuestionID, 10), year)
		require.NoError(t, err)
	}
}
