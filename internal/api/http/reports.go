// internal/api/http/reports.go
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edgar-analytics/edgar-dashboard/internal/report"
)

const (
	msgData           = "Error retrieving data from the database."
	msgCourses        = "Error retrieving courses!"
	msgYears          = "Error retrieving years!"
	msgExams          = "Error retrieving exams!"
	msgQuestions      = "Error retrieving questions!"
	msgQuestionScores = "Error retrieving question scores!"
)

func AnswerDistributionHandler(store report.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, y := chi.URLParam(r, "questionID"), chi.URLParam(r, "academicYear")
		rows, err := store.AnswerDistribution(r.Context(), q, y)
		if err != nil {
			fail(w, r, log, msgData, err, "question", q, "academic_year", y)
			return
		}
		writeJSON(w, rows)
	}
}

func InstancesHandler(store report.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, y, c := testYearCourse(r)
		rows, err := store.TestInstances(r.Context(), t, y, c)
		if err != nil {
			fail(w, r, log, msgData, err, "test", t, "academic_year", y, "course", c)
			return
		}
		writeJSON(w, rows)
	}
}

func ResultsHandler(store report.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, y, c := testYearCourse(r)
		rows, err := store.ScoreHistogram(r.Context(), t, y, c)
		if err != nil {
			fail(w, r, log, msgData, err, "test", t, "academic_year", y, "course", c)
			return
		}
		writeJSON(w, rows)
	}
}

func PassedHandler(store report.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, y, c := testYearCourse(r)
		rows, err := store.PassRatio(r.Context(), t, y, c)
		if err != nil {
			fail(w, r, log, msgData, err, "test", t, "academic_year", y, "course", c)
			return
		}
		writeJSON(w, rows)
	}
}

func CoursesHandler(store report.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.Courses(r.Context())
		if err != nil {
			fail(w, r, log, msgCourses, err)
			return
		}
		writeJSON(w, rows)
	}
}

func YearsHandler(store report.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.AcademicYears(r.Context())
		if err != nil {
			fail(w, r, log, msgYears, err)
			return
		}
		writeJSON(w, rows)
	}
}

func ExamsHandler(store report.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, y := chi.URLParam(r, "courseID"), chi.URLParam(r, "academicYear")
		rows, err := store.ExamScores(r.Context(), c, y)
		if err != nil {
			fail(w, r, log, msgExams, err, "course", c, "academic_year", y)
			return
		}
		writeJSON(w, rows)
	}
}

func QuestionsHandler(store report.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, y, c := testYearCourse(r)
		rows, err := store.TestQuestions(r.Context(), t, y, c)
		if err != nil {
			fail(w, r, log, msgQuestions, err, "test", t, "academic_year", y, "course", c)
			return
		}
		writeJSON(w, rows)
	}
}

func QuestionScoresHandler(store report.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, y := chi.URLParam(r, "questionID"), chi.URLParam(r, "academicYear")
		rows, err := store.QuestionScores(r.Context(), q, y)
		if err != nil {
			fail(w, r, log, msgQuestionScores, err, "question", q, "academic_year", y)
			return
		}
		writeJSON(w, rows)
	}
}

func testYearCourse(r *http.Request) (test, year, course string) {
	return chi.URLParam(r, "testID"), chi.URLParam(r, "academicYear"), chi.URLParam(r, "courseID")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// fail logs the cause and answers with the endpoint's fixed message; the
// underlying error never reaches the client.
func fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, msg string, err error, params ...any) {
	args := append([]any{"path", r.URL.Path, "req_id", middleware.GetReqID(r.Context()), "err", err}, params...)
	log.Error("report query failed", args...)
	http.Error(w, msg, http.StatusInternalServerError)
}
