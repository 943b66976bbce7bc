// internal/api/http/router.go
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/edgar-analytics/edgar-dashboard/internal/report"
	"github.com/edgar-analytics/edgar-dashboard/internal/storage"
)

type Deps struct {
	Store   report.Store
	Blobs   storage.BlobStore
	Log     *slog.Logger
	Origins []string
	Timeout time.Duration

	// Dashboard is mounted at /edgar when set; NotFound answers unknown paths.
	Dashboard http.Handler
	NotFound  http.HandlerFunc
}

func NewRouter(d Deps) chi.Router {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Timeout <= 0 {
		d.Timeout = 30 * time.Second
	}
	origins := d.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(d.Log), middleware.Recoverer)
	r.Use(middleware.Timeout(d.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", HealthHandler())
	r.Get("/readyz", ReadyHandler(d.Store))

	r.Get("/question/{questionID}/{academicYear}", AnswerDistributionHandler(d.Store, d.Log))
	r.Get("/question/scores/{questionID}/{academicYear}", QuestionScoresHandler(d.Store, d.Log))
	r.Get("/percentages/all/exams", PercentagesHandler(d.Blobs, d.Log))
	r.Get("/instances/{testID}/{academicYear}/{courseID}", InstancesHandler(d.Store, d.Log))
	r.Get("/results/{testID}/{academicYear}/{courseID}", ResultsHandler(d.Store, d.Log))
	r.Get("/passed/percentage/{testID}/{academicYear}/{courseID}", PassedHandler(d.Store, d.Log))
	r.Get("/courses", CoursesHandler(d.Store, d.Log))
	r.Get("/years", YearsHandler(d.Store, d.Log))
	r.Get("/exams/{courseID}/{academicYear}", ExamsHandler(d.Store, d.Log))
	r.Get("/questions/{testID}/{academicYear}/{courseID}", QuestionsHandler(d.Store, d.Log))

	if d.Dashboard != nil {
		r.Mount("/edgar", d.Dashboard)
	}
	if d.NotFound != nil {
		r.NotFound(d.NotFound)
	}
	return r
}
