package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mounted(t *testing.T) http.Handler {
	t.Helper()
	dash, err := Routes("http://api.local:4000", nil)
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Mount("/edgar", dash)
	return r
}

func TestRoutes_ServesEveryPage(t *testing.T) {
	h := mounted(t)

	for _, p := range []string{"/edgar", "/edgar/", "/edgar/questions-bar-chart", "/edgar/exam-analytics", "/edgar/example"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))

		require.Equal(t, http.StatusOK, rec.Code, p)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"), p)
		body := rec.Body.String()
		assert.Contains(t, body, `const API = "http://api.local:4000";`, p)
		assert.Contains(t, body, `href="/edgar/exam-analytics"`, p)
	}
}

func TestRoutes_PageContent(t *testing.T) {
	h := mounted(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edgar/exam-analytics", nil))
	assert.Contains(t, rec.Body.String(), "<title>Exam analytics</title>")
	assert.Contains(t, rec.Body.String(), "/passed/percentage/")
}

func TestRoutes_UnknownPageIsNotFound(t *testing.T) {
	h := mounted(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edgar/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	nf, err := NotFoundHandler("", nil)
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	nf(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `const API = "";`)
}

func TestPages_InsertDataAsText(t *testing.T) {
	for _, name := range []string{"layout.html", "index.html", "exam_analytics.html", "questions_bar_chart.html", "example.html"} {
		b, err := files.ReadFile("templates/" + name)
		require.NoError(t, err)
		assert.NotContains(t, string(b), "innerHTML", name)
	}
}

func TestQuestionsPage_ReadsQueryParams(t *testing.T) {
	h := mounted(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edgar/questions-bar-chart?q=7&y=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new URLSearchParams(location.search)")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edgar/exam-analytics", nil))
	assert.Contains(t, rec.Body.String(), `"/edgar/questions-bar-chart?"`)
}
