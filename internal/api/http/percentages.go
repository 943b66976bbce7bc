package http

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/edgar-analytics/edgar-dashboard/internal/storage"
)

// PercentagesHandler serves the stored all-exams payload as is.
func PercentagesHandler(bs storage.BlobStore, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if bs == nil {
			_, _ = io.WriteString(w, "[]\n")
			return
		}
		rc, err := bs.Get(storage.AllExamsPercentagesKey)
		if errors.Is(err, fs.ErrNotExist) {
			_, _ = io.WriteString(w, "[]\n")
			return
		}
		if err != nil {
			fail(w, r, log, msgData, err, "key", storage.AllExamsPercentagesKey)
			return
		}
		defer rc.Close()
		_, _ = io.Copy(w, rc)
	}
}
