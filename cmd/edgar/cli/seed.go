package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edgar-analytics/edgar-dashboard/internal/db"
	"github.com/edgar-analytics/edgar-dashboard/internal/report"
	"github.com/edgar-analytics/edgar-dashboard/internal/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the offline SQLite database with demo data",
	Long: `Create the SQLite schema, insert a small demo course and write a demo
percentages payload to the blob store. Only valid for DB_DRIVER=sqlite.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		dbh, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer dbh.Close()

		if err := db.SeedDemo(ctx, dbh); err != nil {
			return err
		}
		bs, err := storage.NewFSStore(cfg.BlobBasePath)
		if err != nil {
			return fmt.Errorf("blob store: %w", err)
		}
		key, err := writeDemoPercentages(ctx, report.NewSQLStore(dbh.SQL, string(dbh.Driver)), bs)
		if err != nil {
			return err
		}
		color.Green("demo data seeded; percentages written to %s", key)
		return nil
	},
}

type examPercentage struct {
	ID          int64          `json:"id"`
	TitleAbbrev string         `json:"title_abbrev"`
	Title       string         `json:"title"`
	Percentage  report.Numeric `json:"percentage"`
}

// writeDemoPercentages stores the average score of every demo exam under the
// key served at /percentages/all/exams.
func writeDemoPercentages(ctx context.Context, st report.Store, bs storage.BlobStore) (string, error) {
	years, err := st.AcademicYears(ctx)
	if err != nil {
		return "", err
	}
	courses, err := st.Courses(ctx)
	if err != nil {
		return "", err
	}

	out := []examPercentage{}
	for _, c := range courses {
		for _, y := range years {
			exams, err := st.ExamScores(ctx, strconv.FormatInt(c.ID, 10), strconv.FormatInt(y.ID, 10))
			if err != nil {
				return "", err
			}
			for _, e := range exams {
				out = append(out, examPercentage{ID: e.ID, TitleAbbrev: e.TitleAbbrev, Title: e.Title, Percentage: average(e.Scores)})
			}
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return bs.Put(storage.AllExamsPercentagesKey, bytes.NewReader(b))
}

func average(scores report.ScoreList) report.Numeric {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += float64(s)
	}
	return report.Numeric(report.Round(sum/float64(len(scores)), 2))
}
