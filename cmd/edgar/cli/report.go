package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edgar-analytics/edgar-dashboard/internal/report"
)

type reportKind struct {
	args  []string
	title string
	run   func(ctx context.Context, st report.Store, a []string) (report.Table, error)
}

var reportKinds = map[string]reportKind{
	"courses": {
		title: "Courses",
		run: func(ctx context.Context, st report.Store, _ []string) (report.Table, error) {
			rows, err := st.Courses(ctx)
			return report.CoursesTable(rows), err
		},
	},
	"years": {
		title: "Academic years",
		run: func(ctx context.Context, st report.Store, _ []string) (report.Table, error) {
			rows, err := st.AcademicYears(ctx)
			return report.AcademicYearsTable(rows), err
		},
	},
	"instances": {
		args:  []string{"TEST", "YEAR", "COURSE"},
		title: "Test instances",
		run: func(ctx context.Context, st report.Store, a []string) (report.Table, error) {
			rows, err := st.TestInstances(ctx, a[0], a[1], a[2])
			return report.InstancesTable(rows), err
		},
	},
	"results": {
		args:  []string{"TEST", "YEAR", "COURSE"},
		title: "Score histogram",
		run: func(ctx context.Context, st report.Store, a []string) (report.Table, error) {
			rows, err := st.ScoreHistogram(ctx, a[0], a[1], a[2])
			return report.HistogramTable(rows), err
		},
	},
	"passed": {
		args:  []string{"TEST", "YEAR", "COURSE"},
		title: "Pass/fail",
		run: func(ctx context.Context, st report.Store, a []string) (report.Table, error) {
			rows, err := st.PassRatio(ctx, a[0], a[1], a[2])
			return report.PassShareTable(rows), err
		},
	},
	"exams": {
		args:  []string{"COURSE", "YEAR"},
		title: "Exam scores",
		run: func(ctx context.Context, st report.Store, a []string) (report.Table, error) {
			rows, err := st.ExamScores(ctx, a[0], a[1])
			return report.ExamScoresTable(rows), err
		},
	},
	"questions": {
		args:  []string{"TEST", "YEAR", "COURSE"},
		title: "Questions",
		run: func(ctx context.Context, st report.Store, a []string) (report.Table, error) {
			rows, err := st.TestQuestions(ctx, a[0], a[1], a[2])
			return report.TestQuestionsTable(rows), err
		},
	},
	"question": {
		args:  []string{"QUESTION", "YEAR"},
		title: "Answer distribution",
		run: func(ctx context.Context, st report.Store, a []string) (report.Table, error) {
			rows, err := st.AnswerDistribution(ctx, a[0], a[1])
			return report.AnswerSharesTable(rows), err
		},
	},
	"question-scores": {
		args:  []string{"QUESTION", "YEAR"},
		title: "Question scores",
		run: func(ctx context.Context, st report.Store, a []string) (report.Table, error) {
			rows, err := st.QuestionScores(ctx, a[0], a[1])
			return report.ScoreFrequencyTable(rows), err
		},
	},
}

func reportUsage() string {
	names := make([]string, 0, len(reportKinds))
	for k := range reportKinds {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		fmt.Fprintf(&b, "  %-16s %s\n", k, strings.Join(reportKinds[k].args, " "))
	}
	return b.String()
}

var reportCmd = &cobra.Command{
	Use:   "report KIND [IDS...]",
	Short: "Print one report as a table",
	Long: "Run a single report against the configured database and print it.\n\nKinds:\n" + reportUsage() +
		"\nExamples:\n  edgar report courses\n  edgar report results 1 2 1",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dbh, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer dbh.Close()

		kind, ok := reportKinds[args[0]]
		if !ok {
			return fmt.Errorf("unknown report %q", args[0])
		}
		tbl, err := runReport(ctx, report.NewSQLStore(dbh.SQL, string(dbh.Driver)), args[0], args[1:])
		if err != nil {
			return err
		}
		color.Yellow("\n%s", kind.title)
		tbl.Render(os.Stdout)
		return nil
	},
}

func runReport(ctx context.Context, st report.Store, name string, ids []string) (report.Table, error) {
	kind, ok := reportKinds[name]
	if !ok {
		return report.Table{}, fmt.Errorf("unknown report %q", name)
	}
	if len(ids) != len(kind.args) {
		return report.Table{}, fmt.Errorf("%s expects %d ids (%s), got %d",
			name, len(kind.args), strings.Join(kind.args, " "), len(ids))
	}
	return kind.run(ctx, st, ids)
}
