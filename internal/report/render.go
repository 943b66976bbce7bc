package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Table is a report ready for terminal output.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(t.Header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(t.Rows)
	table.Render()
}

func tableOf[T any](header []string, items []T, row func(T) []string) Table {
	t := Table{Header: header, Rows: make([][]string, 0, len(items))}
	for _, it := range items {
		t.Rows = append(t.Rows, row(it))
	}
	return t
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func optional(n *Numeric) string {
	if n == nil {
		return "-"
	}
	return n.String()
}

func stamp(ts Timestamp) string {
	if !ts.Valid {
		return "-"
	}
	return ts.Time.Format("2006-01-02 15:04:05")
}

func AnswerSharesTable(rows []AnswerShare) Table {
	return tableOf([]string{"ordinal", "is_correct", "num", "correct %", "incorrect %", "unanswered %"}, rows, func(a AnswerShare) []string {
		ord := "unanswered"
		if a.Ordinal != nil {
			ord = itoa(*a.Ordinal)
		}
		return []string{ord, strconv.FormatBool(a.IsCorrect), a.Num.String(), a.Correct.String(), a.Incorrect.String(), a.Unanswered.String()}
	})
}

func InstancesTable(rows []Instance) Table {
	return tableOf([]string{"id", "student", "started", "submitted", "score", "score %", "passed"}, rows, func(in Instance) []string {
		return []string{itoa(in.ID), itoa(in.StudentID), stamp(in.StartedAt), stamp(in.SubmittedAt), optional(in.Score), optional(in.ScorePerc), strconv.FormatBool(in.Passed)}
	})
}

func HistogramTable(rows []ScoreBucket) Table {
	return tableOf([]string{"percentage", "students"}, rows, func(b ScoreBucket) []string {
		return []string{b.Percentage.String(), itoa(b.StudentCount)}
	})
}

func PassShareTable(rows []PassShare) Table {
	return tableOf([]string{"title", "percentage"}, rows, func(p PassShare) []string {
		return []string{p.Title, strconv.FormatFloat(p.Percentage, 'f', 2, 64)}
	})
}

func CoursesTable(rows []Course) Table {
	return tableOf([]string{"id", "acronym", "name"}, rows, func(c Course) []string {
		return []string{itoa(c.ID), c.Acronym, c.Name}
	})
}

func AcademicYearsTable(rows []AcademicYear) Table {
	return tableOf([]string{"id", "title"}, rows, func(y AcademicYear) []string {
		return []string{itoa(y.ID), y.Title}
	})
}

func ExamScoresTable(rows []ExamScores) Table {
	return tableOf([]string{"id", "abbrev", "title", "attempts", "scores"}, rows, func(e ExamScores) []string {
		scores := make([]string, len(e.Scores))
		for i, s := range e.Scores {
			scores[i] = s.String()
		}
		return []string{itoa(e.ID), e.TitleAbbrev, e.Title, strconv.Itoa(len(e.Scores)), strings.Join(scores, " ")}
	})
}

func TestQuestionsTable(rows []TestQuestion) Table {
	return tableOf([]string{"question", "type id", "type"}, rows, func(q TestQuestion) []string {
		return []string{itoa(q.QuestionID), itoa(q.TypeID), q.TypeName}
	})
}

func ScoreFrequencyTable(rows []ScoreFrequency) Table {
	return tableOf([]string{"score", "rounded", "count"}, rows, func(f ScoreFrequency) []string {
		return []string{f.UnroundedScore.String(), f.Score.String(), itoa(f.Count)}
	})
}
