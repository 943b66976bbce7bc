package report

import (
	"math"
	"strconv"
	"strings"
)

// AppendUnanswered appends the synthetic "unanswered" row to an answer
// distribution. The SQL only yields percentages of respondents, so the
// respondent count is backed out of the first row (num*100/correct, or
// num*100/incorrect when correct is zero) and scaled by the unanswered share.
//
// When the first row has neither bucket (nobody picked that ordinal) the next
// row with a non-zero bucket is used; if no row has one the rows' Respondents
// count is used, and without that the count is 0. Empty input is returned
// unchanged.
func AppendUnanswered(rows []AnswerShare, academicYear string) []AnswerShare {
	if len(rows) == 0 {
		return rows
	}
	first := rows[0]

	total, ok := impliedRespondents(first)
	for i := 1; !ok && i < len(rows); i++ {
		total, ok = impliedRespondents(rows[i])
	}
	if !ok {
		total = float64(first.Respondents)
	}

	return append(rows, AnswerShare{
		AcademicYearID: parseYear(academicYear),
		Ordinal:        nil,
		IsCorrect:      false,
		Num:            Numeric(math.Round(total * float64(first.Unanswered) / 100)),
		Correct:        0,
		Incorrect:      0,
		Unanswered:     first.Unanswered,
		Respondents:    first.Respondents,
	})
}

// UnansweredOnly is the distribution of a question whose responses matched no
// answer option: a lone unanswered row, or nothing without respondents.
func UnansweredOnly(respondents, unanswered int64, academicYear string) []AnswerShare {
	if respondents <= 0 {
		return []AnswerShare{}
	}
	return []AnswerShare{{
		AcademicYearID: parseYear(academicYear),
		Num:            Numeric(unanswered),
		Unanswered:     Numeric(100 * float64(unanswered) / float64(respondents)),
		Respondents:    respondents,
	}}
}

func parseYear(s string) *int64 {
	y, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &y
}

func impliedRespondents(r AnswerShare) (float64, bool) {
	switch {
	case r.Correct != 0:
		return float64(r.Num) * 100 / float64(r.Correct), true
	case r.Incorrect != 0:
		return float64(r.Num) * 100 / float64(r.Incorrect), true
	default:
		return 0, false
	}
}

// PassFail turns the passed fraction (0..1) into the labelled Passed/Failed
// percentage pair. Both are rounded to 2 decimals and sum to 100.
func PassFail(passedFraction float64) []PassShare {
	passed := Round(passedFraction*100, 2)
	return []PassShare{
		{Title: "Passed", Percentage: passed},
		{Title: "Failed", Percentage: Round(100-passed, 2)},
	}
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
