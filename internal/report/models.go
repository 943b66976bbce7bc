package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Numeric is a SQL numeric value the dashboard receives as a JSON string
// ("80.46"), the way the charts have always consumed aggregates.
type Numeric float64

func (n Numeric) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(n.String())), nil
}

// String prints at most 15 significant digits, the precision float64 holds
// exactly, so division results read 33.3333333333333 rather than
// 33.333333333333336.
func (n Numeric) String() string {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(n), 'g', 15, 64), 64)
	if err != nil {
		v = float64(n)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Timestamp scans timestamps from either driver (time.Time from pgx, text or
// time.Time from sqlite) and encodes as RFC 3339 or null.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Timestamp{}
		return nil
	case time.Time:
		*t = Timestamp{Time: v, Valid: true}
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("report: cannot scan %T into Timestamp", src)
	}
}

func (t *Timestamp) parse(s string) error {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			*t = Timestamp{Time: ts, Valid: true}
			return nil
		}
	}
	return fmt.Errorf("report: unrecognised timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// ScoreList is an aggregated list of score percentages: a Postgres array
// literal ("{80.46,45.20}") or, offline, a JSON array ("[80.46,45.2]").
type ScoreList []Numeric

func (l *ScoreList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = ScoreList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("report: cannot scan %T into ScoreList", src)
	}
	raw = bytes.TrimSpace(raw)

	var vals []float64
	if bytes.HasPrefix(raw, []byte("[")) {
		if err := json.Unmarshal(raw, &vals); err != nil {
			return fmt.Errorf("report: scores: %w", err)
		}
	} else {
		var arr pq.Float64Array
		if err := arr.Scan(raw); err != nil {
			return fmt.Errorf("report: scores: %w", err)
		}
		vals = arr
	}
	out := make(ScoreList, len(vals))
	for i, v := range vals {
		out[i] = Numeric(v)
	}
	*l = out
	return nil
}

// AnswerShare is one answer ordinal of a question's answer distribution.
// The synthetic unanswered row has a nil Ordinal.
type AnswerShare struct {
	AcademicYearID *int64  `json:"id_academic_year"`
	Ordinal        *int64  `json:"ordinal"`
	IsCorrect      bool    `json:"is_correct"`
	Num            Numeric `json:"num"`
	Correct        Numeric `json:"correct"`
	Incorrect      Numeric `json:"incorrect"`
	Unanswered     Numeric `json:"unanswered"`

	// Respondents is the number of submitted responses behind the shares.
	Respondents int64 `json:"-"`
}

// Instance is one attempt at a test together with the test's availability window.
type Instance struct {
	ID            int64     `json:"id"`
	TestID        int64     `json:"id_test"`
	StudentID     int64     `json:"id_student"`
	StartedAt     Timestamp `json:"ts_started"`
	SubmittedAt   Timestamp `json:"ts_submitted"`
	Score         *Numeric  `json:"score"`
	ScorePerc     *Numeric  `json:"score_perc"`
	Passed        bool      `json:"passed"`
	AvailableFrom Timestamp `json:"ts_available_from"`
	AvailableTo   Timestamp `json:"ts_available_to"`
}

type ScoreBucket struct {
	Percentage   Numeric `json:"percentage"`
	StudentCount int64   `json:"student_count,string"`
}

type PassShare struct {
	Title      string  `json:"title"`
	Percentage float64 `json:"percentage"`
}

type Course struct {
	ID      int64  `json:"id"`
	Name    string `json:"course_name"`
	Acronym string `json:"course_acronym"`
}

type AcademicYear struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type ExamScores struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	TitleAbbrev string    `json:"title_abbrev"`
	Scores      ScoreList `json:"scores"`
}

type TestQuestion struct {
	QuestionID int64  `json:"id_question"`
	TypeName   string `json:"type_name"`
	TypeID     int64  `json:"id"`
}

type ScoreFrequency struct {
	UnroundedScore Numeric `json:"unrounded_score"`
	Score          Numeric `json:"score"`
	Count          int64   `json:"count,string"`
}
