package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	q      queries
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	q := postgresQueries
	if driver == "sqlite" {
		q = sqliteQueries
	}
	return &SQLStore{db: db, driver: driver, q: q}
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) AnswerDistribution(ctx context.Context, questionID, academicYearID string) ([]AnswerShare, error) {
	out, err := collect(ctx, s.db, s.q.answerDistribution, func(rows *sql.Rows) (AnswerShare, error) {
		var a AnswerShare
		var ordinal int64
		err := rows.Scan(&a.AcademicYearID, &ordinal, &a.IsCorrect, &a.Num, &a.Correct, &a.Incorrect, &a.Unanswered, &a.Respondents)
		a.Ordinal = &ordinal
		return a, err
	}, questionID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("answer distribution: %w", err)
	}
	if len(out) > 0 {
		return AppendUnanswered(out, academicYearID), nil
	}

	// No answer options matched (e.g. a question without choices); the
	// responses still count as unanswered.
	var respondents, unanswered int64
	err = s.db.QueryRowContext(ctx, s.q.answerStats, questionID, academicYearID).Scan(&respondents, &unanswered)
	if err != nil {
		return nil, fmt.Errorf("answer stats: %w", err)
	}
	return UnansweredOnly(respondents, unanswered, academicYearID), nil
}

func (s *SQLStore) TestInstances(ctx context.Context, testID, academicYearID, courseID string) ([]Instance, error) {
	out, err := collect(ctx, s.db, s.q.testInstances, func(rows *sql.Rows) (Instance, error) {
		var in Instance
		err := rows.Scan(&in.ID, &in.TestID, &in.StudentID, &in.StartedAt, &in.SubmittedAt,
			&in.Score, &in.ScorePerc, &in.Passed, &in.AvailableFrom, &in.AvailableTo)
		return in, err
	}, testID, courseID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("test instances: %w", err)
	}
	return out, nil
}

func (s *SQLStore) ScoreHistogram(ctx context.Context, testID, academicYearID, courseID string) ([]ScoreBucket, error) {
	out, err := collect(ctx, s.db, s.q.scoreHistogram, func(rows *sql.Rows) (ScoreBucket, error) {
		var b ScoreBucket
		err := rows.Scan(&b.Percentage, &b.StudentCount)
		return b, err
	}, testID, courseID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("score histogram: %w", err)
	}
	return out, nil
}

func (s *SQLStore) PassRatio(ctx context.Context, testID, academicYearID, courseID string) ([]PassShare, error) {
	var passed float64
	err := s.db.QueryRowContext(ctx, s.q.passedFraction, testID, academicYearID, courseID).Scan(&passed)
	if errors.Is(err, sql.ErrNoRows) {
		return []PassShare{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pass ratio: %w", err)
	}
	return PassFail(passed), nil
}

func (s *SQLStore) Courses(ctx context.Context) ([]Course, error) {
	out, err := collect(ctx, s.db, s.q.courses, func(rows *sql.Rows) (Course, error) {
		var c Course
		err := rows.Scan(&c.ID, &c.Name, &c.Acronym)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("courses: %w", err)
	}
	return out, nil
}

func (s *SQLStore) AcademicYears(ctx context.Context) ([]AcademicYear, error) {
	out, err := collect(ctx, s.db, s.q.academicYears, func(rows *sql.Rows) (AcademicYear, error) {
		var y AcademicYear
		err := rows.Scan(&y.ID, &y.Title)
		return y, err
	})
	if err != nil {
		return nil, fmt.Errorf("academic years: %w", err)
	}
	return out, nil
}

func (s *SQLStore) ExamScores(ctx context.Context, courseID, academicYearID string) ([]ExamScores, error) {
	out, err := collect(ctx, s.db, s.q.examScores, func(rows *sql.Rows) (ExamScores, error) {
		var e ExamScores
		err := rows.Scan(&e.ID, &e.Title, &e.TitleAbbrev, &e.Scores)
		return e, err
	}, academicYearID, courseID)
	if err != nil {
		return nil, fmt.Errorf("exam scores: %w", err)
	}
	return out, nil
}

func (s *SQLStore) TestQuestions(ctx context.Context, testID, academicYearID, courseID string) ([]TestQuestion, error) {
	out, err := collect(ctx, s.db, s.q.testQuestions, func(rows *sql.Rows) (TestQuestion, error) {
		var q TestQuestion
		err := rows.Scan(&q.QuestionID, &q.TypeName, &q.TypeID)
		return q, err
	}, testID, courseID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("test questions: %w", err)
	}
	return out, nil
}

func (s *SQLStore) QuestionScores(ctx context.Context, questionID, academicYearID string) ([]ScoreFrequency, error) {
	out, err := collect(ctx, s.db, s.q.questionScores, func(rows *sql.Rows) (ScoreFrequency, error) {
		var f ScoreFrequency
		err := rows.Scan(&f.UnroundedScore, &f.Score, &f.Count)
		return f, err
	}, academicYearID, questionID)
	if err != nil {
		return nil, fmt.Errorf("question scores: %w", err)
	}
	return out, nil
}

// collect runs one query and scans every row. The connection goes back to
// the pool on every path, including scan errors.
func collect[T any](ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
