package report

import "context"

// Store runs the dashboard reports. Identifiers are passed through to the
// database untouched; a malformed one either fails the query or matches nothing.
type Store interface {
	// AnswerDistribution is the per-ordinal answer share of a question in an
	// academic year, with the unanswered row appended.
	AnswerDistribution(ctx context.Context, questionID, academicYearID string) ([]AnswerShare, error)
	TestInstances(ctx context.Context, testID, academicYearID, courseID string) ([]Instance, error)
	ScoreHistogram(ctx context.Context, testID, academicYearID, courseID string) ([]ScoreBucket, error)
	// PassRatio is empty when the test has no attempts.
	PassRatio(ctx context.Context, testID, academicYearID, courseID string) ([]PassShare, error)
	Courses(ctx context.Context) ([]Course, error)
	AcademicYears(ctx context.Context) ([]AcademicYear, error)
	ExamScores(ctx context.Context, courseID, academicYearID string) ([]ExamScores, error)
	TestQuestions(ctx context.Context, testID, academicYearID, courseID string) ([]TestQuestion, error)
	QuestionScores(ctx context.Context, questionID, academicYearID string) ([]ScoreFrequency, error)

	Ping(ctx context.Context) error
}
