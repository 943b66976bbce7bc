package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WithTx starts a transaction, runs fn, and commits if fn returns nil.
// If fn returns an error, the transaction is rolled back and that error is returned.
func WithTx(ctx context.Context, d *DB, fn func(*sql.Tx) error) (err error) {
	if d == nil || d.SQL == nil {
		return errors.New("db: DB is nil")
	}
	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db: begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if e := tx.Commit(); e != nil {
			err = fmt.Errorf("db: commit: %w", e)
		}
	}()
	err = fn(tx)
	return
}

// SeedDemo fills an offline database with one course whose midterm has the
// two attempts (80.456 passed, 45.2 failed) used throughout the docs, a final
// exam with four graded attempts, and two tests the exam overview must skip.
func SeedDemo(ctx context.Context, d *DB) error {
	if d.Driver != DriverSQLite {
		return fmt.Errorf("db: seeding is only supported for %s, got %s", DriverSQLite, d.Driver)
	}
	return WithTx(ctx, d, func(tx *sql.Tx) error {
		for _, stmt := range demoFixture {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("db: seed: %w", err)
			}
		}
		return nil
	})
}

var demoFixture = []string{
	`INSERT OR REPLACE INTO academic_year (id, title) VALUES
	  (1, '2022/2023'),
	  (2, '2023/2024')`,

	`INSERT OR REPLACE INTO course (id, course_name, course_acronym) VALUES
	  (1, 'Baze podataka', 'BP'),
	  (2, 'Programiranje', 'PROG')`,

	`INSERT OR REPLACE INTO question_type (id, type_name) VALUES
	  (1, 'Single choice'),
	  (2, 'Free text')`,

	`INSERT OR REPLACE INTO test
	  (id, id_course, id_academic_year, title, title_abbrev, test_ordinal, ts_available_from, ts_available_to, test_score_ignored)
	 VALUES
	  (1, 1, 2, 'Midterm exam', 'MI', 1, '2024-04-10 08:00:00', '2024-04-10 10:00:00', 0),
	  (2, 1, 2, 'Final exam', 'ZI', 2, '2024-06-20 08:00:00', '2024-06-20 11:00:00', 0),
	  (3, 1, 2, 'Practice quiz', '', 0, NULL, NULL, 0),
	  (4, 1, 2, 'Bonus homework', 'BZ', 3, NULL, NULL, 1)`,

	`INSERT OR REPLACE INTO test_instance
	  (id, id_test, id_student, ts_started, ts_submitted, score, score_perc, passed)
	 VALUES
	  (1, 1, 101, '2024-04-10 08:01:00', '2024-04-10 09:10:00', 8.0456, 80.456, 1),
	  (2, 1, 102, '2024-04-10 08:02:00', '2024-04-10 09:40:00', 4.52, 45.2, 0),
	  (3, 2, 101, '2024-06-20 08:00:30', '2024-06-20 10:00:00', 18, 90, 1),
	  (4, 2, 102, '2024-06-20 08:01:00', '2024-06-20 10:30:00', -1, -5, 0),
	  (5, 2, 103, '2024-06-20 08:03:00', '2024-06-20 10:45:00', 12, 60, 1),
	  (6, 2, 104, '2024-06-20 08:04:00', '2024-06-20 10:50:00', 12, 60, 1),
	  (7, 3, 101, '2024-03-01 12:00:00', '2024-03-01 12:20:00', 5, 100, 1),
	  (8, 4, 101, '2024-05-01 12:00:00', '2024-05-01 12:30:00', 2, 50, 1)`,

	`INSERT OR REPLACE INTO question (id, id_question_type) VALUES
	  (1, 1),
	  (2, 2),
	  (3, 1)`,

	`INSERT OR REPLACE INTO question_answer (id, id_question, ordinal, is_correct) VALUES
	  (1, 1, 1, 0),
	  (2, 1, 2, 1),
	  (3, 1, 3, 0),
	  (4, 1, 4, 0),
	  (5, 3, 1, 1),
	  (6, 3, 2, 0)`,

	// question 1: instances 3 and 6 pick canonical answer 2 through their
	// permutations, instance 4 picks 3, instance 5 leaves it blank.
	`INSERT OR REPLACE INTO test_instance_question
	  (id, id_test_instance, id_question, score, is_correct, is_incorrect, is_partial, is_unanswered, student_answers, answers_permutation)
	 VALUES
	  (1, 3, 1, 1, 1, 0, 0, 0, '[1]', '[2,1,3,4]'),
	  (2, 4, 1, -0.25, 0, 1, 0, 0, '[3]', '[1,2,3,4]'),
	  (3, 5, 1, 0, 0, 0, 0, 1, '[]', '[3,4,1,2]'),
	  (4, 6, 1, 1, 1, 0, 0, 0, '[3]', '[4,3,2,1]'),
	  (5, 3, 2, 7.5, 0, 0, 1, 0, '[]', '[]'),
	  (6, 4, 2, 2.24, 0, 0, 1, 0, '[]', '[]'),
	  (7, 5, 2, 7.5, 0, 0, 1, 0, '[]', '[]'),
	  (8, 6, 2, 10, 1, 0, 0, 0, '[]', '[]'),
	  (9, 1, 3, 1, 1, 0, 0, 0, '[1]', '[1,2]'),
	  (10, 2, 3, NULL, 0, 0, 0, 1, '[]', '[2,1]')`,
}
