package report

// queries holds the statement behind each report (answerStats backs the
// answer distribution when no option rows match). Postgres runs against the live
// Edgar schema; the sqlite set mirrors it for offline mode, with integer
// arrays stored as JSON text.
type queries struct {
	answerDistribution string // $1 question, $2 academic year
	answerStats        string // $1 question, $2 academic year
	testInstances      string // $1 test, $2 course, $3 academic year
	scoreHistogram     string // $1 test, $2 course, $3 academic year
	passedFraction     string // $1 test, $2 academic year, $3 course
	courses            string
	academicYears      string
	examScores         string // $1 academic year, $2 course
	testQuestions      string // $1 test, $2 course, $3 academic year
	questionScores     string // $1 academic year, $2 question
}

// Responses without answers join with a NULL selection and count in no
// ordinal's bucket, so per-ordinal percentages plus the unanswered share add
// up to 100. respondents is carried for questions everyone left blank.
var postgresQueries = queries{
	answerDistribution: `
WITH question_stats AS (
	SELECT tiq.id_question,
	       SUM(CASE WHEN tiq.is_unanswered THEN 1 ELSE 0 END) AS unanswered_cnt,
	       COUNT(*) AS respondents
	  FROM test_instance_question tiq
	  JOIN test_instance ti ON tiq.id_test_instance = ti.id AND ti.ts_submitted IS NOT NULL
	 WHERE tiq.id_question = $1
	 GROUP BY tiq.id_question
)
SELECT t.id_academic_year,
       qa.ordinal,
       qa.is_correct,
       SUM(CASE WHEN tiq.answers_permutation[one_answer] = qa.ordinal THEN 1 ELSE 0 END) AS num,
       100. * SUM(CASE WHEN tiq.answers_permutation[one_answer] = qa.ordinal AND qa.is_correct THEN 1 ELSE 0 END) / qs.respondents AS correct,
       100. * SUM(CASE WHEN tiq.answers_permutation[one_answer] = qa.ordinal AND NOT qa.is_correct THEN 1 ELSE 0 END) / qs.respondents AS incorrect,
       100. * qs.unanswered_cnt / qs.respondents AS unanswered,
       qs.respondents
  FROM test_instance_question tiq
  JOIN test_instance ti ON tiq.id_test_instance = ti.id
  JOIN test t ON ti.id_test = t.id
  JOIN question_answer qa ON qa.id_question = tiq.id_question
  JOIN question_stats qs ON qs.id_question = tiq.id_question
  LEFT JOIN unnest(tiq.student_answers) AS one_answer ON TRUE
 WHERE t.id_academic_year = $2
 GROUP BY t.id_academic_year, qa.ordinal, qa.is_correct, qs.respondents, qs.unanswered_cnt
 ORDER BY qa.ordinal`,

	answerStats: `
SELECT COUNT(*) AS respondents,
       COALESCE(SUM(CASE WHEN tiq.is_unanswered THEN 1 ELSE 0 END), 0) AS unanswered_cnt
  FROM test_instance_question tiq
  JOIN test_instance ti ON tiq.id_test_instance = ti.id AND ti.ts_submitted IS NOT NULL
  JOIN test t ON ti.id_test = t.id
 WHERE tiq.id_question = $1 AND t.id_academic_year = $2`,

	testInstances: `
SELECT ti.id, ti.id_test, ti.id_student, ti.ts_started, ti.ts_submitted,
       ti.score, ti.score_perc, ti.passed,
       t.ts_available_from, t.ts_available_to
  FROM test_instance ti
  JOIN test t ON ti.id_test = t.id AND t.id = $1
 WHERE t.id_course = $2 AND t.id_academic_year = $3
 ORDER BY ti.id`,

	scoreHistogram: `
SELECT ROUND(perc, 2) AS percentage, COUNT(*) AS student_count
  FROM (SELECT GREATEST(0, ti.score_perc) AS perc
          FROM test_instance ti
          JOIN test t ON ti.id_test = t.id AND t.id = $1
         WHERE t.id_course = $2 AND t.id_academic_year = $3) AS result
 GROUP BY percentage
 ORDER BY percentage DESC`,

	passedFraction: `
SELECT ROUND(SUM(CASE WHEN ti.passed THEN 1.0 ELSE 0 END)::numeric / COUNT(ti.id_test), 2) AS passed
  FROM test_instance ti
  JOIN test t ON ti.id_test = t.id
 WHERE ti.id_test = $1 AND t.id_academic_year = $2 AND t.id_course = $3
 GROUP BY ti.id_test`,

	courses: `
SELECT id, course_name, course_acronym
  FROM course
 ORDER BY id DESC
 LIMIT 20`,

	academicYears: `
SELECT id, title
  FROM academic_year
 ORDER BY id DESC`,

	// array literal text; parsed by ScoreList
	examScores: `
SELECT t.id, t.title, t.title_abbrev,
       array_agg(ROUND(GREATEST(0, ti.score_perc), 2) ORDER BY ti.id)::text AS scores
  FROM test_instance ti
  JOIN test t ON ti.id_test = t.id
 WHERE t.id_academic_year = $1 AND t.id_course = $2
   AND t.title_abbrev <> ''
   AND t.title_abbrev IS NOT NULL
   AND NOT t.test_score_ignored
 GROUP BY t.id, t.title
 ORDER BY t.test_ordinal`,

	testQuestions: `
SELECT DISTINCT tiq.id_question, qt.type_name, qt.id
  FROM question q
  JOIN question_type qt ON q.id_question_type = qt.id
  JOIN test_instance_question tiq ON tiq.id_question = q.id
  JOIN test_instance ti ON tiq.id_test_instance = ti.id
  JOIN test t ON t.id = ti.id_test AND t.id = $1
 WHERE t.id_course = $2 AND t.id_academic_year = $3
 ORDER BY qt.id, tiq.id_question`,

	questionScores: `
SELECT tiq.score AS unrounded_score,
       ROUND(tiq.score, CASE
           WHEN MAX(tiq.score) OVER () <= 1 THEN 2
           WHEN MAX(tiq.score) OVER () <= 10 THEN 1
           ELSE 0
       END) AS score,
       COUNT(*) AS count
  FROM test_instance_question tiq
  JOIN question q ON tiq.id_question = q.id
  JOIN test_instance ti ON tiq.id_test_instance = ti.id
  JOIN test t ON t.id = ti.id_test
 WHERE t.id_academic_year = $1
   AND tiq.id_question = $2
   AND tiq.score IS NOT NULL
 GROUP BY tiq.score
 ORDER BY tiq.score ASC`,
}

// sqlite: GREATEST(0, x) becomes MAX(0, COALESCE(x, 0)) since the scalar MAX
// returns NULL on any NULL argument; arrays are 0-based JSON paths.
var sqliteQueries = queries{
	answerDistribution: `
WITH question_stats AS (
	SELECT tiq.id_question,
	       SUM(CASE WHEN tiq.is_unanswered THEN 1 ELSE 0 END) AS unanswered_cnt,
	       COUNT(*) AS respondents
	  FROM test_instance_question tiq
	  JOIN test_instance ti ON tiq.id_test_instance = ti.id AND ti.ts_submitted IS NOT NULL
	 WHERE tiq.id_question = ?1
	 GROUP BY tiq.id_question
)
SELECT t.id_academic_year,
       qa.ordinal,
       qa.is_correct,
       SUM(CASE WHEN json_extract(tiq.answers_permutation, '$[' || (sa.value - 1) || ']') = qa.ordinal THEN 1 ELSE 0 END) AS num,
       100.0 * SUM(CASE WHEN json_extract(tiq.answers_permutation, '$[' || (sa.value - 1) || ']') = qa.ordinal AND qa.is_correct THEN 1 ELSE 0 END) / qs.respondents AS correct,
       100.0 * SUM(CASE WHEN json_extract(tiq.answers_permutation, '$[' || (sa.value - 1) || ']') = qa.ordinal AND NOT qa.is_correct THEN 1 ELSE 0 END) / qs.respondents AS incorrect,
       100.0 * qs.unanswered_cnt / qs.respondents AS unanswered,
       qs.respondents
  FROM test_instance_question tiq
  JOIN test_instance ti ON tiq.id_test_instance = ti.id
  JOIN test t ON ti.id_test = t.id
  JOIN question_answer qa ON qa.id_question = tiq.id_question
  JOIN question_stats qs ON qs.id_question = tiq.id_question
  LEFT JOIN json_each(tiq.student_answers) AS sa ON TRUE
 WHERE t.id_academic_year = ?2
 GROUP BY t.id_academic_year, qa.ordinal, qa.is_correct, qs.respondents, qs.unanswered_cnt
 ORDER BY qa.ordinal`,

	answerStats: `
SELECT COUNT(*) AS respondents,
       COALESCE(SUM(CASE WHEN tiq.is_unanswered THEN 1 ELSE 0 END), 0) AS unanswered_cnt
  FROM test_instance_question tiq
  JOIN test_instance ti ON tiq.id_test_instance = ti.id AND ti.ts_submitted IS NOT NULL
  JOIN test t ON ti.id_test = t.id
 WHERE tiq.id_question = ?1 AND t.id_academic_year = ?2`,

	testInstances: `
SELECT ti.id, ti.id_test, ti.id_student, ti.ts_started, ti.ts_submitted,
       ti.score, ti.score_perc, ti.passed,
       t.ts_available_from, t.ts_available_to
  FROM test_instance ti
  JOIN test t ON ti.id_test = t.id AND t.id = ?1
 WHERE t.id_course = ?2 AND t.id_academic_year = ?3
 ORDER BY ti.id`,

	scoreHistogram: `
SELECT ROUND(perc, 2) AS percentage, COUNT(*) AS student_count
  FROM (SELECT MAX(0, COALESCE(ti.score_perc, 0)) AS perc
          FROM test_instance ti
          JOIN test t ON ti.id_test = t.id AND t.id = ?1
         WHERE t.id_course = ?2 AND t.id_academic_year = ?3) AS result
 GROUP BY percentage
 ORDER BY percentage DESC`,

	passedFraction: `
SELECT ROUND(SUM(CASE WHEN ti.passed THEN 1.0 ELSE 0 END) / COUNT(ti.id_test), 2) AS passed
  FROM test_instance ti
  JOIN test t ON ti.id_test = t.id
 WHERE ti.id_test = ?1 AND t.id_academic_year = ?2 AND t.id_course = ?3
 GROUP BY ti.id_test`,

	courses: `
SELECT id, course_name, course_acronym
  FROM course
 ORDER BY id DESC
 LIMIT 20`,

	academicYears: `
SELECT id, title
  FROM academic_year
 ORDER BY id DESC`,

	examScores: `
SELECT t.id, t.title, t.title_abbrev,
       json_group_array(ROUND(MAX(0, COALESCE(ti.score_perc, 0)), 2) ORDER BY ti.id) AS scores
  FROM test_instance ti
  JOIN test t ON ti.id_test = t.id
 WHERE t.id_academic_year = ?1 AND t.id_course = ?2
   AND t.title_abbrev <> ''
   AND t.title_abbrev IS NOT NULL
   AND NOT t.test_score_ignored
 GROUP BY t.id, t.title
 ORDER BY t.test_ordinal`,

	testQuestions: `
SELECT DISTINCT tiq.id_question, qt.type_name, qt.id
  FROM question q
  JOIN question_type qt ON q.id_question_type = qt.id
  JOIN test_instance_question tiq ON tiq.id_question = q.id
  JOIN test_instance ti ON tiq.id_test_instance = ti.id
  JOIN test t ON t.id = ti.id_test AND t.id = ?1
 WHERE t.id_course = ?2 AND t.id_academic_year = ?3
 ORDER BY qt.id, tiq.id_question`,

	questionScores: `
SELECT tiq.score AS unrounded_score,
       ROUND(tiq.score, CASE
           WHEN MAX(tiq.score) OVER () <= 1 THEN 2
           WHEN MAX(tiq.score) OVER () <= 10 THEN 1
           ELSE 0
       END) AS score,
       COUNT(*) AS count
  FROM test_instance_question tiq
  JOIN question q ON tiq.id_question = q.id
  JOIN test_instance ti ON tiq.id_test_instance = ti.id
  JOIN test t ON t.id = ti.id_test
 WHERE t.id_academic_year = ?1
   AND tiq.id_question = ?2
   AND tiq.score IS NOT NULL
 GROUP BY tiq.score
 ORDER BY tiq.score ASC`,
}
