package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric_MarshalsAsString(t *testing.T) {
	b, err := json.Marshal(ScoreBucket{Percentage: 80.46, StudentCount: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"percentage":"80.46","student_count":"1"}`, string(b))
}

func TestNumeric_StringDropsFloatNoise(t *testing.T) {
	assert.Equal(t, "33.3333333333333", Numeric(100.0/3).String())
	assert.Equal(t, "0.3", Numeric(0.1+0.2).String())
	assert.Equal(t, "80.46", Numeric(80.46).String())
	assert.Equal(t, "-0.25", Numeric(-0.25).String())
	assert.Equal(t, "0.0000001", Numeric(1e-7).String())
	assert.Equal(t, "100", Numeric(100).String())

	b, err := json.Marshal(AnswerShare{Correct: Numeric(100.0 / 3)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"correct":"33.3333333333333"`)
}

func TestScoreList_ScanPostgresArray(t *testing.T) {
	var l ScoreList
	require.NoError(t, l.Scan("{80.46,45.20,0}"))
	assert.Equal(t, ScoreList{80.46, 45.2, 0}, l)

	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `["80.46","45.2","0"]`, string(b))
}

func TestScoreList_ScanJSONArray(t *testing.T) {
	var l ScoreList
	require.NoError(t, l.Scan([]byte("[90.0,0.0,60.0]")))
	assert.Equal(t, ScoreList{90, 0, 60}, l)
}

func TestScoreList_ScanNilAndGarbage(t *testing.T) {
	var l ScoreList
	require.NoError(t, l.Scan(nil))
	assert.NotNil(t, l)
	assert.Empty(t, l)

	assert.Error(t, l.Scan("[1,"))
	assert.Error(t, l.Scan(42))
}

func TestTimestamp_Scan(t *testing.T) {
	want := time.Date(2024, 4, 10, 8, 1, 0, 0, time.UTC)

	var ts Timestamp
	require.NoError(t, ts.Scan(want))
	assert.True(t, ts.Valid)
	assert.True(t, want.Equal(ts.Time))

	require.NoError(t, ts.Scan("2024-04-10 08:01:00"))
	assert.True(t, want.Equal(ts.Time))

	require.NoError(t, ts.Scan([]byte(`"2024-04-10T08:01:00Z"`)))
	assert.True(t, want.Equal(ts.Time))

	require.NoError(t, ts.Scan(nil))
	assert.False(t, ts.Valid)

	assert.Error(t, ts.Scan("yesterday"))
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(Timestamp{Time: time.Date(2024, 6, 20, 8, 0, 30, 0, time.UTC), Valid: true})
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-20T08:00:30Z"`, string(b))
}
