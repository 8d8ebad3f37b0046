package tasks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-task-analyzer/internal/engine"
)

// testToday is a Friday.
var testToday = time.Date(2025, 11, 28, 12, 0, 0, 0, time.UTC)

func testEngine() *engine.Engine {
	e := engine.New()
	e.Now = func() time.Time { return testToday }
	return e
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v))
}

func dueIn(days int) string {
	return testToday.AddDate(0, 0, days).Format("2006-01-02")
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Parallel()

	body := `{
		"tasks": [
			{"title": "A", "due_date": "` + dueIn(1) + `", "estimated_hours": 1, "importance": 9, "dependencies": []},
			{"title": "B", "due_date": "` + dueIn(10) + `", "estimated_hours": 5, "importance": 3, "dependencies": [1]}
		],
		"strategy": "smart_balance"
	}`

	rr := postJSON(t, AnalyzeHandler(testEngine()), body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp AnalyzeResponse
	decodeBody(t, rr, &resp)

	assert.Equal(t, "smart_balance", resp.StrategyUsed)
	assert.Equal(t, 2, resp.TotalTasks)
	assert.False(t, resp.CustomWeightsApplied)
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "A", resp.Tasks[0].Title)
	assert.Greater(t, resp.Tasks[0].Score, resp.Tasks[1].Score)
	assert.Equal(t, engine.PriorityLow, resp.Tasks[1].PriorityLevel)
}

func TestAnalyzeEndpointDefaultsStrategy(t *testing.T) {
	t.Parallel()

	rr := postJSON(t, AnalyzeHandler(testEngine()), `{"tasks": []}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp AnalyzeResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "smart_balance", resp.StrategyUsed)
	assert.Equal(t, 0, resp.TotalTasks)
	assert.NotNil(t, resp.Tasks)
}

func TestAnalyzeEndpointInvalidJSON(t *testing.T) {
	t.Parallel()

	rr := postJSON(t, AnalyzeHandler(testEngine()), `{"tasks": [`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid json")
}

func TestAnalyzeEndpointErrorKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		kind string
	}{
		{
			name: "unknown strategy",
			body: `{"tasks": [], "strategy": "eisenhower"}`,
			kind: "InvalidStrategy",
		},
		{
			name: "custom without weights",
			body: `{"tasks": [], "strategy": "custom"}`,
			kind: "MissingWeights",
		},
		{
			name: "weights off the tolerance",
			body: `{"tasks": [], "strategy": "custom", "weights": {"urgency": 0.5, "importance": 0.5, "effort": 0.5, "dependencies": 0.5}}`,
			kind: "InvalidWeights",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			rr := postJSON(t, AnalyzeHandler(testEngine()), c.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var resp ErrorResponse
			decodeBody(t, rr, &resp)
			assert.Equal(t, c.kind, resp.Error)
			assert.NotEmpty(t, resp.Details)
		})
	}
}

func TestAnalyzeEndpointCustomWeights(t *testing.T) {
	t.Parallel()

	body := `{
		"tasks": [{"title": "only", "due_date": "` + dueIn(0) + `", "estimated_hours": 9, "importance": 1}],
		"strategy": "custom",
		"weights": {"urgency": 1.0, "importance": 0, "effort": 0, "dependencies": 0}
	}`

	rr := postJSON(t, AnalyzeHandler(testEngine()), body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp AnalyzeResponse
	decodeBody(t, rr, &resp)
	assert.True(t, resp.CustomWeightsApplied)
	assert.Equal(t, "custom", resp.StrategyUsed)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, 90.0, resp.Tasks[0].Score)
}

func TestSuggestEndpointTopThree(t *testing.T) {
	t.Parallel()

	body := `{
		"tasks": [
			{"title": "t1", "due_date": "` + dueIn(-1) + `", "estimated_hours": 1, "importance": 9},
			{"title": "t2", "due_date": "` + dueIn(1) + `", "estimated_hours": 2, "importance": 7},
			{"title": "t3", "due_date": "` + dueIn(3) + `", "estimated_hours": 3, "importance": 5},
			{"title": "t4", "due_date": "` + dueIn(20) + `", "estimated_hours": 8, "importance": 2},
			{"title": "t5", "due_date": "` + dueIn(30) + `", "estimated_hours": 9, "importance": 1}
		]
	}`

	rr := postJSON(t, SuggestHandler(testEngine()), body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SuggestResponse
	decodeBody(t, rr, &resp)

	assert.Equal(t, 5, resp.TotalAnalyzed)
	require.Len(t, resp.Suggestions, 3)
	for i, s := range resp.Suggestions {
		assert.Equal(t, i+1, s.Rank)
		assert.Equal(t, s.Task.Score, s.Score)
		assert.Contains(t, s.Reason, "Recommendation")
		assert.Contains(t, s.Reason, "Factors:")
	}
	assert.Equal(t, "t1", resp.Suggestions[0].Task.Title)
	assert.Contains(t, resp.Suggestions[0].Reason, "Start with this task immediately")
}

func TestSuggestEndpointFewerThanThree(t *testing.T) {
	t.Parallel()

	body := `{"tasks": [{"title": "solo", "due_date": "` + dueIn(2) + `", "estimated_hours": 1, "importance": 8}]}`

	rr := postJSON(t, SuggestHandler(testEngine()), body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SuggestResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, 1, resp.TotalAnalyzed)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, 1, resp.Suggestions[0].Rank)
}

func TestSuggestReasonUsesAnalysisClock(t *testing.T) {
	t.Parallel()

	// The engine reads the clock once per analysis; the reason text must be
	// derived from that same reading even if the clock moves on.
	eng := engine.New()
	calls := 0
	eng.Now = func() time.Time {
		calls++
		if calls == 1 {
			return testToday
		}
		return testToday.AddDate(0, 0, 10)
	}

	// Due the Monday after testToday's Friday: exactly 1 business day away.
	body := `{"tasks": [{"title": "monday", "due_date": "` + dueIn(3) + `", "estimated_hours": 1, "importance": 8}]}`

	rr := postJSON(t, SuggestHandler(eng), body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SuggestResponse
	decodeBody(t, rr, &resp)
	require.Len(t, resp.Suggestions, 1)
	assert.Contains(t, resp.Suggestions[0].Reason, "1 business day(s) left")
}

func TestSuggestEndpointPropagatesStrategyErrors(t *testing.T) {
	t.Parallel()

	rr := postJSON(t, SuggestHandler(testEngine()), `{"tasks": [], "strategy": "custom"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "MissingWeights", resp.Error)
}

func TestValidateEndpointCycle(t *testing.T) {
	t.Parallel()

	body := `{
		"tasks": [
			{"title": "a", "dependencies": [2]},
			{"title": "b", "dependencies": [3]},
			{"title": "c", "dependencies": [1]}
		]
	}`

	rr := postJSON(t, ValidateHandler(testEngine()), body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ValidateResponse
	decodeBody(t, rr, &resp)

	assert.True(t, resp.HasCircularDependencies)
	assert.False(t, resp.IsValid)
	assert.Equal(t, 1, resp.CycleCount)
	require.Len(t, resp.Cycles, 1)
	assert.Equal(t, []int{1, 2, 3, 1}, resp.Cycles[0])
	assert.Contains(t, resp.Message, "1 circular dependency cycle(s)")
}

func TestValidateEndpointClean(t *testing.T) {
	t.Parallel()

	body := `{
		"tasks": [
			{"title": "a"},
			{"title": "b", "dependencies": [1, 42]}
		]
	}`

	rr := postJSON(t, ValidateHandler(testEngine()), body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ValidateResponse
	decodeBody(t, rr, &resp)

	assert.False(t, resp.HasCircularDependencies)
	assert.True(t, resp.IsValid)
	assert.Empty(t, resp.Cycles)
	assert.Equal(t, []int{42}, resp.DanglingReferences)
	assert.Equal(t, "Dependencies are valid", resp.Message)
}
