package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yosef-segev/Seaborn-Web-Explorer/dataset"
	"github.com/yosef-segev/Seaborn-Web-Explorer/reports"
)

var manifestCSV = []byte(`survived,pclass,class,sex,age,fare,embarked
0,3,Third,male,22,7.25,S
1,1,First,female,38,71.2833,C
1,3,Third,female,26,7.925,S
1,1,First,female,35,53.1,S
0,3,Third,male,35,8.05,S
0,3,Third,male,,8.4583,Q
0,1,First,male,54,51.8625,S
1,2,Second,female,27,11.1333,S
`)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	table, err := dataset.ParseCSV(manifestCSV, "titanic")
	require.NoError(t, err)

	plotsDir := t.TempDir()
	runner, err := reports.NewRunner(table, plotsDir)
	require.NoError(t, err)

	server, err := NewServer(table, runner, plotsDir)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func postData(t *testing.T, ts *httptest.Server, form url.Values) string {
	t.Helper()
	resp, err := http.Post(ts.URL+"/data", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHomePage(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "titanic")
}

func TestQuestionsMenu(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/questions")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Please select a question from the menu")
	assert.Contains(t, body, "Overall Survival Rate")
}

func TestRunQuestion(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/questions/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Overall Survival Rate: 50.00%")
	assert.Contains(t, body, "/static/plots/survival_overall.png")

	// The chart is served back from the plots directory.
	status, _ = get(t, ts, "/static/plots/survival_overall.png")
	assert.Equal(t, http.StatusOK, status)
}

func TestUnknownQuestion(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/questions/42")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Question not found")
}

func TestDataForm(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/data")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `name="filter_col"`)
	assert.Contains(t, body, "contains") // operator menu
}

func TestDataQuery(t *testing.T) {
	ts := newTestServer(t)

	body := postData(t, ts, url.Values{
		"filter_col": {"sex"},
		"op":         {"=="},
		"value":      {"female"},
		"limit":      {"1000"},
	})

	assert.Contains(t, body, "<td>female</td>")
	assert.NotContains(t, body, "<td>male</td>")
	assert.Equal(t, 4, strings.Count(body, "<td>female</td>"))
	// Form state echoed back.
	assert.Contains(t, body, `value="female"`)
}

func TestDataQueryUnknownColumn(t *testing.T) {
	ts := newTestServer(t)

	body := postData(t, ts, url.Values{
		"columns": {"foo,bar"},
		"op":      {"=="},
		"limit":   {"20"},
	})
	assert.Contains(t, body, "Column(s) not found: foo, bar")
}

func TestDataQueryNoRowsMatched(t *testing.T) {
	ts := newTestServer(t)

	body := postData(t, ts, url.Values{
		"filter_col": {"age"},
		"op":         {">"},
		"value":      {"200"},
		"limit":      {"20"},
	})
	assert.Contains(t, body, "No rows matched your filter. Try a different value/operator.")
}

func TestDataQueryInvalidFilter(t *testing.T) {
	ts := newTestServer(t)

	body := postData(t, ts, url.Values{
		"filter_col": {"age"},
		"op":         {">"},
		"value":      {"notanumber"},
		"limit":      {"20"},
	})
	assert.Contains(t, body, "Invalid filter (operator/value mismatch).")
}

func TestStylesheet(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/static/style.css")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "body")
}
