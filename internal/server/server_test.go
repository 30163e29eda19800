package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, limit int64) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(Options{Addr: "unused", MaxInputBytes: limit}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, 1024)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestInspectJSON(t *testing.T) {
	ts := newTestServer(t, 1024)
	resp, err := http.Post(ts.URL+"/v1/inspect?name=people.csv", "text/csv",
		strings.NewReader("name,age\nann,30\nbob,\n"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var got struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Nulls []struct {
			Row    int    `json:"row"`
			Column string `json:"column"`
		} `json:"nulls"`
		ColumnsValid bool `json:"columns_valid"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "people.csv", got.Name)
	assert.True(t, got.ColumnsValid)
	require.Len(t, got.Nulls, 1)
	assert.Equal(t, 3, got.Nulls[0].Row)
	assert.Equal(t, "age", got.Nulls[0].Column)
}

func TestInspectFormats(t *testing.T) {
	ts := newTestServer(t, 1024)

	resp, err := http.Post(ts.URL+"/v1/inspect?format=text", "text/csv", strings.NewReader("a\n1\n"))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "MODULE 1: Column Count Check\nValid")
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/sample", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/html")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "<h2>Dataset Summary</h2>")
	assert.Contains(t, string(body), "<li>File: sample</li>")
}

func TestInspectHTMLEscapesInput(t *testing.T) {
	ts := newTestServer(t, 1024)
	u := ts.URL + "/v1/inspect?format=html&name=" + url.QueryEscape("<img src=x onerror=alert(2)>")
	resp, err := http.Post(u, "text/csv", strings.NewReader("<script>alert(1)</script>,b\n1,2\n"))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.NotContains(t, string(body), "<script>")
	assert.NotContains(t, string(body), "<img")
	assert.Contains(t, string(body), "&lt;script&gt;alert(1)&lt;/script&gt;: Integer")
	assert.Contains(t, string(body), "File: &lt;img src=x onerror=alert(2)&gt;")
}

func TestInspectErrors(t *testing.T) {
	ts := newTestServer(t, 8)
	cases := []struct {
		name   string
		url    string
		body   string
		status int
		code   string
	}{
		{"empty body", "/v1/inspect", "", http.StatusBadRequest, "empty_input"},
		{"too large", "/v1/inspect", "a,b,c,d,e\n1,2,3,4,5\n", http.StatusRequestEntityTooLarge, "input_too_large"},
		{"bad format", "/v1/inspect?format=xml", "a\n1\n", http.StatusBadRequest, "bad_format"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+c.url, "text/csv", strings.NewReader(c.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, c.status, resp.StatusCode)
			var er ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
			assert.Equal(t, c.code, er.Code)
		})
	}
}

func TestNegotiateFormat(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/sample?format=markdown", nil)
	r.Header.Set("Accept", "text/html")
	assert.Equal(t, "markdown", negotiateFormat(r))

	r = httptest.NewRequest(http.MethodGet, "/v1/sample", nil)
	r.Header.Set("Accept", "text/markdown")
	assert.Equal(t, "markdown", negotiateFormat(r))

	r = httptest.NewRequest(http.MethodGet, "/v1/sample", nil)
	assert.Equal(t, "json", negotiateFormat(r))
}
