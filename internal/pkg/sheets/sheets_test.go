package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceUserRows(t *testing.T) {
	var cleared bool
	var written, appended [][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(valueRange{Values: [][]string{
				{"maria", "workday_2026-09-01", "{}"},
				{"pedro", "workday_2026-09-01", "{}"},
			}})
		case r.URL.Path == "/sheet-1/values/datos:clear":
			cleared = true
			w.Write([]byte("{}"))
		case r.Method == http.MethodPut:
			var body valueRange
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			written = body.Values
			w.Write([]byte("{}"))
		case r.URL.Path == "/sheet-1/values/datos:append":
			var body valueRange
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			appended = body.Values
			w.Write([]byte("{}"))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
		}
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL, "sheet-1", "datos")

	err := client.ReplaceUserRows(context.Background(), "maria", [][]string{
		{"maria", "workday_2026-09-02", `{"date":"2026-09-02"}`},
	})
	require.NoError(t, err)

	assert.True(t, cleared)
	// Other users' rows survive the rewrite.
	require.Len(t, written, 1)
	assert.Equal(t, "pedro", written[0][0])
	require.Len(t, appended, 1)
	assert.Equal(t, "workday_2026-09-02", appended[0][1])
}

func TestReadRowsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"denied"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL, "sheet-1", "datos")

	_, err := client.ReadRows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
