package util

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	require.NoError(t, EnsureDir(dir))
	assert.NoError(t, EnsureDir(""))
}

func TestDoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "s1", r.Header.Get("X-Session-ID"))
		b, _ := io.ReadAll(r.Body)
		var in map[string]string
		require.NoError(t, json.Unmarshal(b, &in))
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"echo":"` + in["context"] + `"}`))
	}))
	defer srv.Close()

	h := http.Header{}
	h.Set("X-Session-ID", "s1")
	status, body, err := DoJSON(context.Background(), NewHTTPClient(), http.MethodPost, srv.URL, map[string]string{"context": "Love"}, h)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, status)
	assert.JSONEq(t, `{"echo":"Love"}`, string(body))
}

func TestDoJSON_NoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	status, _, err := DoJSON(context.Background(), NewHTTPClient(), http.MethodGet, srv.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}
