package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCLI_ShuffleAndEmptyDraw(t *testing.T) {
	var gotSession string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = r.Header.Get("X-Session-ID")
		switch r.URL.Path {
		case "/api/shuffle":
			_, _ = w.Write([]byte(`{"status":"shuffled","cards_remaining":78}`))
		case "/api/draw":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Deck is empty. Please shuffle to reset."}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out, err := runCLI(t, "shuffle", "--api", srv.URL+"/api", "--session", "cli-test")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Deck shuffled! 78 cards ready for reading.")
	assert.Equal(t, "cli-test", gotSession)

	out, err = runCLI(t, "draw", "--api", srv.URL+"/api", "--context", "Love")
	require.Error(t, err)
	assert.Contains(t, out, "❌ Deck is empty. Please shuffle to reset.")

	out, err = runCLI(t, "reset", "--api", srv.URL+"/api")
	require.Error(t, err)
	assert.Contains(t, out, "❌ Error: HTTP error! status: 404. Make sure the backend server is running.")
}

func TestCLI_TimeoutFlagReachesClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"operational","cards_remaining":78,"total_cards":78}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "status", "--api", srv.URL+"/api", "--timeout", "45s")
	require.NoError(t, err)
	assert.Contains(t, out, "78 of 78 cards remaining")
	assert.Equal(t, 45*time.Second, api.HTTP.Timeout)
}
