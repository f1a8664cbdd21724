package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	remaining := 78
	mux := http.NewServeMux()
	mux.HandleFunc("/api/shuffle", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		remaining = 78
		_, _ = w.Write([]byte(`{"status":"shuffled","cards_remaining":78}`))
	})
	mux.HandleFunc("/api/draw", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s1", r.Header.Get(sessionHeader))
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if remaining == 0 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Deck is empty. Please shuffle to reset."}`))
			return
		}
		remaining--
		_ = json.NewEncoder(w).Encode(map[string]any{
			"card":            map[string]string{"name": "FOOL", "display_name": "Fool", "type": "major", "image_path": "assets/images/major/FOOL.png"},
			"meaning":         "New beginnings",
			"context":         req["context"],
			"cards_remaining": remaining,
			"metadata":        map[string]string{"Yes/No": "Yes"},
		})
	})
	mux.HandleFunc("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"operational","cards_remaining":78,"total_cards":78}`))
	})
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy","service":"SBTATROT Backend","version":"1.0.0"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ShuffleAndDraw(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL+"/api/", "s1")
	ctx := context.Background()

	s, err := c.Shuffle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 78, s.CardsRemaining)

	r, err := c.Draw(ctx, "Love")
	require.NoError(t, err)
	assert.Equal(t, "Fool", r.Card.DisplayName)
	assert.Equal(t, "Love", r.Context)
	assert.Equal(t, 77, r.CardsRemaining)
	assert.Equal(t, "Yes", r.Metadata["Yes/No"])
}

func TestClient_APIErrorFromJSON(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL+"/api", "s1")
	ctx := context.Background()
	for i := 0; i < 78; i++ {
		_, err := c.Draw(ctx, "Soul")
		require.NoError(t, err)
	}

	_, err := c.Draw(ctx, "Soul")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Deck is empty. Please shuffle to reset.", apiErr.Error())
}

func TestClient_APIErrorFallback(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL+"/api", "")

	_, err := c.Reset(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "HTTP error! status: 502", apiErr.Message)
}

func TestClient_StatusAndHealth(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL+"/api", "")
	ctx := context.Background()

	s, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "operational", s.Status)
	assert.Equal(t, 78, s.TotalCards)

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
}

func TestClient_NetworkError(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL
	srv.Close()

	_, err := New(url+"/api", "").Status(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNew_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("", "").BaseURL)
}
