// Package client talks to the tarot reading API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/youruser/tarotapp/internal/util"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	sessionHeader  = "X-Session-ID"
)

// APIError is a non-2xx reply from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Card struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
	Suit        string `json:"suit,omitempty"`
	Rank        string `json:"rank,omitempty"`
	ImagePath   string `json:"image_path"`
}

type Reading struct {
	Card           Card              `json:"card"`
	Meaning        string            `json:"meaning"`
	Context        string            `json:"context"`
	CardsRemaining int               `json:"cards_remaining"`
	Metadata       map[string]string `json:"metadata"`
	ReadingID      string            `json:"reading_id,omitempty"`
}

type DeckState struct {
	Status         string `json:"status"`
	CardsRemaining int    `json:"cards_remaining"`
	TotalCards     int    `json:"total_cards,omitempty"`
}

type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type Client struct {
	BaseURL   string
	HTTP      *http.Client
	SessionID string
}

func New(baseURL, sessionID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		HTTP:      util.NewHTTPClient(),
		SessionID: sessionID,
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	hc := c.HTTP
	if hc == nil {
		hc = util.NewHTTPClient()
	}
	var h http.Header
	if c.SessionID != "" {
		h = http.Header{}
		h.Set(sessionHeader, c.SessionID)
	}
	status, body, err := util.DoJSON(ctx, hc, method, c.BaseURL+path, payload, h)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		apiErr := &APIError{Status: status, Message: fmt.Sprintf("HTTP error! status: %d", status)}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			apiErr.Message = e.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) Shuffle(ctx context.Context) (DeckState, error) {
	var s DeckState
	err := c.do(ctx, http.MethodPost, "/shuffle", nil, &s)
	return s, err
}

// Draw takes the top card. An empty context lets the server pick its default.
func (c *Client) Draw(ctx context.Context, readingContext string) (Reading, error) {
	var r Reading
	err := c.do(ctx, http.MethodPost, "/draw", map[string]string{"context": readingContext}, &r)
	return r, err
}

func (c *Client) Reset(ctx context.Context) (DeckState, error) {
	var s DeckState
	err := c.do(ctx, http.MethodPost, "/reset", nil, &s)
	return s, err
}

func (c *Client) Status(ctx context.Context) (DeckState, error) {
	var s DeckState
	err := c.do(ctx, http.MethodGet, "/status", nil, &s)
	return s, err
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &h)
	return h, err
}
