// Package client implements the identification client state machine: it
// submits plot descriptions to the identification service and maps
// success or failure into renderable state (result, error message,
// history, loading and theme flags).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/kdimtricp/plotshazam/internal/models"
)

// ErrBusy is returned when Submit is called while another request is
// still in flight. The state layer enforces single-flight submissions,
// not just the UI.
var ErrBusy = errors.New("identification request already in flight")

// SubmitErrorMessage is the single user-facing notice for every failure
// category: network errors, non-2xx statuses and unusable bodies are not
// distinguished.
const SubmitErrorMessage = "Could not identify the movie right now. Please try again."

type identifyRequest struct {
	UserQuery string `json:"User_query"`
}

// Client holds the UI-facing state for one identification session.
// All methods are safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.Mutex
	result       *models.Result
	errorMessage string
	loading      bool
	darkMode     bool
	history      []models.HistoryEntry
	reqSeq       uint64
}

type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client talking to the service at baseURL. The default
// HTTP client has no timeout: a submission waits for the call to settle,
// bounded only by the platform and the caller's context.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends the plot to the identification service and updates state
// from the outcome. A blank plot is a silent no-op. A submission while
// another is in flight returns ErrBusy without touching state. Failures
// of the call itself are absorbed into the error message and the
// fallback result; Submit only errors on misuse.
func (c *Client) Submit(ctx context.Context, plot string) error {
	plot = strings.TrimSpace(plot)
	if plot == "" {
		return nil
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.loading = true
	c.errorMessage = ""
	c.reqSeq++
	seq := c.reqSeq
	c.mu.Unlock()

	result, err := c.identify(ctx, plot)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Only the outcome of the latest request may update state. With the
	// single-flight guard above this should always hold; the check keeps
	// a stale response from clobbering state if the guard ever changes.
	if seq != c.reqSeq {
		return nil
	}

	c.loading = false

	if err != nil {
		fallback := models.FallbackResult()
		c.result = &fallback
		c.errorMessage = SubmitErrorMessage
		return nil
	}

	c.result = &result
	c.history = append([]models.HistoryEntry{*models.NewHistoryEntry(plot, result)}, c.history...)
	return nil
}

func (c *Client) identify(ctx context.Context, plot string) (models.Result, error) {
	body, err := json.Marshal(identifyRequest{UserQuery: plot})
	if err != nil {
		return models.Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/identify", bytes.NewBuffer(body))
	if err != nil {
		return models.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Result{}, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Result{}, fmt.Errorf("identification service returned status %d", resp.StatusCode)
	}

	var result models.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Result{}, fmt.Errorf("failed to decode response: %w", err)
	}

	// Missing required fields take the same path as a transport failure.
	if strings.TrimSpace(result.MovieName) == "" || strings.TrimSpace(result.ReleaseDate) == "" {
		return models.Result{}, fmt.Errorf("response missing required fields")
	}

	result.ClampConfidence()

	return result, nil
}

// Result returns the current result, if any.
func (c *Client) Result() (models.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return models.Result{}, false
	}
	return *c.result, true
}

// Loading reports whether a submission is in flight.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ErrorMessage returns the notice from the last failed submission, or "".
func (c *Client) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMessage
}

// History returns a copy of the session history, newest first. Fallback
// results are not recorded.
func (c *Client) History() []models.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

// GaugeParts returns the confidence gauge breakdown for the current
// result. ok is false when no result is present.
func (c *Client) GaugeParts() (filled, remaining float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return 0, 0, false
	}
	filled, remaining = c.result.GaugeParts()
	return filled, remaining, true
}

// ToggleTheme flips the dark-mode flag and returns the new value.
func (c *Client) ToggleTheme() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.darkMode = !c.darkMode
	return c.darkMode
}

// DarkMode reports the current theme flag.
func (c *Client) DarkMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.darkMode
}

// CopyResult writes the current result as pretty-printed JSON to the
// clipboard. A no-op without a result; clipboard failures are silent.
func (c *Client) CopyResult(clipboard Clipboard) {
	c.mu.Lock()
	result := c.result
	c.mu.Unlock()

	if result == nil || clipboard == nil {
		return
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}

	_ = clipboard.WriteText(string(data))
}
