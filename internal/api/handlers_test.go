package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kdimtricp/plotshazam/internal/identification"
	"github.com/kdimtricp/plotshazam/internal/models"
)

type stubProvider struct {
	output string
	err    error
}

func (s *stubProvider) Identify(ctx context.Context, plot string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

func (s *stubProvider) Name() string { return "stub" }

func newTestApp(provider *stubProvider) *App {
	return &App{
		Ident: identification.NewService(provider, nil),
	}
}

func TestIdentifyHandler_Success(t *testing.T) {
	provider := &stubProvider{
		output: `{"movie_name":"Interstellar","release_date":"2014","rationale":"Wormhole travel to save humanity.","confidence":0.92}`,
	}
	app := newTestApp(provider)

	body := strings.NewReader(`{"User_query":"A scientist travels through wormholes."}`)
	req := httptest.NewRequest("POST", "/api/identify", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.IdentifyHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}

	var result models.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.MovieName != "Interstellar" {
		t.Errorf("Expected movie Interstellar, got %s", result.MovieName)
	}
	if result.Confidence != 0.92 {
		t.Errorf("Expected confidence 0.92, got %f", result.Confidence)
	}
}

func TestIdentifyHandler_InvalidBody(t *testing.T) {
	app := newTestApp(&stubProvider{})

	req := httptest.NewRequest("POST", "/api/identify", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	app.IdentifyHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestIdentifyHandler_BlankQuery(t *testing.T) {
	app := newTestApp(&stubProvider{})

	for _, body := range []string{`{"User_query":""}`, `{"User_query":"   "}`, `{}`} {
		req := httptest.NewRequest("POST", "/api/identify", strings.NewReader(body))
		rec := httptest.NewRecorder()

		app.IdentifyHandler(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for body %s, got %d", body, rec.Code)
		}
	}
}

func TestIdentifyHandler_ProviderFailure(t *testing.T) {
	app := newTestApp(&stubProvider{err: errors.New("rate limited")})

	req := httptest.NewRequest("POST", "/api/identify", strings.NewReader(`{"User_query":"some plot"}`))
	rec := httptest.NewRecorder()

	app.IdentifyHandler(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("Expected non-empty error field")
	}
}

func TestIdentifyHandler_UnusableModelOutput(t *testing.T) {
	app := newTestApp(&stubProvider{output: "Sorry, no idea."})

	req := httptest.NewRequest("POST", "/api/identify", strings.NewReader(`{"User_query":"some plot"}`))
	rec := httptest.NewRecorder()

	app.IdentifyHandler(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", rec.Code)
	}
}

func TestPingHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/ping", nil)
	rec := httptest.NewRecorder()

	PingHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "pong" {
		t.Errorf("Expected body pong, got %s", rec.Body.String())
	}
}
