package integration

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kdimtricp/plotshazam/internal/api"
	"github.com/kdimtricp/plotshazam/internal/database"
	"github.com/kdimtricp/plotshazam/internal/identification"
)

// stubProvider replaces the LLM backend so integration tests are
// deterministic and offline.
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

type TestServer struct {
	Server      *httptest.Server
	Provider    *stubProvider
	HistoryRepo *database.HistoryRepository
}

func setupTestServer(t *testing.T) *TestServer {
	t.Helper()

	// Templates and static assets resolve relative to the project root.
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(filepath.Join(originalDir, "../..")); err != nil {
		t.Fatalf("Failed to change to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalDir) })

	db, err := database.NewDB(database.Config{
		Type:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "integration.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	provider := &stubProvider{}
	historyRepo := database.NewHistoryRepository(db)

	app := &api.App{
		Ident: identification.NewService(provider, historyRepo),
	}

	server := httptest.NewServer(api.NewRouter(app))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:      server,
		Provider:    provider,
		HistoryRepo: historyRepo,
	}
}
