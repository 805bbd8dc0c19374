package api

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kdimtricp/plotshazam/internal/identification"
)

type App struct {
	Ident          *identification.Service
	AllowedOrigins []string
}

type identifyRequest struct {
	UserQuery string `json:"User_query"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (app *App) HomeHandler(w http.ResponseWriter, r *http.Request) {
	tmplPath := filepath.Join("web", "templates", "index.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}

	data := struct {
		Title string
	}{
		Title: "PlotShazam",
	}

	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return
	}
}

// IdentifyHandler is the single API route: it accepts a plot description
// and returns the structured identification result.
func (app *App) IdentifyHandler(w http.ResponseWriter, r *http.Request) {
	var req identifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	plot := strings.TrimSpace(req.UserQuery)
	if plot == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "User_query is required"})
		return
	}

	result, err := app.Ident.Identify(r.Context(), plot)
	if err != nil {
		logrus.WithError(err).Error("identification failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "identification failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}
