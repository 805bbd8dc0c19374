package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	if len(app.AllowedOrigins) == 0 {
		corsOpts.AllowedOrigins = []string{"*"}
	} else {
		corsOpts.AllowedOrigins = app.AllowedOrigins
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/", app.HomeHandler)
	r.Get("/ping", PingHandler)
	r.Post("/api/identify", app.IdentifyHandler)

	fileServer := http.FileServer(http.Dir("./web/static"))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	return r
}
