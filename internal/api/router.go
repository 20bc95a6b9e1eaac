package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/api/handlers"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/api/middleware"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/auth"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/config"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/db"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/job"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/search"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/pipeline"
)

func NewRouter(database *db.Database, jwtService *auth.JWTService, cfg *config.Config, pipe *pipeline.Pipeline, index *search.Manager, jobQueue *job.JobQueue) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	uploadHandler := handlers.NewUploadHandler(pipe, jobQueue, cfg.UploadPath, cfg.MaxUploadSize)
	searchHandler := handlers.NewSearchHandler(index)
	tracksHandler := handlers.NewTracksHandler(cfg.VTTPath)
	jobHandler := handlers.NewJobHandler(jobQueue)

	uploadLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/langs", handlers.Langs)
		r.With(uploadLimiter.Handler).Post("/upload", uploadHandler.Upload)
		r.Get("/search", searchHandler.Search)
		r.Get("/videos/{id}/tracks", tracksHandler.List)
		r.With(middleware.MaxBodySize(1 << 20)).Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			r.Get("/auth/me", authHandler.Me)

			r.Get("/jobs", jobHandler.ListJobs)
			r.Get("/jobs/{id}", jobHandler.GetJob)
			r.Post("/jobs/{id}/retry", jobHandler.RetryJob)
			r.Delete("/jobs/{id}", jobHandler.CancelJob)
		})
	})

	// Generated artifacts are served statically
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadPath))))
	r.Handle("/vtts/*", http.StripPrefix("/vtts/", http.FileServer(http.Dir(cfg.VTTPath))))

	return r
}
