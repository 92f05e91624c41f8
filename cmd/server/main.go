package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/resona-acoustics/resona/internal/api"
	"github.com/resona-acoustics/resona/internal/config"
	"github.com/resona-acoustics/resona/internal/evaluation"
	"github.com/resona-acoustics/resona/internal/repository/postgres"
	"github.com/resona-acoustics/resona/internal/storage"
	"github.com/resona-acoustics/resona/pkg/materials"
	"github.com/resona-acoustics/resona/pkg/models"
)

func main() {
	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to reach database")
	}

	s3Service, err := storage.NewS3Service(storage.S3Config{
		Bucket:    cfg.AWS.S3Bucket,
		Endpoint:  cfg.AWS.S3Endpoint,
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKeyID,
		SecretKey: cfg.AWS.SecretAccessKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
	}

	evaluationRepo := postgres.NewPostgresEvaluationRepository(db)
	materialRepo := postgres.NewPostgresMaterialRepository(db)

	ctx := context.Background()
	if cfg.Acoustics.MaterialsCSV != "" {
		if err := seedMaterials(ctx, materialRepo, cfg.Acoustics.MaterialsCSV); err != nil {
			log.Fatal().Err(err).Str("path", cfg.Acoustics.MaterialsCSV).Msg("Failed to seed material library")
		}
	}
	library, err := materialRepo.Library(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load material library")
	}

	evaluationSvc := evaluation.NewEvaluationService(evaluationRepo, s3Service, library, cfg.Acoustics.StandardEdition)

	// Create Chi router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	// Create Huma API
	humaConfig := huma.DefaultConfig("Resona API", "1.0.0")
	humaConfig.DocsPath = "/api/docs"
	humaAPI := humachi.New(router, humaConfig)

	// Register health endpoint
	huma.Register(humaAPI, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = "1.0.0"
		resp.Body.Time = time.Now()
		return resp, nil
	})

	api.RegisterRoutes(router, humaAPI, s3Service, evaluationRepo, materialRepo, evaluationSvc, cfg.Acoustics.StandardEdition)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting Resona API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// seedMaterials loads a vendor CSV into the materials table.
func seedMaterials(ctx context.Context, repo *postgres.PostgresMaterialRepository, path string) error {
	lib, err := materials.LoadCSV(path)
	if err != nil {
		return err
	}
	for _, m := range lib.List() {
		info := &models.MaterialInfo{
			ID:           m.ID,
			Name:         m.Name,
			Coefficients: models.CurvePoints(m.Coefficients),
		}
		if err := repo.Upsert(ctx, info); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(lib.List())).Str("path", path).Msg("Material library seeded")
	return nil
}

// zerologLogger returns a Chi middleware that logs HTTP requests using zerolog
func zerologLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote_ip", r.RemoteAddr).
					Int("status", ww.Status()).
					Dur("latency", time.Since(start)).
					Str("user_agent", r.UserAgent()).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
