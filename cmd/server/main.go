package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"atrium/internal/auth"
	"atrium/internal/config"
	"atrium/internal/handler"
	"atrium/internal/middleware"
	"atrium/internal/repository/postgres"
	postgresDocsys "atrium/internal/repository/postgres/docsystem"
	serviceDocsys "atrium/internal/service/docsystem"
	"atrium/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Storage limits (defaults, optionally overridden from YAML)
	limits, err := config.LoadStorageLimits(cfg.StorageLimitsFile)
	if err != nil {
		log.Fatalf("Failed to load storage limits: %v", err)
	}
	logger.Info("storage limits loaded",
		"max_folder_size", limits.MaxFolderSize,
		"max_file_size", limits.MaxFileSize,
	)

	// Create JWT verifier against the auth service's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create the blob store (S3 or any S3-compatible endpoint)
	blobStore, err := storage.NewS3Store(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgresDocsys.NewProjectRepository(repoConfig)
	folderRepo := postgresDocsys.NewFolderRepository(repoConfig)
	fileRepo := postgresDocsys.NewFileRepository(repoConfig)

	// Create services
	validator := serviceDocsys.NewResourceValidator(projectRepo, folderRepo)
	policy := serviceDocsys.NewCapacityPolicy(limits)
	projectService := serviceDocsys.NewProjectService(projectRepo, logger)
	folderService := serviceDocsys.NewFolderService(folderRepo, fileRepo, blobStore, policy, validator, cfg.S3PresignExpiry, logger)
	fileService := serviceDocsys.NewFileService(fileRepo, folderRepo, blobStore, policy, validator, cfg.S3PresignExpiry, logger)

	// Create handlers
	projectHandler := handler.NewProjectHandler(projectService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	fileHandler := handler.NewFileHandler(fileService, limits.MaxFileSize, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	// Folder routes
	mux.HandleFunc("GET /api/projects/{id}/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// File routes
	mux.HandleFunc("POST /api/folders/{id}/files", fileHandler.UploadFile)
	mux.HandleFunc("GET /api/files/{id}", fileHandler.GetFile)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)
	mux.HandleFunc("GET /api/files/{id}/download", fileHandler.Download)

	// Build middleware chain
	// Order: CORS → Recovery → Auth → Routes
	var httpHandler http.Handler = mux
	httpHandler = middleware.AuthMiddleware(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // uploads can be slow on bad links
		IdleTimeout:  60 * time.Second,
	}

	// Shut down cleanly on SIGINT/SIGTERM
	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	logger.Info("shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(timeoutCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
