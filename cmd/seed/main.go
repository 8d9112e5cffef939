package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"atrium/internal/config"
	"atrium/internal/repository/postgres"
	postgresDocsys "atrium/internal/repository/postgres/docsystem"
	"atrium/internal/sizeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	models "atrium/internal/domain/models/docsystem"
)

// Fixed IDs keep the seed idempotent and give the frontend something
// stable to point at during development.
const (
	demoOwnerID   = "00000000-0000-0000-0000-000000000001"
	demoProjectID = "11111111-1111-1111-1111-111111111111"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	clearData := flag.Bool("clear-data", false, "Clear all folders and files (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		if err := clearProjectData(ctx, pool, tables, demoProjectID); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	if err := ensureDemoProject(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure demo project: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgresDocsys.NewFolderRepository(repoConfig)
	fileRepo := postgresDocsys.NewFileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	log.Println("⚠️  Clearing existing folders and files...")
	if err := clearProjectData(ctx, pool, tables, demoProjectID); err != nil {
		log.Printf("Warning: Could not clear data: %v", err)
	}

	log.Println("📝 Seeding demo folders and file metadata...")

	// All-or-nothing: a half-seeded project is worse than an empty one
	err = txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for _, sf := range getSeedFolders() {
			folder := &models.Folder{
				ProjectID: demoProjectID,
				Name:      sf.name,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := folderRepo.Create(txCtx, folder); err != nil {
				return err
			}

			for _, f := range sf.files {
				file := &models.File{
					ProjectID:       demoProjectID,
					FolderID:        folder.ID,
					DisplayName:     f.name,
					StorageFileName: uuid.New().String(),
					Size:            sizeutil.ParseSize(f.size),
					ContentType:     f.contentType,
					UploadedAt:      time.Now(),
					LastModified:    time.Now(),
				}
				if err := fileRepo.Create(txCtx, file); err != nil {
					return err
				}
			}
			log.Printf("✅ Created folder %q with %d files", sf.name, len(sf.files))
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("🎉 Seeding complete!")
	log.Println("ℹ️  Seeded file records are metadata only; no blobs exist until files are uploaded through the API")
}

// ensureDemoProject creates the demo project if it doesn't exist
func ensureDemoProject(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	query := `
		INSERT INTO ` + tables.Projects + ` (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING
	`
	desc := "Demo project for local development"
	_, err := pool.Exec(ctx, query, demoProjectID, demoOwnerID, "Reef Ecology Study", desc)
	return err
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\""); err != nil {
		return err
	}

	createProjects := `
		CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			owner_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createProjects); err != nil {
		return err
	}

	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(project_id, name)
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	createFiles := `
		CREATE TABLE IF NOT EXISTS ` + tables.Files + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			folder_id UUID NOT NULL REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			display_name VARCHAR(255) NOT NULL,
			storage_file_name TEXT NOT NULL,
			size BIGINT NOT NULL,
			content_type TEXT NOT NULL DEFAULT '',
			description TEXT,
			uploaded_at TIMESTAMPTZ DEFAULT NOW(),
			last_modified TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFiles); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_owner ON ` + tables.Projects + `(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_project ON ` + tables.Folders + `(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `files_folder ON ` + tables.Files + `(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `files_project ON ` + tables.Files + `(project_id)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Files,
		tables.Folders,
		tables.Projects,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearProjectData clears all files and folders for a project
func clearProjectData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, projectID string) error {
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Files+" WHERE project_id = $1", projectID); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Folders+" WHERE project_id = $1", projectID); err != nil {
		return err
	}

	return nil
}

type seedFile struct {
	name        string
	size        interface{} // bytes or a human-readable string, parsed by sizeutil
	contentType string
}

type seedFolder struct {
	name  string
	files []seedFile
}

func getSeedFolders() []seedFolder {
	return []seedFolder{
		{
			name: "Field Notes",
			files: []seedFile{
				{name: "day-one-observations.md", size: "12.5 KB", contentType: "text/markdown"},
				{name: "day-two-observations.md", size: "9.8 KB", contentType: "text/markdown"},
				{name: "species-checklist.csv", size: "3.2 KB", contentType: "text/csv"},
			},
		},
		{
			name: "Imaging",
			files: []seedFile{
				{name: "transect-a-overview.jpg", size: "2.4 MB", contentType: "image/jpeg"},
				{name: "coral-closeup.jpg", size: "3.1 MB", contentType: "image/jpeg"},
			},
		},
		{
			name: "Drafts",
			files: []seedFile{
				{name: "methods-section.docx", size: "84 KB", contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
			},
		},
	}
}
