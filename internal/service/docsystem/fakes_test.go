package docsystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"atrium/internal/config"
	"atrium/internal/domain"
	models "atrium/internal/domain/models/docsystem"
	docsysSvc "atrium/internal/domain/services/docsystem"
)

// In-memory fakes for the repositories and the blob store. Call counts
// let tests assert that rejection paths make no remote calls at all.

type fakeProjectRepo struct {
	projects map[string]*models.Project // keyed by ID
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (r *fakeProjectRepo) Create(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = fmt.Sprintf("project-%d", len(r.projects)+1)
	}
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProjectRepo) List(ctx context.Context, ownerID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, p *models.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) SoftDelete(ctx context.Context, id, ownerID string) error {
	p, ok := r.projects[id]
	if !ok || p.OwnerID != ownerID {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(r.projects, id)
	return nil
}

type fakeFolderRepo struct {
	folders     map[string]*models.Folder
	createCalls int
	deleteCalls int
	failDelete  bool
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(ctx context.Context, f *models.Folder) error {
	r.createCalls++
	if f.ID == "" {
		f.ID = fmt.Sprintf("folder-%d", len(r.folders)+1)
	}
	stored := *f
	r.folders[f.ID] = &stored
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, f *models.Folder) error {
	if _, ok := r.folders[f.ID]; !ok {
		return fmt.Errorf("folder %s: %w", f.ID, domain.ErrNotFound)
	}
	stored := *f
	r.folders[f.ID] = &stored
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id string) error {
	r.deleteCalls++
	if r.failDelete {
		return fmt.Errorf("delete folder: connection reset")
	}
	if _, ok := r.folders[id]; !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	return nil
}

func (r *fakeFolderRepo) ListByProject(ctx context.Context, projectID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if f.ProjectID == projectID {
			out = append(out, *f)
		}
	}
	return out, nil
}

type fakeFileRepo struct {
	files         map[string]*models.File
	order         []string // insertion order for stable listings
	createCalls   int
	deleteCalls   int
	failCreate    bool
	failDeleteIDs map[string]bool
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{
		files:         make(map[string]*models.File),
		failDeleteIDs: make(map[string]bool),
	}
}

func (r *fakeFileRepo) Create(ctx context.Context, f *models.File) error {
	r.createCalls++
	if r.failCreate {
		return fmt.Errorf("create file record: permission denied")
	}
	if f.ID == "" {
		f.ID = fmt.Sprintf("file-%d", len(r.order)+1)
	}
	stored := *f
	r.files[f.ID] = &stored
	r.order = append(r.order, f.ID)
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFileRepo) Update(ctx context.Context, f *models.File) error {
	if _, ok := r.files[f.ID]; !ok {
		return fmt.Errorf("file %s: %w", f.ID, domain.ErrNotFound)
	}
	stored := *f
	r.files[f.ID] = &stored
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id string) error {
	r.deleteCalls++
	if r.failDeleteIDs[id] {
		return fmt.Errorf("delete file: connection reset")
	}
	if _, ok := r.files[id]; !ok {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(r.files, id)
	for i, fid := range r.order {
		if fid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	var out []models.File
	for _, id := range r.order {
		if f, ok := r.files[id]; ok && f.FolderID == folderID {
			out = append(out, *f)
		}
	}
	return out, nil
}

type fakeBlobStore struct {
	objects      map[string][]byte
	putCalls     int
	deleteCalls  int
	presignCalls int
	failDelete   bool // simulate the store erroring on delete (e.g. object already gone)
	failPresign  bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (b *fakeBlobStore) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	b.putCalls++
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	b.objects[key] = data
	return nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, key string) error {
	b.deleteCalls++
	if b.failDelete {
		return fmt.Errorf("delete from S3: NoSuchKey")
	}
	delete(b.objects, key)
	return nil
}

func (b *fakeBlobStore) PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	b.presignCalls++
	if b.failPresign {
		return "", fmt.Errorf("presign URL: endpoint unreachable")
	}
	return "https://blobs.example.com/" + key, nil
}

// env wires the services against the in-memory fakes with one project
// ("project-1", owned by "user-1") and one empty folder ("folder-1").
type env struct {
	projects *fakeProjectRepo
	folders  *fakeFolderRepo
	files    *fakeFileRepo
	blobs    *fakeBlobStore
	policy   *CapacityPolicy

	folderSvc docsysSvc.FolderService
	fileSvc   docsysSvc.FileService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		projects: newFakeProjectRepo(),
		folders:  newFakeFolderRepo(),
		files:    newFakeFileRepo(),
		blobs:    newFakeBlobStore(),
		policy: NewCapacityPolicy(config.StorageLimits{
			MaxFolderSize: config.DefaultMaxFolderSize,
			MaxFileSize:   config.DefaultMaxFileSize,
		}),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := NewResourceValidator(e.projects, e.folders)
	e.folderSvc = NewFolderService(e.folders, e.files, e.blobs, e.policy, validator, 15*time.Minute, logger)
	e.fileSvc = NewFileService(e.files, e.folders, e.blobs, e.policy, validator, 15*time.Minute, logger)

	ctx := context.Background()
	if err := e.projects.Create(ctx, &models.Project{ID: "project-1", OwnerID: "user-1", Name: "Coral Reef Survey"}); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	if err := e.folders.Create(ctx, &models.Folder{ID: "folder-1", ProjectID: "project-1", Name: "Field Notes"}); err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	return e
}

// upload pushes size bytes into folder-1 as user-1 and fails the test on error.
func (e *env) upload(t *testing.T, displayName string, size int64) *docsysSvc.UploadResult {
	t.Helper()

	res, err := e.fileSvc.UploadFile(context.Background(), &docsysSvc.UploadFileRequest{
		UserID:      "user-1",
		FolderID:    "folder-1",
		DisplayName: displayName,
		ContentType: "application/octet-stream",
		Content:     bytes.NewReader(make([]byte, size)),
		Size:        size,
	})
	if err != nil {
		t.Fatalf("UploadFile(%q, %d bytes): %v", displayName, size, err)
	}
	return res
}
