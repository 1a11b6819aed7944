package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jevi-chat/console/internal/admin/domain"
	"github.com/jevi-chat/console/internal/upstream"
)

// Defaults applied when a create request leaves usage limits unset.
const (
	defaultDailyLimit   = 100
	defaultMonthlyLimit = 3000
)

// ProjectService fronts the upstream project collection for the admin
// console: filtered listings, creation defaults, embed snippets and the
// knowledge-base upload flow.
type ProjectService struct {
	up            *upstream.Client
	notifs        *NotificationService
	publicBaseURL string
}

// NewProjectService creates a new project service
func NewProjectService(up *upstream.Client, notifs *NotificationService, publicBaseURL string) *ProjectService {
	return &ProjectService{
		up:            up,
		notifs:        notifs,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// List returns projects matching the query. Matching is case-insensitive
// over name and description; an empty query returns everything.
func (s *ProjectService) List(ctx context.Context, token, query string) ([]upstream.Project, error) {
	projects, err := s.up.ListProjects(ctx, token)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return projects, nil
	}

	filtered := make([]upstream.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Create validates the input, fills limit defaults and records the new
// project in the session feed.
func (s *ProjectService) Create(ctx context.Context, token, sessionID string, in upstream.ProjectInput) (*upstream.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if in.AIDailyLimit <= 0 {
		in.AIDailyLimit = defaultDailyLimit
	}
	if in.AIMonthlyLimit <= 0 {
		in.AIMonthlyLimit = defaultMonthlyLimit
	}

	p, err := s.up.CreateProject(ctx, token, in)
	if err != nil {
		return nil, err
	}

	s.notifs.Record(ctx, sessionID, domain.NotifProjectCreated,
		fmt.Sprintf("Project %q created", p.Name))
	return p, nil
}

// Update replaces the mutable fields of a project.
func (s *ProjectService) Update(ctx context.Context, token, projectID string, in upstream.ProjectInput) (*upstream.Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, domain.ErrEmptyProjectID
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrNameRequired
	}
	return s.up.UpdateProject(ctx, token, projectID, in)
}

// Delete removes the project and returns the refreshed listing so the
// caller renders the post-delete state in one round trip.
func (s *ProjectService) Delete(ctx context.Context, token, sessionID, projectID string) ([]upstream.Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, domain.ErrEmptyProjectID
	}
	if err := s.up.DeleteProject(ctx, token, projectID); err != nil {
		return nil, err
	}

	s.notifs.Record(ctx, sessionID, domain.NotifProjectDeleted,
		fmt.Sprintf("Project %s deleted", projectID))

	return s.up.ListProjects(ctx, token)
}

// EmbedSnippet renders the iframe tag site owners paste into their pages.
func (s *ProjectService) EmbedSnippet(projectID string) string {
	return fmt.Sprintf(`<iframe src="%s/embed/%s" width="400" height="600" frameborder="0"></iframe>`,
		s.publicBaseURL, projectID)
}

// UploadFile is one file within a batch upload.
type UploadFile struct {
	Filename string
	Reader   io.Reader
}

// UploadPDFs pushes each file to the project's knowledge base in order.
// Files are independent: a failure is recorded against its file and the
// batch keeps going, so completed uploads are never undone.
func (s *ProjectService) UploadPDFs(ctx context.Context, token, sessionID, projectID string, files []UploadFile) ([]domain.UploadResult, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, domain.ErrEmptyProjectID
	}
	if len(files) == 0 {
		return nil, domain.ErrNoFiles
	}

	results := make([]domain.UploadResult, 0, len(files))
	uploaded := 0
	for _, f := range files {
		res := domain.UploadResult{Filename: f.Filename, OK: true}
		if err := s.up.UploadPDF(ctx, token, projectID, f.Filename, f.Reader); err != nil {
			res.OK = false
			res.Error = err.Error()
		} else {
			uploaded++
		}
		results = append(results, res)
	}

	if uploaded > 0 {
		s.notifs.Record(ctx, sessionID, domain.NotifPDFUploaded,
			fmt.Sprintf("%d PDF(s) uploaded to project %s", uploaded, projectID))
	}
	return results, nil
}
