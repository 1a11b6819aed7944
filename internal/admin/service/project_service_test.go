package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jevi-chat/console/internal/admin/domain"
	"github.com/jevi-chat/console/internal/admin/repository"
	"github.com/jevi-chat/console/internal/upstream"
)

func setupNotifs(t *testing.T) *NotificationService {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewNotificationService(repository.NewNotificationRepository(client))
}

func setupProjects(t *testing.T, backend http.HandlerFunc) *ProjectService {
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	up := upstream.New(server.URL, 5*time.Second, 5*time.Second)
	return NewProjectService(up, setupNotifs(t), "https://console.jevi.chat/")
}

func TestProjectService_List_Filter(t *testing.T) {
	svc := setupProjects(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"projects": [
			{"id": "p1", "name": "Support Bot", "description": "customer support"},
			{"id": "p2", "name": "Sales Assistant", "description": "lead intake"},
			{"id": "p3", "name": "internal", "description": "SUPPORT escalations"}
		]}`))
	})
	ctx := context.Background()

	all, err := svc.List(ctx, "tok", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Case-insensitive, matches name or description.
	matched, err := svc.List(ctx, "tok", "SUPPORT")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "p1", matched[0].ID)
	assert.Equal(t, "p3", matched[1].ID)

	none, err := svc.List(ctx, "tok", "nomatch")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProjectService_Create_Defaults(t *testing.T) {
	var received upstream.ProjectInput
	svc := setupProjects(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"project": {"id": "p1", "name": "New Bot"}}`))
	})

	p, err := svc.Create(context.Background(), "tok", "sess-1", upstream.ProjectInput{
		Name:    "  New Bot  ",
		AIModel: "gemini-pro",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	assert.Equal(t, "New Bot", received.Name)
	assert.Equal(t, 100, received.AIDailyLimit)
	assert.Equal(t, 3000, received.AIMonthlyLimit)

	// Explicit limits pass through untouched.
	_, err = svc.Create(context.Background(), "tok", "sess-1", upstream.ProjectInput{
		Name: "Other", AIDailyLimit: 5, AIMonthlyLimit: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, received.AIDailyLimit)
	assert.Equal(t, 50, received.AIMonthlyLimit)
}

func TestProjectService_Create_NameRequired(t *testing.T) {
	svc := setupProjects(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	})

	_, err := svc.Create(context.Background(), "tok", "sess-1", upstream.ProjectInput{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrNameRequired)
}

func TestProjectService_Delete_ReturnsRefreshedList(t *testing.T) {
	deleted := false
	svc := setupProjects(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`{"projects": [{"id": "p2", "name": "Survivor"}]}`))
	})

	projects, err := svc.Delete(context.Background(), "tok", "sess-1", "p1")
	require.NoError(t, err)
	assert.True(t, deleted)
	require.Len(t, projects, 1)
	assert.Equal(t, "p2", projects[0].ID)
}

func TestProjectService_EmbedSnippet(t *testing.T) {
	svc := setupProjects(t, func(w http.ResponseWriter, r *http.Request) {})

	want := `<iframe src="https://console.jevi.chat/embed/p1" width="400" height="600" frameborder="0"></iframe>`
	assert.Equal(t, want, svc.EmbedSnippet("p1"))
}

func TestProjectService_UploadPDFs_PartialFailure(t *testing.T) {
	svc := setupProjects(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("pdf")
		require.NoError(t, err)
		if header.Filename == "bad.pdf" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error": "not a pdf"}`))
			return
		}
		w.Write([]byte(`{"ok": true}`))
	})

	results, err := svc.UploadPDFs(context.Background(), "tok", "sess-1", "p1", []UploadFile{
		{Filename: "a.pdf", Reader: strings.NewReader("%PDF a")},
		{Filename: "bad.pdf", Reader: strings.NewReader("nope")},
		{Filename: "c.pdf", Reader: strings.NewReader("%PDF c")},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// The failed file does not stop or undo the others.
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Contains(t, results[1].Error, "not a pdf")
	assert.True(t, results[2].OK)
}

func TestProjectService_UploadPDFs_NoFiles(t *testing.T) {
	svc := setupProjects(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := svc.UploadPDFs(context.Background(), "tok", "sess-1", "p1", nil)
	assert.ErrorIs(t, err, domain.ErrNoFiles)
}
