package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jevi-chat/console/internal/admin/domain"
	"github.com/jevi-chat/console/internal/upstream"
)

func setupUsers(t *testing.T, backend http.HandlerFunc) *UserService {
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	up := upstream.New(server.URL, 5*time.Second, 5*time.Second)
	return NewUserService(up, setupNotifs(t))
}

func userListBackend(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodDelete {
		w.Write([]byte(`{}`))
		return
	}
	w.Write([]byte(`{"users": [
		{"id": "u1", "username": "alice", "email": "alice@corp.io", "is_active": true},
		{"id": "u2", "username": "Bob", "email": "bob@corp.io", "is_active": false},
		{"id": "u3", "username": "carol", "email": "carol@ALICE.dev", "is_active": true}
	]}`))
}

func TestUserService_List_Facets(t *testing.T) {
	svc := setupUsers(t, userListBackend)
	ctx := context.Background()

	all, err := svc.List(ctx, "tok", "", domain.FacetAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := svc.List(ctx, "tok", "", domain.FacetActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	inactive, err := svc.List(ctx, "tok", "", domain.FacetInactive)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "u2", inactive[0].ID)

	_, err = svc.List(ctx, "tok", "", domain.UserFacet("bogus"))
	assert.ErrorIs(t, err, domain.ErrInvalidFacet)
}

func TestUserService_List_Query(t *testing.T) {
	svc := setupUsers(t, userListBackend)
	ctx := context.Background()

	// Matches username or email, case-insensitive.
	matched, err := svc.List(ctx, "tok", "ALICE", domain.FacetAll)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "u1", matched[0].ID)
	assert.Equal(t, "u3", matched[1].ID)

	// Query and facet combine.
	matched, err = svc.List(ctx, "tok", "bob", domain.FacetActive)
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestUserService_Delete_ReturnsRefreshedList(t *testing.T) {
	svc := setupUsers(t, userListBackend)

	users, err := svc.Delete(context.Background(), "tok", "sess-1", "u2")
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
