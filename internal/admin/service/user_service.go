package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jevi-chat/console/internal/admin/domain"
	"github.com/jevi-chat/console/internal/upstream"
)

// UserService fronts the upstream user collection: filtered listings and
// deletion with a refreshed result.
type UserService struct {
	up     *upstream.Client
	notifs *NotificationService
}

// NewUserService creates a new user service
func NewUserService(up *upstream.Client, notifs *NotificationService) *UserService {
	return &UserService{up: up, notifs: notifs}
}

// List returns users matching the query and facet. The query matches
// username or email case-insensitively; the facet narrows by active state.
func (s *UserService) List(ctx context.Context, token, query string, facet domain.UserFacet) ([]upstream.User, error) {
	switch facet {
	case "", domain.FacetAll, domain.FacetActive, domain.FacetInactive:
	default:
		return nil, domain.ErrInvalidFacet
	}

	users, err := s.up.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]upstream.User, 0, len(users))
	for _, u := range users {
		if facet == domain.FacetActive && !u.IsActive {
			continue
		}
		if facet == domain.FacetInactive && u.IsActive {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Username), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered, nil
}

// Delete removes the user and returns the refreshed listing.
func (s *UserService) Delete(ctx context.Context, token, sessionID, userID string) ([]upstream.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if err := s.up.DeleteUser(ctx, token, userID); err != nil {
		return nil, err
	}

	s.notifs.Record(ctx, sessionID, domain.NotifUserDeleted,
		fmt.Sprintf("User %s deleted", userID))

	return s.up.ListUsers(ctx, token)
}
