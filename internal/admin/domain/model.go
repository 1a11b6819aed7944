package domain

import (
	"errors"
	"time"
)

// MaxNotifications caps the per-admin notification feed. Older entries fall
// off the end when new ones arrive.
const MaxNotifications = 10

// Notification is one entry in an admin's activity feed. Feeds are ephemeral
// and scoped to the console session.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification types recorded by the admin services.
const (
	NotifProjectCreated = "project_created"
	NotifProjectDeleted = "project_deleted"
	NotifUserDeleted    = "user_deleted"
	NotifPDFUploaded    = "pdf_uploaded"
)

// UserFacet selects which slice of the user list a filter returns.
type UserFacet string

const (
	FacetAll      UserFacet = "all"
	FacetActive   UserFacet = "active"
	FacetInactive UserFacet = "inactive"
)

var (
	ErrInvalidFacet   = errors.New("invalid user filter")
	ErrEmptyProjectID = errors.New("project id is required")
	ErrNameRequired   = errors.New("project name is required")
	ErrNoFiles        = errors.New("no files provided")
)

// UploadResult reports the outcome of one file within a batch upload. A
// failed file never undoes files uploaded before it.
type UploadResult struct {
	Filename string `json:"filename"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}
