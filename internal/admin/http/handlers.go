package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jevi-chat/console/internal/admin/domain"
	adminsvc "github.com/jevi-chat/console/internal/admin/service"
	"github.com/jevi-chat/console/internal/auth"
	"github.com/jevi-chat/console/internal/upstream"
)

// respondUpstreamError maps the upstream error taxonomy onto console
// responses. Upstream 401s surface as 401 with a redirect hint so the UI
// can send the admin back to login.
func respondUpstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required", "redirect": "/login"})
	case errors.Is(err, upstream.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin access required"})
	case errors.Is(err, upstream.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	case errors.Is(err, upstream.ErrValidation):
		var apiErr *upstream.APIError
		errors.As(err, &apiErr)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": apiErr.Message})
	case errors.Is(err, upstream.ErrUnreachable):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "backend unreachable"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
	}
}

func (h *Handler) getDashboard(c *gin.Context) {
	stats, err := h.stats.Dashboard(c.Request.Context(), auth.Token(c))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": stats})
}

func (h *Handler) getRealtimeStats(c *gin.Context) {
	stats, err := h.stats.Realtime(c.Request.Context(), auth.Token(c))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": stats})
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context(), auth.Token(c), c.Query("q"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects})
}

func (h *Handler) createProject(c *gin.Context) {
	var in upstream.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.projects.Create(c.Request.Context(), auth.Token(c), auth.SessionID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) updateProject(c *gin.Context) {
	var in upstream.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.projects.Update(c.Request.Context(), auth.Token(c), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) || errors.Is(err, domain.ErrEmptyProjectID) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) deleteProject(c *gin.Context) {
	projects, err := h.projects.Delete(c.Request.Context(), auth.Token(c), auth.SessionID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyProjectID) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects})
}

func (h *Handler) getEmbedCode(c *gin.Context) {
	projectID := strings.TrimSpace(c.Param("id"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing project id"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "embed_code": h.projects.EmbedSnippet(projectID)})
}

func (h *Handler) getChatHistory(c *gin.Context) {
	msgs, err := h.up.AdminChatHistory(c.Request.Context(), auth.Token(c), c.Param("id"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": msgs})
}

func (h *Handler) uploadPDF(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid multipart form"})
		return
	}

	headers := form.File["pdf"]
	files := make([]adminsvc.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "failed to read " + fh.Filename})
			return
		}
		defer f.Close()
		files = append(files, adminsvc.UploadFile{Filename: fh.Filename, Reader: f})
	}

	results, err := h.projects.UploadPDFs(c.Request.Context(), auth.Token(c), auth.SessionID(c), c.Param("id"), files)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFiles), errors.Is(err, domain.ErrEmptyProjectID):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		default:
			respondUpstreamError(c, err)
		}
		return
	}

	status := http.StatusOK
	for _, r := range results {
		if !r.OK {
			status = http.StatusMultiStatus
			break
		}
	}
	c.JSON(status, gin.H{"ok": status == http.StatusOK, "results": results})
}

func (h *Handler) listUsers(c *gin.Context) {
	facet := domain.UserFacet(c.DefaultQuery("status", "all"))
	users, err := h.users.List(c.Request.Context(), auth.Token(c), c.Query("q"), facet)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFacet) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": users})
}

func (h *Handler) deleteUser(c *gin.Context) {
	users, err := h.users.Delete(c.Request.Context(), auth.Token(c), auth.SessionID(c), c.Param("id"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": users})
}

func (h *Handler) listNotifications(c *gin.Context) {
	notifs, err := h.notifs.List(c.Request.Context(), auth.SessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notifications": notifs})
}

func (h *Handler) clearNotifications(c *gin.Context) {
	if err := h.notifs.Clear(c.Request.Context(), auth.SessionID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to clear notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
