package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"assekura/internal/models"
	"assekura/internal/services"
)

type AdminHandler struct {
	Blog  *services.BlogService
	Leads *services.LeadService
}

func NewAdminHandler(blog *services.BlogService, leads *services.LeadService) *AdminHandler {
	return &AdminHandler{Blog: blog, Leads: leads}
}

type PostRequest struct {
	Category     string                   `json:"category" binding:"required"`
	CoverURL     string                   `json:"cover_url"`
	Published    bool                     `json:"published"`
	Translations []models.PostTranslation `json:"translations" binding:"required,min=1"`
}

// @Summary      Create a blog post
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PostRequest true "post with translations"
// @Success      201 {object} map[string]int
// @Router       /admin/posts [post]
func (h *AdminHandler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.BlogPost{
		Category:  req.Category,
		CoverURL:  req.CoverURL,
		Published: req.Published,
	}
	id, err := h.Blog.CreatePost(post, req.Translations)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary      Update a blog post
// @Tags         admin
// @Security     BearerAuth
// @Router       /admin/posts/{id} [put]
func (h *AdminHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.BlogPost{
		ID:        id,
		Category:  req.Category,
		CoverURL:  req.CoverURL,
		Published: req.Published,
	}
	if err := h.Blog.UpdatePost(post, req.Translations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Delete a blog post
// @Tags         admin
// @Security     BearerAuth
// @Router       /admin/posts/{id} [delete]
func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Blog.DeletePost(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      List submitted leads
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "page size (default 50)"
// @Param        offset query int false "offset"
// @Success      200 {array} models.Lead
// @Router       /admin/leads [get]
func (h *AdminHandler) ListLeads(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	leads, err := h.Leads.ListPaginated(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leads"})
		return
	}
	if leads == nil {
		leads = []*models.Lead{}
	}
	c.JSON(http.StatusOK, leads)
}
