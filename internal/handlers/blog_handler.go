package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assekura/internal/services"
)

type BlogHandler struct {
	Service *services.BlogService
}

func NewBlogHandler(service *services.BlogService) *BlogHandler {
	return &BlogHandler{Service: service}
}

// ListPosts returns published posts in the requested language.
// Category and full-text query filters are optional.
//
// @Summary      List blog posts
// @Tags         blog
// @Produce      json
// @Param        lang     query string false "language code (default de)"
// @Param        category query string false "filter by category"
// @Param        q        query string false "full-text search"
// @Success      200 {array} models.BlogPost
// @Router       /blog/posts [get]
func (h *BlogHandler) ListPosts(c *gin.Context) {
	lang := c.Query("lang")

	if q := c.Query("q"); q != "" {
		posts, err := h.Service.SearchPosts(q, lang)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	if category := c.Query("category"); category != "" {
		posts, err := h.Service.GetPostsByCategory(category, lang)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	posts, err := h.Service.GetAllPosts(lang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary      Get a post by slug
// @Tags         blog
// @Produce      json
// @Param        slug path  string true  "translation slug"
// @Param        lang query string false "language code (default de)"
// @Success      200 {object} models.BlogPost
// @Router       /blog/posts/{slug} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.Service.GetPostBySlug(c.Param("slug"), c.Query("lang"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      List blog categories
// @Tags         blog
// @Produce      json
// @Success      200 {array} string
// @Router       /blog/categories [get]
func (h *BlogHandler) ListCategories(c *gin.Context) {
	categories, err := h.Service.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, categories)
}
