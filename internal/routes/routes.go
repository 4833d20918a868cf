package routes

import (
	"github.com/gin-gonic/gin"

	"assekura/internal/config"
	"assekura/internal/handlers"
	"assekura/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	cfg *config.Config,
	verifyHandler *handlers.VerifyHandler,
	blogHandler *handlers.BlogHandler,
	leadHandler *handlers.LeadHandler,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {

	// ---- public site API
	blog := r.Group("/blog")
	{
		blog.GET("/posts", blogHandler.ListPosts)
		blog.GET("/posts/:slug", blogHandler.GetPost)
		blog.GET("/categories", blogHandler.ListCategories)
	}

	// the funnel frontend carries a static bearer credential
	r.POST("/verify-phone", middleware.VerifyAuth(cfg.Auth.VerifyToken), verifyHandler.VerifyPhone)
	r.POST("/leads", leadHandler.Submit)

	// ---- admin area (JWT)
	r.POST("/admin/login", authHandler.Login)

	admin := r.Group("/admin", middleware.AdminAuth(cfg.Auth.JWTSecret))
	{
		admin.POST("/posts", adminHandler.CreatePost)
		admin.PUT("/posts/:id", adminHandler.UpdatePost)
		admin.DELETE("/posts/:id", adminHandler.DeletePost)
		admin.GET("/leads", adminHandler.ListLeads)
	}

	return r
}
