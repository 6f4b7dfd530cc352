package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/middleware"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/views"
)

// NewRouter wires the public menu routes.
func NewRouter(menuHandler *MenuHandler, allowOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.NavigationPath())
	router.SetHTMLTemplate(views.Templates())

	router.GET("/health", Health)

	public := router.Group("/menu/:slug")
	{
		public.GET("", menuHandler.Show)
		public.GET("/c/:cid", menuHandler.ShowCategory)
	}

	api := router.Group("/api")
	api.Use(middleware.CORSMiddleware(allowOrigins))
	{
		api.GET("/menu/:slug", menuHandler.ShowJSON)
	}

	router.NoRoute(NotFound)
	return router
}
