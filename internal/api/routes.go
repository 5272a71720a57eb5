package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Portfolio Service API
// @version 1.0
// @description GitHub profile, repositories, statistics and security news for a personal portfolio
// @contact.name API Support
// @contact.url http://github.com/Kamar-Folarin
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// SetupRouter configures the API routes
func SetupRouter(h *Handler, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), CORS())

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health)

		v1.GET("/profile", h.GetProfile)
		v1.GET("/stats", h.GetStats)

		repos := v1.Group("/repos")
		{
			repos.GET("", h.ListRepositories)
			repos.GET("/:name/languages", h.GetRepositoryLanguages)
		}

		portfolio := v1.Group("/portfolio")
		{
			portfolio.GET("", h.GetPortfolio)
			portfolio.POST("/refresh", h.RefreshPortfolio)
		}

		v1.GET("/projects", h.GetProjects)
		v1.GET("/articles", h.GetArticles)
		v1.DELETE("/cache", h.ClearCache)
	}

	return r
}
