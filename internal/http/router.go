package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/logger"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()
	// Unmatched paths, including trailing-slash variants, get the JSON 404.
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(IdentityMiddleware(cfg.DemoUserID))
	router.Use(RequestLogger(log))
	router.Use(CORSMiddleware())
	router.Use(OptionsMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	books := NewBooksController(cfg.Catalog)
	contentController := NewContentController(cfg.Content, log)
	progressController := NewProgressController(cfg.Progress, log)
	words := NewWordsController(cfg.Words, log)
	highlights := NewHighlightsController(cfg.Highlights, log)
	insights := NewInsightsController(cfg.Insights, log)

	api := router.Group(cfg.BasePath)
	{
		api.GET("/", Index)
		if cfg.BasePath != "" {
			api.GET("", Index)
		}

		api.GET("/books", books.ListBooks)
		api.GET("/books/:id/chapters", books.GetChapters)
		api.GET("/reading-plan", books.GetReadingPlan)

		api.GET("/content", contentController.GetContent)

		api.POST("/progress/complete", progressController.Complete)
		api.GET("/progress/summary", progressController.Summary)
		api.GET("/progress/calendar", progressController.Calendar)

		api.POST("/words", words.SaveWord)
		api.GET("/words", words.ListWords)

		api.POST("/highlights", highlights.CreateHighlight)
		api.GET("/highlights", highlights.ListHighlights)

		api.POST("/insights", insights.SaveInsight)
		api.GET("/insights", insights.GetInsights)

		if cfg.Tasks != nil {
			tasksController := NewTasksController(cfg.Tasks, log)
			api.POST("/tasks/import", tasksController.RunImport)
			api.GET("/tasks/:id", tasksController.GetTaskStatus)
		}
	}

	router.NoRoute(NotFoundHandler(cfg.BasePath))

	return router
}
