package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional dependencies left nil in cfg skip their routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.Database, cfg.Store, cfg.Version)
	router.GET("/health", healthController.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := router.Group("/api")

	if cfg.Store != nil {
		phrasebookController := NewPhrasebookController(cfg.Store, cfg.Logger)
		api.GET("/status", phrasebookController.GetStatus)
		api.GET("/languages", phrasebookController.GetLanguages)
		api.GET("/categories", phrasebookController.GetCategories)
		api.GET("/categories/:id/count", phrasebookController.GetCategoryCount)
		api.GET("/categories/:id/phrases", phrasebookController.GetPhrases)
		api.GET("/phrases/:id/details", phrasebookController.GetPhraseDetails)
		api.GET("/dictionary", phrasebookController.GetDictionary)
		api.GET("/dictionary/search", phrasebookController.SearchDictionary)
	}

	// Always registered so clients get a 503 rather than a 404 without an API key
	translateController := NewTranslateController(cfg.Translator, cfg.Logger)
	api.GET("/translate", translateController.Translate)

	if cfg.Rebuilder != nil || cfg.TaskClient != nil {
		adminController := NewAdminController(cfg.Rebuilder, cfg.TaskClient, cfg.Logger)
		api.POST("/admin/rebuild", adminController.Rebuild)
	}

	if cfg.Scheduler != nil {
		var queue QueueState
		if cfg.TaskClient != nil {
			queue = cfg.TaskClient
		}
		refreshController := NewRefreshController(cfg.Scheduler, cfg.Sync, queue)
		api.GET("/admin/refresh", refreshController.Status)
		api.POST("/admin/refresh", refreshController.Run)
	}

	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
