package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/services"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/utils"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/validator"
)

type HandlerManager struct {
	evaluationHandler *EvaluationHandler
	catalogHandler    *CatalogHandler
	tokenParser       TokenParser
	logger            utils.Logger
}

func NewHandlerManager(
	evaluationService services.EvaluationService,
	catalogService services.CatalogService,
	importExportService services.ImportExportService,
	tokenParser TokenParser,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		evaluationHandler: NewEvaluationHandler(evaluationService, validator, logger),
		catalogHandler:    NewCatalogHandler(catalogService, importExportService, validator, logger),
		tokenParser:       tokenParser,
		logger:            logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(utils.LoggerMiddleware(hm.logger))
	router.Use(utils.ContextLogger(hm.logger))

	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(hm.tokenParser, hm.logger))
	{
		// Evaluation routes
		evaluations := v1.Group("/evaluations")
		{
			evaluations.POST("", hm.evaluationHandler.EvaluateSubmission)
			evaluations.POST("/questions/:question_id", hm.evaluationHandler.ScoreQuestion)
		}

		// Catalog routes
		catalogs := v1.Group("/catalogs")
		{
			catalogs.POST("", hm.catalogHandler.CreateCatalog)
			catalogs.GET("", hm.catalogHandler.ListCatalogs)
			catalogs.GET("/:catalog_id", hm.catalogHandler.GetCatalog)
			catalogs.PUT("/:catalog_id", hm.catalogHandler.UpdateCatalog)
			catalogs.DELETE("/:catalog_id", hm.catalogHandler.DeleteCatalog)

			// Lifecycle
			catalogs.POST("/:catalog_id/activate", hm.catalogHandler.ActivateCatalog)
			catalogs.POST("/:catalog_id/archive", hm.catalogHandler.ArchiveCatalog)

			// Question management
			catalogs.POST("/:catalog_id/questions", hm.catalogHandler.AddQuestions)
			catalogs.DELETE("/:catalog_id/questions/:question_id", hm.catalogHandler.RemoveQuestion)
			catalogs.GET("/:catalog_id/stats", hm.catalogHandler.GetCatalogStats)

			// Import / export
			catalogs.POST("/:catalog_id/import", hm.catalogHandler.ImportQuestions)
			catalogs.POST("/:catalog_id/export", hm.catalogHandler.ExportCatalog)
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "evaluation-service",
	})
}
