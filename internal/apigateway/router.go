package apigateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"accuracy-eval-platform/backend/internal/jobmanagement"
)

const (
	serviceName    = "AI Accuracy Evaluator"
	serviceVersion = "1.0.0"
)

// SetupRouter initializes the main Gin router for the API gateway.
func SetupRouter(service *jobmanagement.EvaluationService) *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": serviceName + " API",
			"version": serviceVersion,
			"endpoints": gin.H{
				"evaluate": "/evaluate - POST endpoint for accuracy evaluation",
				"health":   "/health - Health check endpoint",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
		})
	})

	router.POST("/evaluate", jobmanagement.NewEvaluateHandler(service).Evaluate)

	return router
}

// corsMiddleware allows browser frontends on other origins to call the API
// and read the download headers.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Evaluation-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
