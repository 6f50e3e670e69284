package main

import (
	"log"
	"os"

	"accuracy-eval-platform/backend/internal/apigateway"
	"accuracy-eval-platform/backend/internal/jobmanagement"
)

func main() {
	service := jobmanagement.NewEvaluationService()
	router := apigateway.SetupRouter(service)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}
	log.Printf("Starting server on :%s", serverPort)
	if err := router.Run(":" + serverPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
