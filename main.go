package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/statement-parser/client"
	"github.com/Aashish23092/statement-parser/config"
	"github.com/Aashish23092/statement-parser/handler"
	"github.com/Aashish23092/statement-parser/service"
	"github.com/Aashish23092/statement-parser/utils"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()
	utils.MinEvidenceScore = cfg.ClassifyMinScore

	// Initialize Tesseract client
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	extractionService := service.NewExtractionService(pdfProcessor, tesseractClient)

	// Initialize handler layer
	extractHandler := handler.NewExtractHandler(extractionService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory for file uploads
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Statement Parser",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		statements := api.Group("/statements")
		{
			statements.POST("/extract", extractHandler.ExtractText)
			statements.POST("/extract-file", extractHandler.ExtractFile)
		}
	}

	// Start server
	log.Printf("Starting Statement Parser Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
