package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"voice-notes-api-server/internal/config"
	"voice-notes-api-server/internal/handlers"
	"voice-notes-api-server/internal/middleware"
	"voice-notes-api-server/internal/store"
	"voice-notes-api-server/internal/utils"
)

// SetupRoutes configures the application routes. The stores are constructed
// once here and injected into the handlers; nothing holds the DB globally.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	utils.RegisterValidators()

	// Initialize stores and handlers
	patientStore := store.NewPatientStore(db)
	voiceNoteStore := store.NewVoiceNoteStore(db)
	summaryStore := store.NewSummaryStore(db)

	patientHandler := handlers.NewPatientHandler(patientStore)
	voiceNoteHandler := handlers.NewVoiceNoteHandler(voiceNoteStore, patientStore)
	summaryHandler := handlers.NewSummaryHandler(summaryStore, voiceNoteStore)
	healthHandler := handlers.NewHealthHandler(db)

	router.Use(middleware.RequestID(), middleware.RequestLogger())

	// Health probes stay public so orchestrators can reach them without a key
	health := router.Group("/health")
	{
		health.GET("", healthHandler.Health)
		health.GET("/ready", healthHandler.Ready)
	}

	// API routes (API key required)
	api := router.Group("/api")
	api.Use(middleware.RateLimit(cfg), middleware.APIKeyAuth(cfg))
	{
		patientRoutes := api.Group("/patients")
		{
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("", patientHandler.GetAllPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatient)
			patientRoutes.PATCH("/:id", patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", patientHandler.DeletePatient)
		}

		voiceNoteRoutes := api.Group("/voice-notes")
		{
			voiceNoteRoutes.POST("", voiceNoteHandler.CreateVoiceNote)
			voiceNoteRoutes.GET("", voiceNoteHandler.GetAllVoiceNotes)
			voiceNoteRoutes.GET("/:id", voiceNoteHandler.GetVoiceNote)
			voiceNoteRoutes.GET("/patient/:patientId", voiceNoteHandler.GetVoiceNotesByPatient)
			voiceNoteRoutes.PATCH("/:id", voiceNoteHandler.UpdateVoiceNote)
			voiceNoteRoutes.DELETE("/:id", voiceNoteHandler.DeleteVoiceNote)
		}

		summaryRoutes := api.Group("/summaries")
		{
			summaryRoutes.POST("", summaryHandler.CreateSummary)
			summaryRoutes.GET("", summaryHandler.GetAllSummaries)
			summaryRoutes.GET("/:id", summaryHandler.GetSummary)
			summaryRoutes.GET("/voice-note/:voiceNoteId", summaryHandler.GetSummaryByVoiceNote)
			summaryRoutes.PATCH("/:id", summaryHandler.UpdateSummary)
			summaryRoutes.DELETE("/:id", summaryHandler.DeleteSummary)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "Route not found")
	})
}
