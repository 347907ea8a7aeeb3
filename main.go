package main

import (
	"log"

	api "replydraft-backend/cmd/api"
	emaildomain "replydraft-backend/internal/email/domain"
	emailRepo "replydraft-backend/internal/email/repository"
	emailUsecase "replydraft-backend/internal/email/usecase"
	"replydraft-backend/pkg/config"
	"replydraft-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&emaildomain.StoredEmail{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	emailRepository := emailRepo.NewEmailRepository(db)

	// Initialize use cases (dependency injection)
	contextDefaults := emailUsecase.ContextConfig{
		MaxThreadEmails:    cfg.ContextMaxThreadEmails,
		MaxSenderEmails:    cfg.ContextMaxSenderEmails,
		SenderLookbackDays: cfg.ContextSenderLookbackDays,
		TotalTokenBudget:   cfg.ContextTotalTokenBudget,
	}
	contextUsecaseInstance := emailUsecase.NewContextUsecase(emailRepository, contextDefaults)

	// Initialize HTTP handler
	handler := api.NewHandler(contextUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
