package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Deepthi2006/aquasentry/internal/api"
	"github.com/Deepthi2006/aquasentry/internal/config"
	"github.com/Deepthi2006/aquasentry/internal/integration"
	"github.com/Deepthi2006/aquasentry/internal/integration/openai"
	"github.com/Deepthi2006/aquasentry/internal/repository"
	"github.com/Deepthi2006/aquasentry/internal/usecases"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting AquaSentry bot...")

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.Load()

	// Initialize repository
	repo, err := repository.NewJSONTankRepository(cfg.DataFile)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	rainfall := integration.NewRainfallScraper(cfg.RainfallURL)

	var engine *usecases.PredictionEngine
	var recommender usecases.RecommendationEnricher
	enrichment, err := openai.NewEnrichmentService()
	if err != nil {
		log.Printf("OpenAI enrichment disabled: %v", err)
		engine = usecases.NewPredictionEngine(nil, rainfall)
	} else {
		engine = usecases.NewPredictionEngine(enrichment, rainfall)
		recommender = enrichment
	}

	useCase := usecases.NewTankUseCase(repo, engine, recommender)

	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	// Initialize Telegram bot
	telegramBot, err := api.NewTelegramBot(cfg.TelegramBotToken, cfg.TelegramChatID, useCase)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	// Start the bot
	telegramBot.Start()
}
