package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/sellquiccom/sellquicks-sub000/internal/ai"
	"github.com/sellquiccom/sellquicks-sub000/internal/database"
	"github.com/sellquiccom/sellquicks-sub000/internal/events"
	"github.com/sellquiccom/sellquicks-sub000/internal/handlers"
	"github.com/sellquiccom/sellquicks-sub000/internal/routes"
	"github.com/sellquiccom/sellquicks-sub000/internal/storage"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("CRITICAL ERROR: JWT_SECRET environment variable is not set.")
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. --- Image Storage ---
	cloudURL := os.Getenv("CLOUDINARY_URL")
	if cloudURL == "" {
		log.Fatal("CRITICAL ERROR: CLOUDINARY_URL environment variable is not set.")
	}
	store, err := storage.NewService(cloudURL)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// 3. --- Copy Generation ---
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		log.Fatal("CRITICAL ERROR: GEMINI_API_KEY environment variable is not set.")
	}
	copySvc, err := ai.NewCopyService(geminiKey)
	if err != nil {
		log.Fatalf("Failed to initialize copy generation: %v", err)
	}

	// --- Application Setup ---
	// Inject all dependencies into the Handlers struct.
	app := &handlers.Handlers{
		DB:      db,
		Storage: store,
		AI:      copySvc,
		Hub:     events.NewHub(),
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting SellQuic storefront API on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
