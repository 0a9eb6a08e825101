package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/celadonapp/celadon-backend/internal/config"
	"github.com/celadonapp/celadon-backend/internal/database"
	"github.com/celadonapp/celadon-backend/internal/handlers"
	"github.com/celadonapp/celadon-backend/internal/models"
	"github.com/celadonapp/celadon-backend/internal/routes"
	"github.com/celadonapp/celadon-backend/internal/services"
	"github.com/celadonapp/celadon-backend/internal/store"
	"github.com/celadonapp/celadon-backend/pkg/ai"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Connect to Redis (sessions, cache, rate limiting, feed pub/sub)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Pick the persistent store backend
	var st store.Store
	switch cfg.StoreBackend {
	case "memory":
		st = store.NewMemoryStore()
		log.Println("⚠️  Using in-memory store; journal data is lost on restart")
	case "mongo":
		log.Printf("Connecting to MongoDB...")
		if err := database.ConnectMongo(cfg.MongoURI); err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer database.DisconnectMongo()
		st = store.NewMongoStore(database.DB)
	case "postgres":
		log.Printf("Connecting to PostgreSQL...")
		if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
			log.Fatal("Failed to connect to PostgreSQL:", err)
		}
		defer database.DisconnectPostgres()
		st = store.NewPostgresStore(database.PostgresDB)
	case "redis":
		st = store.NewRedisStore(database.RedisClient)
	default:
		log.Fatalf("Unknown STORE_BACKEND %q (want memory, redis, mongo or postgres)", cfg.StoreBackend)
	}
	log.Printf("✅ Store backend: %s", cfg.StoreBackend)

	// Initialize the analysis backend. Without an API key every analysis
	// answers with its stock fallback instead of calling out.
	var gen ai.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatal("Failed to initialize Gemini client:", err)
		}
		gen = client
		log.Printf("✅ Gemini analysis configured (model: %s)", cfg.GeminiModel)
	} else {
		log.Println("⚠️  WARNING: GEMINI_API_KEY not set. Mood, weather and location analysis will use fallbacks.")
	}
	analyzer := ai.NewAnalyzer(gen, cfg.GeminiModel)

	// Load domain state from the store
	state, err := services.NewState(context.Background(), st, analyzer)
	if err != nil {
		log.Fatal("Failed to load state:", err)
	}
	state.SetFeedPublisher(func(entry models.JournalEntry) {
		if err := services.PublishFeedEntry(context.Background(), entry); err != nil {
			log.Printf("failed to publish feed entry: %v", err)
		}
	})

	handlers.InitState(state)
	handlers.InitAnalyzer(analyzer)

	// Initialize Cloudinary service
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Uploaded photos will stay inline as data URIs")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Cloudinary credentials not found. Uploaded photos will stay inline as data URIs")
	}

	// Start the Redis feed subscriber for the WebSocket gateway
	services.StartFeedSubscriber(context.Background())

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  POST /api/auth/logout")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/entries")
	log.Println("  GET  /api/entries")
	log.Println("  GET  /api/entries/postcard")
	log.Println("  GET  /api/draft")
	log.Println("  POST /api/draft/photo")
	log.Println("  POST /api/draft/photo/upload")
	log.Println("  POST /api/draft/sticker")
	log.Println("  POST /api/draft/location")
	log.Println("  GET  /api/locations/suggest")
	log.Println("  GET  /api/goals")
	log.Println("  POST /api/goals")
	log.Println("  PUT  /api/goals/toggle")
	log.Println("  POST /api/goals/tasks")
	log.Println("  PUT  /api/goals/tasks/toggle")
	log.Println("  DELETE /api/goals/tasks")
	log.Println("  GET  /api/stickers")
	log.Println("  POST /api/stickers/emoji")
	log.Println("  POST /api/stickers/image")
	log.Println("  DELETE /api/stickers")
	log.Println("  GET  /api/note")
	log.Println("  PUT  /api/note")
	log.Println("  GET  /ws/feed")

	log.Printf("🚀 Celadon backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
