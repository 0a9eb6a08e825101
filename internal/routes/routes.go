package routes

import (
	"github.com/celadonapp/celadon-backend/internal/handlers"
	"github.com/celadonapp/celadon-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/logout", handlers.Logout)
	r.Get("/api/auth/me", handlers.GetMe)

	// Journal entry routes
	r.Get("/api/entries", handlers.GetEntries)
	r.Get("/api/entries/postcard", handlers.GetPostcardLink)

	// Draft routes (the in-progress entry)
	r.Get("/api/draft", handlers.GetDraft)
	r.Post("/api/draft/photo", handlers.AttachDraftPhoto)
	r.Post("/api/draft/photo/upload", handlers.UploadDraftPhoto)
	r.Post("/api/draft/sticker", handlers.PlaceDraftSticker)

	// Goal routes
	r.Get("/api/goals", handlers.GetGoals)
	r.Post("/api/goals", handlers.CreateGoal)
	r.Put("/api/goals/toggle", handlers.ToggleGoal)
	r.Post("/api/goals/tasks", handlers.AddGoalTask)
	r.Put("/api/goals/tasks/toggle", handlers.ToggleGoalTask)
	r.Delete("/api/goals/tasks", handlers.RemoveGoalTask)

	// Sticker studio routes
	r.Get("/api/stickers", handlers.GetStickers)
	r.Post("/api/stickers/emoji", handlers.CreateEmojiSticker)
	r.Delete("/api/stickers", handlers.DeleteSticker)

	// Creativity note routes
	r.Get("/api/note", handlers.GetNote)
	r.Put("/api/note", handlers.PutNote)

	// Routes that reach the generative-language backend are rate limited
	// per IP (saving an entry triggers mood analysis, picking a location
	// triggers weather lookup, image stickers trigger subject detection).
	r.Group(func(r chi.Router) {
		r.Use(middleware.AIRateLimit)
		r.Post("/api/entries", handlers.SaveEntry)
		r.Post("/api/draft/location", handlers.SelectDraftLocation)
		r.Get("/api/locations/suggest", handlers.SuggestLocations)
		r.Post("/api/stickers/image", handlers.CreateImageSticker)
	})

	// WebSocket endpoint for the live journal feed and debounced
	// location typing.
	r.Get("/ws/feed", handlers.FeedWebSocket)
}
