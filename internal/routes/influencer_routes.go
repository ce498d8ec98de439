package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/handlers"
)

func RegisterInfluencerRoutes(router chi.Router, deps Dependencies, v *validator.Validate, auth authMiddleware) {
	h := handlers.NewInfluencerHandler(deps.Influencers, v, deps.Logger)

	router.Route("/influencers", func(r chi.Router) {
		r.Use(auth)
		r.Post("/profile", h.CreateProfile)
		r.Get("/profile/me", h.GetMyProfile)
	})
}
