package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/handlers"
)

func RegisterAdvertiserRoutes(router chi.Router, deps Dependencies, v *validator.Validate, auth authMiddleware) {
	h := handlers.NewAdvertiserHandler(deps.Advertisers, v, deps.Logger)

	router.Route("/advertisers", func(r chi.Router) {
		r.Use(auth)
		r.Post("/profile", h.CreateProfile)
		r.Get("/profile/me", h.GetMyProfile)
	})
}
