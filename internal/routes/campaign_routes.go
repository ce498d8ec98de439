package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/handlers"
)

// RegisterCampaignRoutes mounts /campaigns, including the per-campaign
// application endpoints so the {id} subtree lives in one place.
func RegisterCampaignRoutes(router chi.Router, deps Dependencies, v *validator.Validate, auth authMiddleware) {
	campaigns := handlers.NewCampaignHandler(deps.Campaigns, v, deps.Logger)
	applications := handlers.NewApplicationHandler(deps.Applications, v, deps.Logger)

	router.Route("/campaigns", func(r chi.Router) {
		r.Get("/", campaigns.ListCampaigns)
		r.With(auth).Post("/", campaigns.CreateCampaign)
		r.With(auth).Get("/me/list", campaigns.ListMyCampaigns)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", campaigns.GetCampaign)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Patch("/close", campaigns.CloseCampaign)
				r.Post("/image", campaigns.UploadImage)
				r.Get("/applications", applications.ListForCampaign)
				r.Post("/select", applications.Select)
				r.Get("/application-status", applications.Status)
			})
		})
	})
}
