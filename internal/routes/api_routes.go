package routes

import (
	"github.com/go-chi/chi/v5"

	"skyward-mro/shopfloor/internal/api"
	"skyward-mro/shopfloor/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// This keeps API route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(deps.Services.Tokens)) // global: all routes below need a valid token

		// Authenticated group: any role on the floor
		v1.Group(func(authed chi.Router) {
			authed.Get("/parts", handlers.ListParts())
			authed.Get("/parts/{id}", handlers.GetPart())
			authed.Post("/parts", handlers.IntakePart())
			authed.Patch("/parts/{id}", handlers.UpdatePart())
			authed.Post("/parts/{id}/notes", handlers.AddNote())

			authed.Post("/parts/{id}/start", handlers.StartRepair())
			authed.Post("/parts/{id}/complete", handlers.CompleteRepair())
			authed.Post("/parts/{id}/scrap", handlers.ScrapPart())
			authed.Post("/parts/{id}/ship", handlers.ShipPart())

			authed.Get("/technicians", handlers.ListTechnicians())
			authed.Get("/technicians/{id}", handlers.GetTechnician())

			authed.Get("/notifications", handlers.ListNotifications())
			authed.Post("/notifications/{id}/read", handlers.MarkNotificationRead())

			// Inspector group: quality oversight, reporting
			authed.Group(func(inspector chi.Router) {
				inspector.Use(middleware.IsInspectorMiddleware())

				inspector.Get("/analytics/shop", handlers.ShopAnalytics())
				inspector.Get("/analytics/activity", handlers.RecentActivity())
				inspector.Get("/analytics/parts/{id}/history", handlers.PartHistory())
				inspector.Get("/analytics/technicians/{id}/activity", handlers.TechnicianActivity())

				inspector.Get("/reports/personnel", handlers.PersonnelReports())
				inspector.Get("/reports/top-performers", handlers.TopPerformers())
				inspector.Get("/reports/overall", handlers.OverallStats())

				inspector.Get("/snapshot", handlers.ExportSnapshot())

				// Manager group: mutating floor-wide operations
				inspector.Group(func(manager chi.Router) {
					manager.Use(middleware.IsManagerMiddleware())

					manager.Post("/parts/bulk/assign", handlers.BulkAssign())
					manager.Post("/parts/bulk/status", handlers.BulkStatus())
					manager.Post("/parts/auto-assign", handlers.AutoAssign())

					manager.Patch("/technicians/{id}/stats", handlers.UpdateTechnicianStats())
					manager.Post("/technicians/{id}/badges", handlers.AwardBadge())

					manager.Delete("/notifications", handlers.ClearNotifications())
					manager.Post("/notifications/sweep", handlers.TriggerSweep())

					manager.Post("/snapshot", handlers.ImportSnapshot())
					manager.Post("/snapshot/persist", handlers.PersistSnapshot())
				})
			})
		})
	})
}
