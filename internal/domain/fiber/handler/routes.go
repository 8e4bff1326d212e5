package handler

import "github.com/gofiber/fiber/v2"

type RouteRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

// Mount registers the workflow callback ahead of the shared limiter and the
// auth middleware, then the n8n and remaining routes behind both. The callback
// is guarded by its shared secret only and is never throttled.
func Mount(app *fiber.App, n8n *N8nHandler, limit, auth fiber.Handler, routes ...RouteRegistrar) {
	n8n.RegisterCallback(app)
	app.Use(limit)
	api := app.Group("", auth)
	n8n.RegisterRoutes(api)
	for _, r := range routes {
		r.RegisterRoutes(api)
	}
}
