package routes

import (
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/educat/tutor_marketplace/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Setup registers every API route plus the realtime endpoint.
func Setup(app *fiber.App, h *handlers.Handler, hub *websocket.Hub, log *zap.Logger) {
	api := app.Group("/api/v1")

	AuthRoutes(api, h)
	ProfileRoutes(api, h)
	PublicRoutes(api, h)
	LessonRoutes(api, h)
	TeacherRoutes(api, h)
	StudentRoutes(api, h)
	AdminRoutes(api, h)
	UploadRoutes(api, h)

	app.Use("/ws", websocket.Upgrade)
	app.Get("/ws", websocket.Handler(hub, h.JWTSecret, log))
}
