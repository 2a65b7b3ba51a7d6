package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/notification-service/internal/api/handlers/notification"
	"github.com/aliskhannn/notification-service/internal/middlewares"
)

// New builds the HTTP routes of the notification service.
func New(handler *notification.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(middlewares.Recovery())

	e.POST("/notifications", handler.Create)
	e.GET("/users/:id/notifications", handler.GetUserNotifications)
	e.GET("/health", handler.Health)

	return e
}
