package router

import (
	"eventrely-api/modules/reminder/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

// NewEventRouter creates a new router
func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{
		EventController: eventController,
	}
}

// Setup registers event routes. They are public; there is no authentication.
func (r *EventRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	eventRoutes := v1.Group("/events")

	// Commands
	eventRoutes.POST("", r.EventController.CreateEvent)
	eventRoutes.PUT("/:id", r.EventController.UpdateEvent)
	eventRoutes.DELETE("/:id", r.EventController.DeleteEvent)
	eventRoutes.POST("/:id/complete", r.EventController.CompleteEvent)
	eventRoutes.POST("/:id/cancel", r.EventController.CancelEvent)

	// Queries
	eventRoutes.GET("/:id", r.EventController.GetEvent)
	eventRoutes.GET("/user/:user_id", r.EventController.GetEventsByUser)
	eventRoutes.GET("/user/:user_id/date/:date", r.EventController.GetEventsByDate)
	eventRoutes.GET("/user/:user_id/upcoming", r.EventController.GetUpcomingEvents)
}
