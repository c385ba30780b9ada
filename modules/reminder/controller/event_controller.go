package controller

import (
	"net/http"
	"strings"

	"eventrely-api/core/controller"
	"eventrely-api/core/errors"
	"eventrely-api/modules/reminder/domain"
	"eventrely-api/modules/reminder/dto"
	"eventrely-api/modules/reminder/service"
	"eventrely-api/modules/reminder/validator"

	"github.com/labstack/echo/v4"
)

// EventController handles event HTTP requests
type EventController struct {
	controller.BaseController
	CommandService service.CommandService
	QueryService   service.QueryService
}

// NewEventController creates a new controller
func NewEventController(commands service.CommandService, queries service.QueryService) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		CommandService: commands,
		QueryService:   queries,
	}
}

func (c *EventController) eventID(ctx echo.Context) (domain.EventID, *echo.HTTPError) {
	id, err := domain.ParseEventID(ctx.Param("id"))
	if err != nil {
		return domain.EventID{}, c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}
	return id, nil
}

func userID(ctx echo.Context) string {
	return strings.TrimSpace(ctx.Param("user_id"))
}

// CreateEvent handles POST /events
// @Summary Create event
// @Description Create a reminder event. The status always starts as pending.
// @Tags Events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} controller.SuccessResponse{data=dto.EventResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 500 {object} controller.ErrorResponse
// @Router /events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	requestData := new(dto.CreateEventRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateCreateEventRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}
	eventDate, _ := validator.ParseDateTime(requestData.EventDate)

	result, appErr := c.CommandService.CreateEvent(ctx.Request().Context(), service.CreateEventCommand{
		UserID:      strings.TrimSpace(requestData.UserID),
		Title:       requestData.Title,
		Description: requestData.Description,
		EventDate:   eventDate,
	})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Event created successfully")
}

// UpdateEvent handles PUT /events/:id
// @Summary Update event
// @Description Replace the title, description or date of a pending event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	eventID, httpErr := c.eventID(ctx)
	if httpErr != nil {
		return httpErr
	}

	requestData := new(dto.UpdateEventRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateUpdateEventRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	cmd := service.UpdateEventCommand{
		EventID:     eventID,
		Title:       requestData.Title,
		Description: requestData.Description,
	}
	if requestData.EventDate != nil {
		eventDate, _ := validator.ParseDateTime(*requestData.EventDate)
		cmd.EventDate = &eventDate
	}

	result, appErr := c.CommandService.UpdateEvent(ctx.Request().Context(), cmd)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// DeleteEvent handles DELETE /events/:id
// @Summary Delete event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 204
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	eventID, httpErr := c.eventID(ctx)
	if httpErr != nil {
		return httpErr
	}

	if appErr := c.CommandService.DeleteEvent(ctx.Request().Context(), service.DeleteEventCommand{EventID: eventID}); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteEvent handles POST /events/:id/complete
// @Summary Complete event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id}/complete [post]
func (c *EventController) CompleteEvent(ctx echo.Context) error {
	eventID, httpErr := c.eventID(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.CommandService.CompleteEvent(ctx.Request().Context(), service.CompleteEventCommand{EventID: eventID})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event completed successfully")
}

// CancelEvent handles POST /events/:id/cancel
// @Summary Cancel event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id}/cancel [post]
func (c *EventController) CancelEvent(ctx echo.Context) error {
	eventID, httpErr := c.eventID(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.CommandService.CancelEvent(ctx.Request().Context(), service.CancelEventCommand{EventID: eventID})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event cancelled successfully")
}

// GetEvent handles GET /events/:id
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventResponse}
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx echo.Context) error {
	eventID, httpErr := c.eventID(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.QueryService.GetEventByID(ctx.Request().Context(), service.GetEventByIDQuery{EventID: eventID})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetEventsByUser handles GET /events/user/:user_id
// @Summary List a user's events
// @Description Newest event date first
// @Tags Events
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventListResponse}
// @Router /events/user/{user_id} [get]
func (c *EventController) GetEventsByUser(ctx echo.Context) error {
	result, appErr := c.QueryService.GetEventsByUser(ctx.Request().Context(), service.GetEventsByUserQuery{UserID: userID(ctx)})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetEventsByDate handles GET /events/user/:user_id/date/:date
// @Summary List a user's events on a day
// @Description Events within the UTC calendar day, earliest first
// @Tags Events
// @Produce json
// @Param user_id path string true "User ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventListResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Router /events/user/{user_id}/date/{date} [get]
func (c *EventController) GetEventsByDate(ctx echo.Context) error {
	date, err := validator.ParseDate(ctx.Param("date"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date, expected YYYY-MM-DD")
	}

	result, appErr := c.QueryService.GetEventsByDate(ctx.Request().Context(), service.GetEventsByDateQuery{
		UserID: userID(ctx),
		Date:   date,
	})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetUpcomingEvents handles GET /events/user/:user_id/upcoming
// @Summary List a user's upcoming events
// @Description Pending events dated now or later, earliest first
// @Tags Events
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Maximum number of events (1-100, default 50)"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventListResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Router /events/user/{user_id}/upcoming [get]
func (c *EventController) GetUpcomingEvents(ctx echo.Context) error {
	var query dto.UpcomingQuery
	if err := ctx.Bind(&query); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	limit, validationResult := validator.ParseLimit(query.Limit)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid limit", validationResult)
	}

	result, appErr := c.QueryService.GetUpcomingEvents(ctx.Request().Context(), service.GetUpcomingEventsQuery{
		UserID: userID(ctx),
		Limit:  limit,
	})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
