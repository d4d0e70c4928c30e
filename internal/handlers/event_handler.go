package handlers

import (
	"net/http"

	"explore-with-me/internal/models"
	"explore-with-me/internal/services"
	"explore-with-me/internal/stats"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *services.EventService
	recorder     *stats.Recorder
}

func NewEventHandler(eventService *services.EventService, recorder *stats.Recorder) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		recorder:     recorder,
	}
}

// GetPublicEvents lists published events
// GET /events
func (h *EventHandler) GetPublicEvents(c *gin.Context) {
	from, size := parsePaging(c)
	params := models.EventSearchParams{
		Text:          c.Query("text"),
		CategoryIDs:   parseUintList(c.Query("categories")),
		RangeStart:    parseDateTime(c.Query("range_start")),
		RangeEnd:      parseDateTime(c.Query("range_end")),
		OnlyAvailable: c.Query("only_available") == "true",
		Sort:          c.DefaultQuery("sort", "EVENT_DATE"),
		From:          from,
		Size:          size,
	}
	if paidStr := c.Query("paid"); paidStr != "" {
		paid := paidStr == "true"
		params.Paid = &paid
	}

	events, err := h.eventService.PublicEvents(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	h.recorder.Record(c.Request.URL.Path, c.ClientIP())

	c.JSON(http.StatusOK, events)
}

// GetPublicEvent retrieves a published event by ID
// GET /events/:id
func (h *EventHandler) GetPublicEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.PublicEventByID(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.recorder.Record(c.Request.URL.Path, c.ClientIP())

	c.JSON(http.StatusOK, event)
}

// CreateEvent creates a new event for the user
// POST /users/:userId/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	var req models.NewEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetUserEvents lists the user's own events
// GET /users/:userId/events
func (h *EventHandler) GetUserEvents(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	from, size := parsePaging(c)

	events, err := h.eventService.GetUserEvents(c.Request.Context(), userID, from, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetUserEvent retrieves one of the user's own events
// GET /users/:userId/events/:eventId
func (h *EventHandler) GetUserEvent(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	event, err := h.eventService.GetUserEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateUserEvent applies the initiator's edit
// PATCH /users/:userId/events/:eventId
func (h *EventHandler) UpdateUserEvent(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.UpdateUserEvent(c.Request.Context(), userID, eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}
