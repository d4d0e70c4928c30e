package handlers

import (
	"net/http"

	"explore-with-me/internal/models"
	"explore-with-me/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	requestService *services.RequestService
}

func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

// CreateRequest submits a participation request
// POST /users/:userId/requests?event_id=...
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	eventID, err := uuid.Parse(c.Query("event_id"))
	if err != nil {
		respondBadRequest(c, "invalid event_id")
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), userID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// GetUserRequests lists the user's participation requests
// GET /users/:userId/requests
func (h *RequestHandler) GetUserRequests(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	requests, err := h.requestService.GetUserRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// CancelRequest cancels the user's own request
// PATCH /users/:userId/requests/:requestId/cancel
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(c, "requestId")
	if !ok {
		return
	}

	request, err := h.requestService.CancelRequest(c.Request.Context(), userID, requestID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// GetEventRequests lists the requests for the initiator's event
// GET /users/:userId/events/:eventId/requests
func (h *RequestHandler) GetEventRequests(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	requests, err := h.requestService.GetEventRequests(c.Request.Context(), userID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// UpdateEventRequests applies the initiator's bulk admission decision
// PATCH /users/:userId/events/:eventId/requests
func (h *RequestHandler) UpdateEventRequests(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.requestService.UpdateEventRequests(c.Request.Context(), userID, eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
