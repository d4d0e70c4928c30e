package handlers

import (
	"net/http"

	"explore-with-me/internal/auth"
	"explore-with-me/internal/models"
	"explore-with-me/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	eventService *services.EventService
	adminKey     string
}

func NewAdminHandler(eventService *services.EventService, adminKey string) *AdminHandler {
	return &AdminHandler{
		eventService: eventService,
		adminKey:     adminKey,
	}
}

// IssueToken exchanges the configured admin key for a signed token
// POST /auth/token
func (h *AdminHandler) IssueToken(c *gin.Context) {
	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if req.Key != h.adminKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
		return
	}

	token, err := auth.GenerateToken(auth.RoleAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// SearchEvents lists events matching the admin filters
// GET /admin/events
func (h *AdminHandler) SearchEvents(c *gin.Context) {
	from, size := parsePaging(c)
	params := models.AdminEventSearchParams{
		UserIDs:     parseUintList(c.Query("users")),
		CategoryIDs: parseUintList(c.Query("categories")),
		RangeStart:  parseDateTime(c.Query("range_start")),
		RangeEnd:    parseDateTime(c.Query("range_end")),
		From:        from,
		Size:        size,
	}
	if statesStr := c.Query("states"); statesStr != "" {
		for _, state := range parseStringList(statesStr) {
			params.States = append(params.States, models.EventState(state))
		}
	}

	events, err := h.eventService.SearchAdminEvents(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// UpdateEvent applies an admin edit or moderation transition
// PATCH /admin/events/:eventId
func (h *AdminHandler) UpdateEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.UpdateAdminEvent(c.Request.Context(), eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}
