package handlers

import (
	"net/http"

	"explore-with-me/internal/models"
	"explore-with-me/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// AddComment creates a comment on a published event
// POST /users/:userId/comments/:eventId
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var req models.NewCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), userID, eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetEventComments lists comments for an event
// GET /events/:id/comments
func (h *CommentHandler) GetEventComments(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	from, size := parsePaging(c)

	comments, err := h.commentService.GetEventComments(c.Request.Context(), eventID, from, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// UpdateComment edits the author's own comment
// PATCH /users/:userId/comments/:commentId
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "commentId")
	if !ok {
		return
	}

	var req models.NewCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), userID, commentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes the author's own comment
// DELETE /users/:userId/comments/:commentId
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "commentId")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
