package services

import (
	"context"
	"fmt"
	"time"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/models"
	"explore-with-me/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	db   *gorm.DB
	repo *repository.Repository
}

func NewCommentService(db *gorm.DB, repo *repository.Repository) *CommentService {
	return &CommentService{db: db, repo: repo}
}

// AddComment creates a comment; only published events accept comments.
func (s *CommentService) AddComment(ctx context.Context, userID uint, eventID uuid.UUID, req *models.NewCommentRequest) (*models.Comment, error) {
	author, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("user with id=%d not found", userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("event with id=%s not found", eventID)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if event.State != models.EventStatePublished {
		return nil, apperr.Conflict("cannot comment on unpublished event")
	}

	comment := &models.Comment{
		Text:      req.Text,
		EventID:   eventID,
		AuthorID:  author.ID,
		Author:    author,
		CreatedOn: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) GetEventComments(ctx context.Context, eventID uuid.UUID, from, size int) ([]models.Comment, error) {
	if _, err := s.repo.GetEventByID(ctx, eventID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("event with id=%s not found", eventID)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("event_id = ?", eventID).
		Order("created_on DESC").
		Offset(from).
		Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, userID uint, commentID uint, req *models.NewCommentRequest) (*models.Comment, error) {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != userID {
		return nil, apperr.Forbidden("users can only update their own comments")
	}

	comment.Text = req.Text
	if err := s.db.WithContext(ctx).Save(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID uint, commentID uint) error {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != userID {
		return apperr.Forbidden("users can only delete their own comments")
	}

	return s.db.WithContext(ctx).Delete(comment).Error
}

func (s *CommentService) getComment(ctx context.Context, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).Where("id = ?", commentID).First(&comment).Error
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("comment with id=%d not found", commentID)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}
