package services

import (
	"context"
	"fmt"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/models"
	"explore-with-me/internal/repository"

	"gorm.io/gorm"
)

type CompilationService struct {
	db    *gorm.DB
	repo  *repository.Repository
	stats *StatsService
}

func NewCompilationService(db *gorm.DB, repo *repository.Repository, stats *StatsService) *CompilationService {
	return &CompilationService{db: db, repo: repo, stats: stats}
}

func (s *CompilationService) CreateCompilation(ctx context.Context, req *models.NewCompilationRequest) (*models.CompilationResponse, error) {
	events, err := s.repo.GetEventsByIDs(ctx, req.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	compilation := &models.Compilation{
		Title:  req.Title,
		Pinned: req.Pinned,
		Events: events,
	}
	if err := s.db.WithContext(ctx).Create(compilation).Error; err != nil {
		return nil, fmt.Errorf("failed to create compilation: %w", err)
	}

	return s.toResponse(ctx, compilation, events)
}

func (s *CompilationService) UpdateCompilation(ctx context.Context, compID uint, req *models.UpdateCompilationRequest) (*models.CompilationResponse, error) {
	compilation, err := s.getCompilation(ctx, compID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if len(*req.Title) < 1 || len(*req.Title) > 50 {
			return nil, apperr.Validation("title length should be between 1 and 50 characters")
		}
		compilation.Title = *req.Title
	}
	if req.Pinned != nil {
		compilation.Pinned = *req.Pinned
	}
	if req.Events != nil {
		events, err := s.repo.GetEventsByIDs(ctx, *req.Events)
		if err != nil {
			return nil, fmt.Errorf("failed to get events: %w", err)
		}
		if err := s.db.WithContext(ctx).Model(compilation).Association("Events").Replace(events); err != nil {
			return nil, fmt.Errorf("failed to replace compilation events: %w", err)
		}
	}

	if err := s.db.WithContext(ctx).Omit("Events").Save(compilation).Error; err != nil {
		return nil, fmt.Errorf("failed to update compilation: %w", err)
	}

	events, err := s.repo.GetCompilationEvents(ctx, compilation)
	if err != nil {
		return nil, fmt.Errorf("failed to get compilation events: %w", err)
	}
	return s.toResponse(ctx, compilation, events)
}

func (s *CompilationService) DeleteCompilation(ctx context.Context, compID uint) error {
	compilation, err := s.getCompilation(ctx, compID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(compilation).Association("Events").Clear(); err != nil {
		return fmt.Errorf("failed to clear compilation events: %w", err)
	}
	return s.db.WithContext(ctx).Delete(compilation).Error
}

func (s *CompilationService) GetCompilation(ctx context.Context, compID uint) (*models.CompilationResponse, error) {
	compilation, err := s.getCompilation(ctx, compID)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.GetCompilationEvents(ctx, compilation)
	if err != nil {
		return nil, fmt.Errorf("failed to get compilation events: %w", err)
	}
	return s.toResponse(ctx, compilation, events)
}

func (s *CompilationService) GetCompilations(ctx context.Context, pinned *bool, from, size int) ([]models.CompilationResponse, error) {
	query := s.db.WithContext(ctx).Order("id ASC").Offset(from).Limit(size)
	if pinned != nil {
		query = query.Where("pinned = ?", *pinned)
	}

	var compilations []models.Compilation
	if err := query.Find(&compilations).Error; err != nil {
		return nil, fmt.Errorf("failed to get compilations: %w", err)
	}

	responses := make([]models.CompilationResponse, 0, len(compilations))
	for i := range compilations {
		events, err := s.repo.GetCompilationEvents(ctx, &compilations[i])
		if err != nil {
			return nil, fmt.Errorf("failed to get compilation events: %w", err)
		}
		resp, err := s.toResponse(ctx, &compilations[i], events)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *CompilationService) getCompilation(ctx context.Context, compID uint) (*models.Compilation, error) {
	var compilation models.Compilation
	err := s.db.WithContext(ctx).Where("id = ?", compID).First(&compilation).Error
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("compilation with id=%d not found", compID)
		}
		return nil, fmt.Errorf("failed to get compilation: %w", err)
	}
	return &compilation, nil
}

func (s *CompilationService) toResponse(ctx context.Context, compilation *models.Compilation, events []models.Event) (*models.CompilationResponse, error) {
	enriched, err := s.stats.ToResponses(ctx, events)
	if err != nil {
		return nil, err
	}
	return &models.CompilationResponse{
		ID:     compilation.ID,
		Title:  compilation.Title,
		Pinned: compilation.Pinned,
		Events: enriched,
	}, nil
}
