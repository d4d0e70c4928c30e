package services

import (
	"context"
	"fmt"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/models"
	"explore-with-me/internal/repository"

	"gorm.io/gorm"
)

type CategoryService struct {
	db   *gorm.DB
	repo *repository.Repository
}

func NewCategoryService(db *gorm.DB, repo *repository.Repository) *CategoryService {
	return &CategoryService{db: db, repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *models.NewCategoryRequest) (*models.Category, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("category with name=%s already exists", req.Name)
	}

	category := &models.Category{Name: req.Name}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID uint, req *models.NewCategoryRequest) (*models.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("category with id=%d not found", categoryID)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category.Name != req.Name {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if count > 0 {
			return nil, apperr.Conflict("category with name=%s already exists", req.Name)
		}
	}

	category.Name = req.Name
	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category; blocked while events still reference it.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID uint) error {
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("category with id=%d not found", categoryID)
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	inUse, err := s.repo.ExistsEventByCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse {
		return apperr.Conflict("category is not empty")
	}

	return s.db.WithContext(ctx).Delete(category).Error
}

func (s *CategoryService) GetCategories(ctx context.Context, from, size int) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Offset(from).
		Limit(size).
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, categoryID uint) (*models.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("category with id=%d not found", categoryID)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}
