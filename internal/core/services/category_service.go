package services

import (
	"context"
	"errors"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
)

// CategoryService manages an owner's categories.
type CategoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

// CreateCategory persists a new category for the owner.
func (s *CategoryService) CreateCategory(ctx context.Context, ownerID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		OwnerID:    ownerID,
		Name:       req.Name,
		Kind:       req.Kind,
		Color:      req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", "category_id", category.CategoryID)
		return nil, err
	}
	s.LogInfo(ctx, "Category created", "category_id", category.CategoryID)
	return &category, nil
}

// GetCategoryByID retrieves a category, verifying ownership. Another
// owner's category is reported as not found.
func (s *CategoryService) GetCategoryByID(ctx context.Context, ownerID string, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", "category_id", categoryID)
		}
		return nil, err
	}
	if category.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}

// ListCategories retrieves all of the owner's categories.
func (s *CategoryService) ListCategories(ctx context.Context, ownerID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", "owner_id", ownerID)
		return nil, err
	}
	return categories, nil
}

// UpdateCategory updates an existing category's details. Kind is immutable
// so existing movements keep a consistent income/expense partition.
func (s *CategoryService) UpdateCategory(ctx context.Context, ownerID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.GetCategoryByID(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = ownerID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", "category_id", categoryID)
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. Referencing movements fall back to
// uncategorized; rules targeting it are removed with it.
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID string, categoryID string) error {
	if _, err := s.GetCategoryByID(ctx, ownerID, categoryID); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", "category_id", categoryID)
		return err
	}
	s.LogInfo(ctx, "Category deleted", "category_id", categoryID)
	return nil
}
