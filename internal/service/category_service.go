package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finpal/internal/dto"
	"finpal/internal/models"
	"finpal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService struct {
	categories CategoryStore
	logger     *zap.Logger
	now        func() time.Time
}

func NewCategoryService(categories CategoryStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *CategoryService) List(ctx context.Context, scope models.Scope) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.ListByFamily(ctx, scope.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]dto.CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, scope models.Scope, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	now := s.now().UTC()
	category := &models.Category{
		ID:        uuid.New(),
		FamilyID:  scope.FamilyID,
		CreatedBy: scope.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyCategoryRequest(category, req); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.Info("Category created",
		zap.String("family_id", scope.FamilyID.String()),
		zap.String("category_id", category.ID.String()),
	)

	resp := toCategoryResponse(category)
	return &resp, nil
}

// Update applies a partial change. Empty fields keep the stored value.
func (s *CategoryService) Update(ctx context.Context, scope models.Scope, id uuid.UUID, req *dto.CategoryUpdateRequest) (*dto.CategoryResponse, error) {
	category, err := s.categories.GetByID(ctx, scope.FamilyID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	patch := dto.CategoryRequest{Name: req.Name, Color: req.Color, Icon: req.Icon}
	if strings.TrimSpace(patch.Name) == "" {
		patch.Name = category.Name
	}
	if strings.TrimSpace(patch.Color) == "" {
		patch.Color = category.Color
	}
	if strings.TrimSpace(patch.Icon) == "" {
		patch.Icon = models.ResolveIcon(category.Icon)
	}
	if err := applyCategoryRequest(category, &patch); err != nil {
		return nil, err
	}
	category.UpdatedAt = s.now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

// Delete removes the category; its transactions become uncategorized.
func (s *CategoryService) Delete(ctx context.Context, scope models.Scope, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, scope.FamilyID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func applyCategoryRequest(c *models.Category, req *dto.CategoryRequest) error {
	norm := dto.CategoryRequest{
		Name:  sanitizeUTF8(req.Name),
		Color: strings.TrimSpace(req.Color),
		Icon:  strings.TrimSpace(req.Icon),
	}
	if norm.Color == "" {
		norm.Color = defaultCategoryColor
	}
	if norm.Icon == "" {
		norm.Icon = models.DefaultIcon
	}
	if err := dto.Validate(&norm); err != nil {
		return invalidf("%s", err.Error())
	}
	if !models.IsKnownIcon(norm.Icon) {
		return invalidf("unknown icon %q", norm.Icon)
	}

	c.Name = norm.Name
	c.Color = strings.ToUpper(norm.Color)
	c.Icon = norm.Icon
	return nil
}
