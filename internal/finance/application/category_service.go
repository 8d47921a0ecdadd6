package application

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/domain"
	financeErrors "wealthtracker/internal/finance/errors"
)

type CategoryService struct {
	categoryRepo    domain.CategoryRepository
	subCategoryRepo domain.SubCategoryRepository
	locationRepo    domain.LocationRepository
}

func NewCategoryService(
	categoryRepo domain.CategoryRepository,
	subCategoryRepo domain.SubCategoryRepository,
	locationRepo domain.LocationRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		locationRepo:    locationRepo,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	exists, err := s.categoryRepo.ExistsByName(ctx, category.UserID, category.Name)
	if err != nil {
		return err
	}
	if exists {
		return financeErrors.ErrCategoryNameTaken
	}
	category.ID = uuid.New()
	return s.categoryRepo.Save(ctx, category)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	existing, err := s.getOwnedCategory(ctx, category.ID, category.UserID)
	if err != nil {
		return err
	}
	if existing.Name != category.Name {
		taken, err := s.categoryRepo.ExistsByName(ctx, category.UserID, category.Name)
		if err != nil {
			return err
		}
		if taken {
			return financeErrors.ErrCategoryNameTaken
		}
	}
	affected, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrCategoryNotFound
	}
	return nil
}

func (s *CategoryService) GetAllCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.categoryRepo.FindByUser(ctx, userID)
}

func (s *CategoryService) GetCategoryBySubCategory(ctx context.Context, subCategoryID uuid.UUID, userID string) (*domain.Category, error) {
	subCategory, err := s.subCategoryRepo.FindByID(ctx, subCategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrInvalidSubCategory
		}
		return nil, err
	}
	if subCategory.UserID != userID {
		return nil, financeErrors.ErrInvalidSubCategory
	}
	category, err := s.categoryRepo.FindByID(ctx, subCategory.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrInvalidCategory
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses to remove a category that still has
// subcategories.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID uuid.UUID, userID string) error {
	if _, err := s.getOwnedCategory(ctx, categoryID, userID); err != nil {
		return err
	}
	count, err := s.categoryRepo.CountSubCategories(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return financeErrors.ErrCategoryInUse
	}
	return s.categoryRepo.Delete(ctx, categoryID)
}

func (s *CategoryService) getOwnedCategory(ctx context.Context, categoryID uuid.UUID, userID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrCategoryNotFound
		}
		return nil, err
	}
	if category.UserID != userID {
		return nil, financeErrors.ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) CreateSubCategory(ctx context.Context, subCategory *domain.SubCategory) error {
	if err := subCategory.Validate(); err != nil {
		return err
	}
	if _, err := s.getOwnedCategory(ctx, subCategory.CategoryID, subCategory.UserID); err != nil {
		return err
	}
	exists, err := s.subCategoryRepo.ExistsByName(ctx, subCategory.CategoryID, subCategory.Name)
	if err != nil {
		return err
	}
	if exists {
		return financeErrors.ErrSubCategoryNameTaken
	}
	subCategory.ID = uuid.New()
	return s.subCategoryRepo.Save(ctx, subCategory)
}

func (s *CategoryService) GetAllSubCategories(ctx context.Context, userID string) ([]domain.SubCategory, error) {
	return s.subCategoryRepo.FindByUser(ctx, userID)
}

// DeleteSubCategory refuses to remove a subcategory that transactions
// still reference.
func (s *CategoryService) DeleteSubCategory(ctx context.Context, subCategoryID uuid.UUID, userID string) error {
	subCategory, err := s.subCategoryRepo.FindByID(ctx, subCategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return financeErrors.ErrSubCategoryNotFound
		}
		return err
	}
	if subCategory.UserID != userID {
		return financeErrors.ErrSubCategoryNotFound
	}
	count, err := s.subCategoryRepo.CountTransactions(ctx, subCategoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return financeErrors.ErrSubCategoryInUse
	}
	return s.subCategoryRepo.Delete(ctx, subCategoryID)
}

func (s *CategoryService) CreateLocation(ctx context.Context, location *domain.Location) error {
	if location.Name == "" {
		return financeErrors.NewValidationError("Location name is required")
	}
	exists, err := s.locationRepo.ExistsByName(ctx, location.UserID, location.Name)
	if err != nil {
		return err
	}
	if exists {
		return financeErrors.ErrLocationNameTaken
	}
	location.ID = uuid.New()
	return s.locationRepo.Save(ctx, location)
}

func (s *CategoryService) GetAllLocations(ctx context.Context, userID string) ([]domain.Location, error) {
	return s.locationRepo.FindByUser(ctx, userID)
}

func (s *CategoryService) DeleteLocation(ctx context.Context, locationID uuid.UUID, userID string) error {
	return s.locationRepo.Delete(ctx, locationID, userID)
}
