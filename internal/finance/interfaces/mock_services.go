package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/application"
	"wealthtracker/internal/finance/domain"
)

type MockCategoryService struct {
	categories    []domain.Category
	subCategories []domain.SubCategory
	locations     []domain.Location
	createErr     error
	deleteErr     error
	shouldFail    bool
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	category.ID = uuid.New()
	return nil
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	return m.createErr
}

func (m *MockCategoryService) GetAllCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.categories, nil
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID uuid.UUID, userID string) error {
	return m.deleteErr
}

func (m *MockCategoryService) CreateSubCategory(ctx context.Context, subCategory *domain.SubCategory) error {
	if m.createErr != nil {
		return m.createErr
	}
	subCategory.ID = uuid.New()
	return nil
}

func (m *MockCategoryService) GetAllSubCategories(ctx context.Context, userID string) ([]domain.SubCategory, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.subCategories, nil
}

func (m *MockCategoryService) DeleteSubCategory(ctx context.Context, subCategoryID uuid.UUID, userID string) error {
	return m.deleteErr
}

func (m *MockCategoryService) CreateLocation(ctx context.Context, location *domain.Location) error {
	if m.createErr != nil {
		return m.createErr
	}
	location.ID = uuid.New()
	return nil
}

func (m *MockCategoryService) GetAllLocations(ctx context.Context, userID string) ([]domain.Location, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.locations, nil
}

func (m *MockCategoryService) DeleteLocation(ctx context.Context, locationID uuid.UUID, userID string) error {
	return m.deleteErr
}

type MockTransactionService struct {
	created    []*domain.Transaction
	entries    []domain.LedgerEntry
	createErr  error
	shouldFail bool
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	if m.createErr != nil {
		return m.createErr
	}
	transaction.ID = uuid.New()
	m.created = append(m.created, transaction)
	return nil
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	return m.createErr
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID uuid.UUID, userID string) error {
	return m.createErr
}

func (m *MockTransactionService) GetPeriodTransactions(ctx context.Context, userID string, year int, month time.Month) ([]domain.LedgerEntry, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.entries, nil
}

type MockSummaryService struct {
	summary    *application.MonthlySummary
	monthly    []application.MonthlyCashflow
	years      []int
	shouldFail bool
}

func (m *MockSummaryService) GetMonthlySummary(ctx context.Context, userID string, year int, month time.Month) (*application.MonthlySummary, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.summary, nil
}

func (m *MockSummaryService) GetAnnualCashflowSummary(ctx context.Context, userID string, year int) ([]application.MonthlyCashflow, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.monthly, nil
}

func (m *MockSummaryService) GetAvailableYears(ctx context.Context, userID string) ([]int, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.years, nil
}
