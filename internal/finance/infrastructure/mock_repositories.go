package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/domain"
)

// In-memory repositories used by the application-layer tests.

type MockTransactionRepository struct {
	Entries []domain.LedgerEntry
	Saved   []domain.Transaction
	Updated []domain.Transaction
}

func (m *MockTransactionRepository) Save(ctx context.Context, transaction *domain.Transaction) error {
	m.Saved = append(m.Saved, *transaction)
	return nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) (int64, error) {
	m.Updated = append(m.Updated, *transaction)
	return 1, nil
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error) {
	for _, entry := range m.Entries {
		if entry.ID == transactionID {
			transaction := entry.Transaction
			return &transaction, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockTransactionRepository) Delete(ctx context.Context, transactionID uuid.UUID, userID string) error {
	return nil
}

func (m *MockTransactionRepository) FindEntriesForPeriod(ctx context.Context, userID string, year int, month time.Month) ([]domain.LedgerEntry, error) {
	var filtered []domain.LedgerEntry
	for _, entry := range m.Entries {
		if entry.UserID == userID && entry.Date.Year() == year && entry.Date.Month() == month {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func (m *MockTransactionRepository) FindEntriesForYear(ctx context.Context, userID string, year int) ([]domain.LedgerEntry, error) {
	var filtered []domain.LedgerEntry
	for _, entry := range m.Entries {
		if entry.UserID == userID && entry.Date.Year() == year {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func (m *MockTransactionRepository) AvailableYears(ctx context.Context, userID string) ([]int, error) {
	seen := make(map[int]bool)
	var years []int
	for _, entry := range m.Entries {
		if entry.UserID == userID && !seen[entry.Date.Year()] {
			seen[entry.Date.Year()] = true
			years = append(years, entry.Date.Year())
		}
	}
	return years, nil
}

func (m *MockTransactionRepository) AvailableMonths(ctx context.Context, userID string, year int) ([]time.Month, error) {
	seen := make(map[time.Month]bool)
	var months []time.Month
	for _, entry := range m.Entries {
		if entry.UserID == userID && entry.Date.Year() == year && !seen[entry.Date.Month()] {
			seen[entry.Date.Month()] = true
			months = append(months, entry.Date.Month())
		}
	}
	return months, nil
}

type MockCategoryRepository struct {
	Categories       []domain.Category
	SubCategoryCount map[uuid.UUID]int
	Deleted          []uuid.UUID
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	m.Categories = append(m.Categories, *category)
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) (int64, error) {
	for i, existing := range m.Categories {
		if existing.ID == category.ID {
			m.Categories[i] = *category
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	for _, category := range m.Categories {
		if category.ID == categoryID {
			c := category
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockCategoryRepository) FindByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	var categories []domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, userID, name string) (bool, error) {
	for _, category := range m.Categories {
		if category.UserID == userID && category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) CountSubCategories(ctx context.Context, categoryID uuid.UUID) (int, error) {
	return m.SubCategoryCount[categoryID], nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, categoryID uuid.UUID) error {
	m.Deleted = append(m.Deleted, categoryID)
	return nil
}

type MockSubCategoryRepository struct {
	SubCategories    []domain.SubCategory
	TransactionCount map[uuid.UUID]int
	Deleted          []uuid.UUID
}

func (m *MockSubCategoryRepository) Save(ctx context.Context, subCategory *domain.SubCategory) error {
	m.SubCategories = append(m.SubCategories, *subCategory)
	return nil
}

func (m *MockSubCategoryRepository) FindByID(ctx context.Context, subCategoryID uuid.UUID) (*domain.SubCategory, error) {
	for _, subCategory := range m.SubCategories {
		if subCategory.ID == subCategoryID {
			s := subCategory
			return &s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockSubCategoryRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.SubCategory, error) {
	var subCategories []domain.SubCategory
	for _, subCategory := range m.SubCategories {
		if subCategory.CategoryID == categoryID {
			subCategories = append(subCategories, subCategory)
		}
	}
	return subCategories, nil
}

func (m *MockSubCategoryRepository) FindByUser(ctx context.Context, userID string) ([]domain.SubCategory, error) {
	var subCategories []domain.SubCategory
	for _, subCategory := range m.SubCategories {
		if subCategory.UserID == userID {
			subCategories = append(subCategories, subCategory)
		}
	}
	return subCategories, nil
}

func (m *MockSubCategoryRepository) ExistsByName(ctx context.Context, categoryID uuid.UUID, name string) (bool, error) {
	for _, subCategory := range m.SubCategories {
		if subCategory.CategoryID == categoryID && subCategory.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSubCategoryRepository) CountTransactions(ctx context.Context, subCategoryID uuid.UUID) (int, error) {
	return m.TransactionCount[subCategoryID], nil
}

func (m *MockSubCategoryRepository) Delete(ctx context.Context, subCategoryID uuid.UUID) error {
	m.Deleted = append(m.Deleted, subCategoryID)
	return nil
}
