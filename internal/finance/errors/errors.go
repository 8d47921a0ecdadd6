package errors

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

var (
	ErrCategoryNameTaken    = NewValidationError("Category with this name already exists")
	ErrSubCategoryNameTaken = NewValidationError("Subcategory with this name already exists in the category")
	ErrLocationNameTaken    = NewValidationError("Location with this name already exists")
	ErrInvalidCategory      = NewValidationError("Invalid category")
	ErrInvalidSubCategory   = NewValidationError("Invalid subcategory")
	ErrInvalidLocation      = NewValidationError("Invalid location")

	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("subcategory not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Protective deletion semantics: a category cannot disappear while
	// subcategories reference it, and a subcategory cannot disappear
	// while transactions reference it.
	ErrCategoryInUse    = NewValidationError("Category has subcategories and cannot be deleted")
	ErrSubCategoryInUse = NewValidationError("Subcategory has transactions and cannot be deleted")
)

func NewIndexedValidationError(index int, msg string) error {
	return &ValidationError{Msg: fmt.Sprintf("Validation error at transaction %d: %s", index, msg)}
}
