package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"wealthtracker/internal/finance/domain"
	financeErrors "wealthtracker/internal/finance/errors"
)

func TestCreateTransaction(t *testing.T) {
	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"date":           "2024-01-15",
		"amount":         "123.45",
		"description":    "Weekly shop",
		"subcategory_id": uuid.NewString(),
	})
	req := authedRequest(http.MethodPost, "/api/protected/finances/transactions", body)
	rec := httptest.NewRecorder()
	handler.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, mockService.created, 1)
	assert.Equal(t, "user-1", mockService.created[0].UserID)
	assert.Equal(t, "123.45", mockService.created[0].Amount.String())
}

func TestCreateTransactionInvalidDate(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"date":           "15/01/2024",
		"amount":         "10",
		"subcategory_id": uuid.NewString(),
	})
	req := authedRequest(http.MethodPost, "/api/protected/finances/transactions", body)
	rec := httptest.NewRecorder()
	handler.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTransactionInvalidSubCategory(t *testing.T) {
	mockService := &MockTransactionService{createErr: financeErrors.ErrInvalidSubCategory}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"date":           "2024-01-15",
		"amount":         "10",
		"subcategory_id": uuid.NewString(),
	})
	req := authedRequest(http.MethodPost, "/api/protected/finances/transactions", body)
	rec := httptest.NewRecorder()
	handler.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTransactionNotFound(t *testing.T) {
	mockService := &MockTransactionService{createErr: financeErrors.ErrTransactionNotFound}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"date":           "2024-01-15",
		"amount":         "10",
		"subcategory_id": uuid.NewString(),
	})
	req := authedRequest(http.MethodPut, "/api/protected/finances/transactions/"+uuid.NewString(), body)
	req.SetPathValue("transactionID", uuid.NewString())
	rec := httptest.NewRecorder()
	handler.UpdateTransaction(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTransaction(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)

	req := authedRequest(http.MethodDelete, "/api/protected/finances/transactions/"+uuid.NewString(), nil)
	req.SetPathValue("transactionID", uuid.NewString())
	rec := httptest.NewRecorder()
	handler.DeleteTransaction(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPeriodTransactions(t *testing.T) {
	mockService := &MockTransactionService{
		entries: []domain.LedgerEntry{
			{CategoryName: "Groceries", TransactionType: domain.TransactionTypeExpense},
		},
	}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	req := authedRequest(http.MethodGet, "/api/protected/finances/transactions?year=2024&month=1", nil)
	rec := httptest.NewRecorder()
	handler.GetPeriodTransactions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response struct {
		Data []domain.LedgerEntry `json:"data"`
	}
	err := json.NewDecoder(rec.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "Groceries", response.Data[0].CategoryName)
}

func TestGetPeriodTransactionsInvalidMonth(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)

	req := authedRequest(http.MethodGet, "/api/protected/finances/transactions?year=2024&month=13", nil)
	rec := httptest.NewRecorder()
	handler.GetPeriodTransactions(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
