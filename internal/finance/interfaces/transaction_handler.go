package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/domain"
	financeErrors "wealthtracker/internal/finance/errors"
)

type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, transaction *domain.Transaction) error
	UpdateTransaction(ctx context.Context, transaction *domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID uuid.UUID, userID string) error
	GetPeriodTransactions(ctx context.Context, userID string, year int, month time.Month) ([]domain.LedgerEntry, error)
}

type transactionRequest struct {
	Date          string     `json:"date"`
	Amount        string     `json:"amount"`
	Description   string     `json:"description"`
	SubCategoryID uuid.UUID  `json:"subcategory_id"`
	LocationID    *uuid.UUID `json:"location_id,omitempty"`
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *TransactionHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *TransactionHandler) decodeTransaction(r *http.Request, userID string) (*domain.Transaction, error) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, financeErrors.NewValidationError("Invalid request body")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, financeErrors.NewValidationError("Invalid date format, expected YYYY-MM-DD")
	}
	amount, err := decimalFromString(req.Amount)
	if err != nil {
		return nil, financeErrors.NewValidationError("Invalid amount")
	}
	return &domain.Transaction{
		UserID:        userID,
		Date:          date,
		Amount:        amount,
		Description:   req.Description,
		SubCategoryID: req.SubCategoryID,
		LocationID:    req.LocationID,
	}, nil
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transaction, err := h.decodeTransaction(r, userID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.service.CreateTransaction(r.Context(), transaction); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error during transaction creation: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID, err := uuid.Parse(r.PathValue("transactionID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}
	transaction, err := h.decodeTransaction(r, userID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	transaction.ID = transactionID
	if err := h.service.UpdateTransaction(r.Context(), transaction); err != nil {
		switch {
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case err == financeErrors.ErrTransactionNotFound:
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to update transaction")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID, err := uuid.Parse(r.PathValue("transactionID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}
	if err := h.service.DeleteTransaction(r.Context(), transactionID, userID); err != nil {
		if err == financeErrors.ErrTransactionNotFound {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully deleted.",
	})
}

func (h *TransactionHandler) GetPeriodTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	year, month, ok := parsePeriod(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid year or month")
		return
	}
	transactions, err := h.service.GetPeriodTransactions(r.Context(), userID, year, month)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transactions,
	})
}
