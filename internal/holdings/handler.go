package holdings

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wealthtracker/internal/holdings/account"
	"wealthtracker/internal/holdings/snapshot"
)

type Handler struct {
	accountService  account.Service
	snapshotService snapshot.Service
	respondJSON     func(w http.ResponseWriter, status int, payload interface{})
	respondError    func(w http.ResponseWriter, status int, message string)
}

func NewHoldingsHandler(
	accountService account.Service,
	snapshotService snapshot.Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if accountService == nil || snapshotService == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &Handler{
		accountService:  accountService,
		snapshotService: snapshotService,
		respondJSON:     respondJSON,
		respondError:    respondError,
	}
}

type accountRequest struct {
	Name        string  `json:"name"`
	Institution string  `json:"institution"`
	AccountType string  `json:"account_type"`
	Currency    string  `json:"currency"`
	IBAN        *string `json:"iban,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type snapshotRequest struct {
	AccountID      uuid.UUID `json:"account_id"`
	Date           string    `json:"date"`
	Balance        string    `json:"balance"`
	InterestEarned string    `json:"interest_earned"`
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	bankAccount := &account.BankAccount{
		UserID:      userID,
		Name:        req.Name,
		Institution: req.Institution,
		AccountType: req.AccountType,
		Currency:    req.Currency,
		IBAN:        req.IBAN,
		Notes:       req.Notes,
	}
	if err := h.accountService.CreateAccount(r.Context(), bankAccount); err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidAccountType):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, account.ErrAccountNameTaken):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("Error during account creation: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to create account")
		}
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully created.",
		"data":    bankAccount,
	})
}

func (h *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	accounts, err := h.accountService.GetUserAccounts(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve accounts")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   accounts,
	})
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	accountID, err := uuid.Parse(r.PathValue("accountID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	bankAccount := &account.BankAccount{
		ID:          accountID,
		UserID:      userID,
		Name:        req.Name,
		Institution: req.Institution,
		AccountType: req.AccountType,
		Currency:    req.Currency,
		IBAN:        req.IBAN,
		Notes:       req.Notes,
		IsActive:    isActive,
	}
	if err := h.accountService.UpdateAccount(r.Context(), bankAccount); err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidAccountType):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, account.ErrAccountNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to update account")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   bankAccount,
	})
}

func (h *Handler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	accountID, err := uuid.Parse(r.PathValue("accountID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}
	if err := h.accountService.DeactivateAccount(r.Context(), accountID, userID); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to deactivate account")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully deactivated.",
	})
}

func (h *Handler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	snap, err := decodeSnapshot(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.snapshotService.RecordSnapshot(r.Context(), userID, snap); err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, snapshot.ErrSnapshotExists):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("Error during snapshot creation: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to record snapshot")
		}
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Snapshot successfully recorded.",
		"data":    snap,
	})
}

func (h *Handler) GetAccountHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	accountID, err := uuid.Parse(r.PathValue("accountID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}
	history, err := h.snapshotService.GetAccountHistory(r.Context(), accountID, userID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   history,
	})
}

func (h *Handler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	snapshotID, err := uuid.Parse(r.PathValue("snapshotID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid snapshot ID")
		return
	}
	if err := h.snapshotService.DeleteSnapshot(r.Context(), snapshotID, userID); err != nil {
		switch {
		case errors.Is(err, snapshot.ErrSnapshotNotFound), errors.Is(err, account.ErrAccountNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to delete snapshot")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Snapshot successfully deleted.",
	})
}

func (h *Handler) GetCashValue(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	position, err := h.snapshotService.GetCurrentCashValue(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to compute cash value")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   position,
	})
}

func (h *Handler) GetBalanceEvolution(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	year, ok := parseYear(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid year")
		return
	}
	evolution, err := h.snapshotService.GetAnnualBalanceEvolution(r.Context(), userID, year)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build balance evolution")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   evolution,
	})
}

func decodeSnapshot(r *http.Request) (*snapshot.Snapshot, error) {
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.New("invalid date format, expected YYYY-MM-DD")
	}
	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		return nil, errors.New("invalid balance")
	}
	interest := decimal.Zero
	if req.InterestEarned != "" {
		interest, err = decimal.NewFromString(req.InterestEarned)
		if err != nil {
			return nil, errors.New("invalid interest amount")
		}
	}
	return &snapshot.Snapshot{
		AccountID:      req.AccountID,
		Date:           date,
		Balance:        balance,
		InterestEarned: interest,
	}, nil
}

func parseYear(r *http.Request) (int, bool) {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1900 {
		return 0, false
	}
	return year, true
}
