package investment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	assets "wealthtracker/internal/investment/asset"
	"wealthtracker/internal/investment/history"
	"wealthtracker/internal/investment/models"
	"wealthtracker/internal/investment/portfolio"
	"wealthtracker/internal/investment/transaction"
)

type Handler struct {
	assetService       assets.Service
	transactionService transaction.Service
	historyService     history.Service
	portfolioService   portfolio.Service
	respondJSON        func(w http.ResponseWriter, status int, payload interface{})
	respondError       func(w http.ResponseWriter, status int, message string)
}

func NewInvestmentHandler(
	assetService assets.Service,
	transactionService transaction.Service,
	historyService history.Service,
	portfolioService portfolio.Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if assetService == nil || transactionService == nil || historyService == nil || portfolioService == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &Handler{
		assetService:       assetService,
		transactionService: transactionService,
		historyService:     historyService,
		portfolioService:   portfolioService,
		respondJSON:        respondJSON,
		respondError:       respondError,
	}
}

type assetRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	ISIN     *string `json:"isin,omitempty"`
	Platform string  `json:"platform"`
	Currency string  `json:"currency"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type investmentTransactionRequest struct {
	AssetID       uuid.UUID `json:"asset_id"`
	Date          string    `json:"date"`
	Action        string    `json:"action"`
	Shares        string    `json:"shares"`
	PricePerShare string    `json:"price_per_share"`
	Notes         *string   `json:"notes,omitempty"`
}

type valuationRequest struct {
	AssetID uuid.UUID `json:"asset_id"`
	Date    string    `json:"date"`
	Value   string    `json:"value"`
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	asset := &assets.Asset{
		UserID:   userID,
		Name:     req.Name,
		Category: req.Category,
		ISIN:     req.ISIN,
		Platform: req.Platform,
		Currency: req.Currency,
	}
	if err := h.assetService.CreateAsset(r.Context(), asset); err != nil {
		switch {
		case errors.Is(err, assets.ErrInvalidCategory):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, assets.ErrAssetNameTaken):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("Error during asset creation: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to create asset")
		}
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Asset successfully created.",
		"data":    asset,
	})
}

func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	assetList, err := h.assetService.GetUserAssets(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve assets")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   assetList,
	})
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	assetID, err := uuid.Parse(r.PathValue("assetID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}
	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	asset := &assets.Asset{
		ID:       assetID,
		UserID:   userID,
		Name:     req.Name,
		Category: req.Category,
		ISIN:     req.ISIN,
		Platform: req.Platform,
		Currency: req.Currency,
		IsActive: isActive,
	}
	if err := h.assetService.UpdateAsset(r.Context(), asset); err != nil {
		switch {
		case errors.Is(err, assets.ErrInvalidCategory):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, assets.ErrAssetNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to update asset")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   asset,
	})
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	assetID, err := uuid.Parse(r.PathValue("assetID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}
	if err := h.assetService.DeleteAsset(r.Context(), assetID, userID); err != nil {
		switch {
		case errors.Is(err, assets.ErrAssetNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, assets.ErrAssetInUse):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to delete asset")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Asset successfully deleted.",
	})
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req investmentTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	shares, err := decimal.NewFromString(req.Shares)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid shares")
		return
	}
	price, err := decimal.NewFromString(req.PricePerShare)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid price per share")
		return
	}
	investmentTransaction := &models.Transaction{
		AssetID:       req.AssetID,
		Date:          date,
		Action:        req.Action,
		Shares:        shares,
		PricePerShare: price,
		Notes:         req.Notes,
	}
	if err := h.transactionService.RecordTransaction(r.Context(), userID, investmentTransaction); err != nil {
		switch {
		case errors.Is(err, transaction.ErrInvalidAction),
			errors.Is(err, transaction.ErrInvalidShares),
			errors.Is(err, transaction.ErrInvalidPrice):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, assets.ErrAssetNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			log.Printf("Error during investment transaction creation: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to record transaction")
		}
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully recorded.",
		"data":    investmentTransaction,
	})
}

func (h *Handler) GetAssetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	assetID, err := uuid.Parse(r.PathValue("assetID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}
	transactions, err := h.transactionService.GetAssetTransactions(r.Context(), assetID, userID)
	if err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transactions,
	})
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
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
	if err := h.transactionService.DeleteTransaction(r.Context(), transactionID, userID); err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
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

func (h *Handler) CreateValuation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req valuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid value")
		return
	}
	entry := &models.AssetHistory{
		AssetID: req.AssetID,
		Date:    date,
		Value:   value,
	}
	if err := h.historyService.RecordValuation(r.Context(), userID, entry); err != nil {
		switch {
		case errors.Is(err, assets.ErrAssetNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, history.ErrEntryExists):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to record valuation")
		}
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Valuation successfully recorded.",
		"data":    entry,
	})
}

func (h *Handler) GetAssetValuations(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	assetID, err := uuid.Parse(r.PathValue("assetID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}
	valuations, err := h.historyService.GetAssetValuations(r.Context(), assetID, userID)
	if err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve valuations")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   valuations,
	})
}

func (h *Handler) DeleteValuation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	entryID, err := uuid.Parse(r.PathValue("valuationID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid valuation ID")
		return
	}
	if err := h.historyService.DeleteValuation(r.Context(), entryID, userID); err != nil {
		if errors.Is(err, history.ErrEntryNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete valuation")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Valuation successfully deleted.",
	})
}

func (h *Handler) GetPortfolioOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	overview, err := h.portfolioService.GetPortfolioOverview(r.Context(), userID)
	if err != nil {
		log.Printf("Error building portfolio overview: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to build portfolio overview")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   overview,
	})
}

func (h *Handler) GetAnnualEvolution(w http.ResponseWriter, r *http.Request) {
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
	rows, err := h.portfolioService.GetAnnualEvolution(r.Context(), userID, year)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build annual evolution")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   rows,
	})
}

func (h *Handler) GetPerformanceHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	points, err := h.portfolioService.GetPerformanceHistory(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build performance history")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   points,
	})
}

func (h *Handler) GetMonthlyContributions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	chart, err := h.portfolioService.GetMonthlyContributions(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build contributions chart")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   chart,
	})
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
