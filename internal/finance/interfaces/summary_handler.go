package interfaces

import (
	"context"
	"log"
	"net/http"
	"time"

	"wealthtracker/internal/finance/application"
)

type SummaryServiceInterface interface {
	GetMonthlySummary(ctx context.Context, userID string, year int, month time.Month) (*application.MonthlySummary, error)
	GetAnnualCashflowSummary(ctx context.Context, userID string, year int) ([]application.MonthlyCashflow, error)
	GetAvailableYears(ctx context.Context, userID string) ([]int, error)
}

type SummaryHandler struct {
	service      SummaryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewSummaryHandler(
	service SummaryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *SummaryHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &SummaryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *SummaryHandler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
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
	summary, err := h.service.GetMonthlySummary(r.Context(), userID, year, month)
	if err != nil {
		log.Printf("Error building monthly summary: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to build summary")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

func (h *SummaryHandler) GetAnnualCashflow(w http.ResponseWriter, r *http.Request) {
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
	monthly, err := h.service.GetAnnualCashflowSummary(r.Context(), userID, year)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build annual cash-flow summary")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   monthly,
	})
}

func (h *SummaryHandler) GetAvailableYears(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	years, err := h.service.GetAvailableYears(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve years")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   years,
	})
}
