package reports

import (
	"log"
	"net/http"
	"strconv"
	"time"
)

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewReportHandler(
	service Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *Handler) GetAnnualReport(w http.ResponseWriter, r *http.Request) {
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
	report, err := h.service.GetAnnualReport(r.Context(), userID, year)
	if err != nil {
		log.Printf("Error building annual report: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to build annual report")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

func (h *Handler) GetFinancialReport(w http.ResponseWriter, r *http.Request) {
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
	report, err := h.service.GetFinancialReport(r.Context(), userID, year)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build financial report")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

func (h *Handler) GetInvestmentReport(w http.ResponseWriter, r *http.Request) {
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
	report, err := h.service.GetInvestmentReport(r.Context(), userID, year)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build investment report")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

func (h *Handler) GetHoldingsReport(w http.ResponseWriter, r *http.Request) {
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
	report, err := h.service.GetHoldingsReport(r.Context(), userID, year)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build holdings report")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   report,
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
