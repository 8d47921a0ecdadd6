package networth

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

func NewNetWorthHandler(
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

func (h *Handler) GetNetWorth(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	netWorth, err := h.service.CalculateNetWorth(r.Context(), userID)
	if err != nil {
		log.Printf("Error calculating net worth: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to calculate net worth")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   netWorth,
	})
}

func (h *Handler) GetNetWorthEvolution(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 1900 {
			h.respondError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}
	points, err := h.service.GetNetWorthEvolution(r.Context(), userID, year)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build net worth evolution")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   points,
	})
}
