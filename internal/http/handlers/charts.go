package handlers

import (
	"log"
	"net/http"

	"github.com/fintrackhq/fintrack-be/internal/charts"
	"github.com/fintrackhq/fintrack-be/internal/http/respond"
	"github.com/fintrackhq/fintrack-be/internal/middleware"
	"github.com/fintrackhq/fintrack-be/internal/models"
	"github.com/fintrackhq/fintrack-be/internal/storage"
)

// ChartHandler serves PNG charts of the authenticated user's transactions.
type ChartHandler struct {
	store    storage.TransactionStore
	renderer *charts.Renderer
}

// NewChartHandler constructs the handler.
func NewChartHandler(store storage.TransactionStore, renderer *charts.Renderer) *ChartHandler {
	return &ChartHandler{store: store, renderer: renderer}
}

// Register attaches chart routes to the mux.
func (h *ChartHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/charts/categories", h.handleCategories)
	mux.HandleFunc("/charts/summary", h.handleSummary)
}

func (h *ChartHandler) handleCategories(w http.ResponseWriter, r *http.Request) {
	transactions, ok := h.userTransactions(w, r)
	if !ok {
		return
	}

	txType := r.URL.Query().Get("type")
	if txType == "" {
		txType = models.TypeExpense
	}
	if txType != models.TypeIncome && txType != models.TypeExpense {
		respond.Error(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	png, err := h.renderer.CategoryPie(transactions, txType)
	if err != nil {
		log.Printf("charts: categories: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	writePNG(w, png)
}

func (h *ChartHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	transactions, ok := h.userTransactions(w, r)
	if !ok {
		return
	}
	png, err := h.renderer.IncomeExpenseBars(transactions)
	if err != nil {
		log.Printf("charts: summary: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	writePNG(w, png)
}

func (h *ChartHandler) userTransactions(w http.ResponseWriter, r *http.Request) ([]models.Transaction, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	transactions, err := h.store.ListTransactions(r.Context(), userID)
	if err != nil {
		log.Printf("charts: list transactions: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list transactions")
		return nil, false
	}
	return transactions, true
}

func writePNG(w http.ResponseWriter, png []byte) {
	if len(png) == 0 {
		respond.Error(w, http.StatusNotFound, "no data to chart")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		log.Printf("charts: write png: %v", err)
	}
}
