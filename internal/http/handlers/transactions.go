package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack-be/internal/http/respond"
	"github.com/fintrackhq/fintrack-be/internal/middleware"
	"github.com/fintrackhq/fintrack-be/internal/models"
	"github.com/fintrackhq/fintrack-be/internal/models/dto"
	"github.com/fintrackhq/fintrack-be/internal/storage"
)

// TransactionHandler owns the transaction CRUD, stats, and CSV endpoints.
type TransactionHandler struct {
	store storage.TransactionStore
}

// NewTransactionHandler constructs the handler.
func NewTransactionHandler(store storage.TransactionStore) *TransactionHandler {
	return &TransactionHandler{store: store}
}

// Register attaches transaction routes to the mux.
func (h *TransactionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/transactions", h.handleCollection)
	mux.HandleFunc("/transactions/stats", h.handleStats)
	mux.HandleFunc("/transactions/export", h.handleExport)
	mux.HandleFunc("/transactions/import", h.handleImport)
	mux.HandleFunc("/transactions/", h.handleItem)
}

func (h *TransactionHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		transactions, err := h.store.ListTransactions(r.Context(), userID)
		if err != nil {
			log.Printf("list transactions: %v", err)
			respond.Error(w, http.StatusInternalServerError, "failed to list transactions")
			return
		}
		respond.JSON(w, http.StatusOK, "ok", transactions)
	case http.MethodPost:
		var req dto.TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		if err := validateTransaction(req); err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		date := req.Date
		if date.IsZero() {
			date = time.Now()
		}
		created, err := h.store.CreateTransaction(r.Context(), models.Transaction{
			UserID:      userID,
			Type:        req.Type,
			Amount:      req.Amount,
			Description: req.Description,
			Category:    req.Category,
			Date:        date,
		})
		if err != nil {
			log.Printf("create transaction: %v", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create transaction")
			return
		}
		respond.JSON(w, http.StatusCreated, "transaction created", created)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) handleItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/transactions/")
	if id == "" || strings.Contains(id, "/") {
		respond.Error(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		existing, err := h.ownedTransaction(w, r, id, userID)
		if err != nil {
			return
		}
		var req dto.TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		if err := validateTransaction(req); err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		existing.Type = req.Type
		existing.Amount = req.Amount
		existing.Description = req.Description
		existing.Category = req.Category
		if !req.Date.IsZero() {
			existing.Date = req.Date
		}
		updated, err := h.store.UpdateTransaction(r.Context(), existing)
		if err != nil {
			log.Printf("update transaction %s: %v", id, err)
			respond.Error(w, http.StatusInternalServerError, "failed to update transaction")
			return
		}
		respond.JSON(w, http.StatusOK, "transaction updated", updated)
	case http.MethodDelete:
		if _, err := h.ownedTransaction(w, r, id, userID); err != nil {
			return
		}
		if err := h.store.DeleteTransaction(r.Context(), id); err != nil {
			log.Printf("delete transaction %s: %v", id, err)
			respond.Error(w, http.StatusInternalServerError, "failed to delete transaction")
			return
		}
		respond.JSON(w, http.StatusOK, "transaction deleted", dto.DeletedTransaction{ID: id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ownedTransaction loads the transaction and enforces ownership; on failure
// it writes the response and returns a non-nil error.
func (h *TransactionHandler) ownedTransaction(w http.ResponseWriter, r *http.Request, id, userID string) (models.Transaction, error) {
	tx, err := h.store.GetTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "transaction not found")
			return models.Transaction{}, err
		}
		log.Printf("fetch transaction %s: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch transaction")
		return models.Transaction{}, err
	}
	if tx.UserID != userID {
		respond.Error(w, http.StatusForbidden, "not your transaction")
		return models.Transaction{}, errors.New("ownership mismatch")
	}
	return tx, nil
}

func (h *TransactionHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	transactions, err := h.store.ListTransactions(r.Context(), userID)
	if err != nil {
		log.Printf("stats: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	var stats dto.TransactionStats
	for _, t := range transactions {
		if t.Type == models.TypeIncome {
			stats.TotalIncome += t.Amount
		} else {
			stats.TotalExpenses += t.Amount
		}
	}
	stats.Savings = stats.TotalIncome - stats.TotalExpenses
	respond.JSON(w, http.StatusOK, "ok", stats)
}

func validateTransaction(req dto.TransactionRequest) error {
	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		return errors.New("type must be income or expense")
	}
	if req.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}
