package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrackhq/fintrack-be/internal/http/respond"
	"github.com/fintrackhq/fintrack-be/internal/middleware"
	"github.com/fintrackhq/fintrack-be/internal/models"
	"github.com/fintrackhq/fintrack-be/internal/models/dto"
)

var csvHeader = []string{"type", "amount", "description", "category", "date"}

func (h *TransactionHandler) handleExport(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("export: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to export transactions")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=transactions-%s.csv", time.Now().Format("2006-01-02")))

	writer := csv.NewWriter(w)
	_ = writer.Write(csvHeader)
	for _, t := range transactions {
		_ = writer.Write([]string{
			t.Type,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Description,
			t.Category,
			t.Date.Format("2006-01-02"),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("export: write csv: %v", err)
	}
}

func (h *TransactionHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	reader := csv.NewReader(r.Body)
	records, err := reader.ReadAll()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid CSV format")
		return
	}
	if len(records) < 2 {
		respond.Error(w, http.StatusBadRequest, "CSV has no data rows")
		return
	}

	// First row is the header; columns follow the export layout.
	var result dto.ImportResult
	for i, record := range records[1:] {
		tx, err := parseCSVRow(record)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		tx.UserID = userID
		if _, err := h.store.CreateTransaction(r.Context(), tx); err != nil {
			log.Printf("import row %d: %v", i+2, err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: could not save", i+2))
			continue
		}
		result.Imported++
	}

	respond.JSON(w, http.StatusOK, "import complete", result)
}

func parseCSVRow(record []string) (models.Transaction, error) {
	if len(record) < 5 {
		return models.Transaction{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(record))
	}
	txType := record[0]
	if txType != models.TypeIncome && txType != models.TypeExpense {
		return models.Transaction{}, fmt.Errorf("invalid type %q", txType)
	}
	amount, err := strconv.ParseFloat(record[1], 64)
	if err != nil || amount <= 0 {
		return models.Transaction{}, fmt.Errorf("invalid amount %q", record[1])
	}
	date, err := time.Parse("2006-01-02", record[4])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid date %q", record[4])
	}
	return models.Transaction{
		Type:        txType,
		Amount:      amount,
		Description: record[2],
		Category:    record[3],
		Date:        date,
	}, nil
}
