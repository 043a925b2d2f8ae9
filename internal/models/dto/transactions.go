package dto

import (
	"time"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

type TransactionRequest struct {
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

type TransactionStats struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Savings       float64 `json:"savings"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse mirrors the assistant reply on the wire: the text plus an
// optional action/data side channel the client applies locally.
type ChatResponse struct {
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type DeletedTransaction struct {
	ID string `json:"id"`
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// UserSummary is the admin view of an account with its aggregate stats.
type UserSummary struct {
	User             models.User `json:"user"`
	TransactionCount int         `json:"transaction_count"`
}
