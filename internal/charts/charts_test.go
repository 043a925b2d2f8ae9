package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func sampleTransactions() []models.Transaction {
	now := time.Now()
	return []models.Transaction{
		{UserID: "u1", Type: models.TypeExpense, Amount: 300, Category: "Housing", Date: now},
		{UserID: "u1", Type: models.TypeExpense, Amount: 120, Category: "Food & Dining", Date: now},
		{UserID: "u1", Type: models.TypeIncome, Amount: 1000, Category: "salary", Date: now},
	}
}

func TestCategoryPie(t *testing.T) {
	png, err := NewRenderer().CategoryPie(sampleTransactions(), models.TypeExpense)
	if err != nil {
		t.Fatalf("render pie: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatalf("output is not a PNG (%d bytes)", len(png))
	}
}

func TestCategoryPieEmpty(t *testing.T) {
	png, err := NewRenderer().CategoryPie(nil, models.TypeExpense)
	if err != nil {
		t.Fatalf("render pie: %v", err)
	}
	if png != nil {
		t.Fatalf("expected nil for empty input, got %d bytes", len(png))
	}
}

func TestCategoryPieSkipsOtherType(t *testing.T) {
	incomeOnly := []models.Transaction{
		{UserID: "u1", Type: models.TypeIncome, Amount: 1000, Category: "salary", Date: time.Now()},
	}
	png, err := NewRenderer().CategoryPie(incomeOnly, models.TypeExpense)
	if err != nil {
		t.Fatalf("render pie: %v", err)
	}
	if png != nil {
		t.Fatalf("expected nil when no transactions match the type")
	}
}

func TestIncomeExpenseBars(t *testing.T) {
	png, err := NewRenderer().IncomeExpenseBars(sampleTransactions())
	if err != nil {
		t.Fatalf("render bars: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatalf("output is not a PNG (%d bytes)", len(png))
	}
}

func TestIncomeExpenseBarsEmpty(t *testing.T) {
	png, err := NewRenderer().IncomeExpenseBars(nil)
	if err != nil {
		t.Fatalf("render bars: %v", err)
	}
	if png != nil {
		t.Fatalf("expected nil for empty input, got %d bytes", len(png))
	}
}
