package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

// fakeStore keeps transactions in memory, newest-created first, matching the
// order contract of the real store.
type fakeStore struct {
	transactions []models.Transaction
	nextID       int
	listErr      error
	createErr    error
	deleteCalls  int
}

func (f *fakeStore) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Transaction
	for _, t := range f.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateTransaction(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	if f.createErr != nil {
		return models.Transaction{}, f.createErr
	}
	f.nextID++
	tx.ID = fmt.Sprintf("tx-%d", f.nextID)
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = tx.CreatedAt
	f.transactions = append([]models.Transaction{tx}, f.transactions...)
	return tx, nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, id string) error {
	f.deleteCalls++
	for i, t := range f.transactions {
		if t.ID == id {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	// Deleting a missing id is not an error.
	return nil
}

func newTestAssistant(store *fakeStore) *Assistant {
	return NewWithClock(store, func() time.Time { return fixedNow })
}

func seed(store *fakeStore, userID, txType string, amount float64, category string, date time.Time) models.Transaction {
	tx, _ := store.CreateTransaction(context.Background(), models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: category,
		Category:    category,
		Date:        date,
	})
	return tx
}

func TestBalanceQuery(t *testing.T) {
	store := &fakeStore{}
	seed(store, "u1", models.TypeIncome, 1000, "salary", fixedNow)
	seed(store, "u1", models.TypeExpense, 200, "Food & Dining", fixedNow)

	reply := newTestAssistant(store).Interpret(context.Background(), "What's my balance?", "u1")

	if !strings.Contains(reply.Text, "$1,000.00") {
		t.Fatalf("reply missing income total: %s", reply.Text)
	}
	if !strings.Contains(reply.Text, "Current Balance: $800.00") {
		t.Fatalf("reply missing net balance: %s", reply.Text)
	}
	if reply.Mutation.Kind != MutationNone {
		t.Fatalf("balance query must not mutate, got kind %v", reply.Mutation.Kind)
	}
}

func TestBalanceIndependentOfOrder(t *testing.T) {
	forward := &fakeStore{}
	seed(forward, "u1", models.TypeIncome, 1000, "salary", fixedNow)
	seed(forward, "u1", models.TypeExpense, 200, "Housing", fixedNow)

	reversed := &fakeStore{}
	seed(reversed, "u1", models.TypeExpense, 200, "Housing", fixedNow)
	seed(reversed, "u1", models.TypeIncome, 1000, "salary", fixedNow)

	a := newTestAssistant(forward).Interpret(context.Background(), "balance", "u1")
	b := newTestAssistant(reversed).Interpret(context.Background(), "balance", "u1")
	if a.Text != b.Text {
		t.Fatalf("balance depends on transaction order:\n%s\nvs\n%s", a.Text, b.Text)
	}
}

func TestAddExpenseByChat(t *testing.T) {
	store := &fakeStore{}
	reply := newTestAssistant(store).Interpret(context.Background(), "Add expense of $50 for groceries", "u1")

	if reply.Mutation.Kind != MutationAdd {
		t.Fatalf("expected add mutation, got %v (text: %s)", reply.Mutation.Kind, reply.Text)
	}
	created := reply.Mutation.Transaction
	if created == nil {
		t.Fatal("add mutation missing transaction")
	}
	if created.Amount != 50 || created.Type != models.TypeExpense {
		t.Fatalf("created = %+v, want $50 expense", created)
	}
	if created.Category != "Food & Dining" || created.Description != "groceries" {
		t.Fatalf("created = %+v, want groceries / Food & Dining", created)
	}
	if !created.Date.Equal(fixedNow) {
		t.Fatalf("chat adds must stamp now, got %v", created.Date)
	}
	if len(store.transactions) != 1 {
		t.Fatalf("store has %d transactions, want 1", len(store.transactions))
	}
	if !strings.Contains(reply.Text, "Successfully added expense") {
		t.Fatalf("unexpected confirmation: %s", reply.Text)
	}
}

func TestAddWithoutAmountLeavesStoreUnchanged(t *testing.T) {
	store := &fakeStore{}
	reply := newTestAssistant(store).Interpret(context.Background(), "Add new expense", "u1")

	if reply.Mutation.Kind != MutationNone {
		t.Fatalf("expected no mutation, got %v", reply.Mutation.Kind)
	}
	if len(store.transactions) != 0 {
		t.Fatalf("store mutated on unparseable amount: %d transactions", len(store.transactions))
	}
	if !strings.Contains(reply.Text, "couldn't understand the amount") {
		t.Fatalf("expected clarification request, got: %s", reply.Text)
	}
}

func TestDeleteLastTransaction(t *testing.T) {
	store := &fakeStore{}
	seed(store, "u1", models.TypeExpense, 10, "Housing", fixedNow.Add(-2*time.Hour))
	b := seed(store, "u1", models.TypeExpense, 20, "Shopping", fixedNow.Add(-time.Hour))

	reply := newTestAssistant(store).Interpret(context.Background(), "delete last transaction", "u1")

	if reply.Mutation.Kind != MutationDelete {
		t.Fatalf("expected delete mutation, got %v (text: %s)", reply.Mutation.Kind, reply.Text)
	}
	if reply.Mutation.DeletedID != b.ID {
		t.Fatalf("deleted %s, want most recently created %s", reply.Mutation.DeletedID, b.ID)
	}
	if len(store.transactions) != 1 {
		t.Fatalf("store has %d transactions after delete, want 1", len(store.transactions))
	}
	if !strings.Contains(reply.Text, "$20.00") {
		t.Fatalf("reply should describe the deleted transaction: %s", reply.Text)
	}
}

func TestDeleteLastWithNoTransactions(t *testing.T) {
	store := &fakeStore{}
	reply := newTestAssistant(store).Interpret(context.Background(), "delete last transaction", "u1")

	if reply.Mutation.Kind != MutationNone {
		t.Fatalf("expected no mutation, got %v", reply.Mutation.Kind)
	}
	if store.deleteCalls != 0 {
		t.Fatalf("delete called %d times on empty store", store.deleteCalls)
	}
	if !strings.Contains(reply.Text, "No transactions found to delete") {
		t.Fatalf("unexpected reply: %s", reply.Text)
	}
}

func TestDeleteWithoutLastKeyword(t *testing.T) {
	store := &fakeStore{}
	seed(store, "u1", models.TypeExpense, 10, "Housing", fixedNow)

	reply := newTestAssistant(store).Interpret(context.Background(), "delete the transaction from yesterday", "u1")

	if reply.Mutation.Kind != MutationNone || len(store.transactions) != 1 {
		t.Fatalf("only 'delete last transaction' may delete; got kind %v, %d transactions",
			reply.Mutation.Kind, len(store.transactions))
	}
	if !strings.Contains(reply.Text, "delete last transaction") {
		t.Fatalf("expected instructional reply, got: %s", reply.Text)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store := &fakeStore{}
	tx := seed(store, "u1", models.TypeExpense, 10, "Housing", fixedNow)

	if err := store.DeleteTransaction(context.Background(), tx.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.DeleteTransaction(context.Background(), tx.ID); err != nil {
		t.Fatalf("second delete of same id must be a no-op, got: %v", err)
	}
}

func TestCategorySpendingQuery(t *testing.T) {
	store := &fakeStore{}
	seed(store, "u1", models.TypeExpense, 70, "Food & Dining", fixedNow)
	seed(store, "u1", models.TypeExpense, 50, "Food & Dining", fixedNow)
	seed(store, "u1", models.TypeExpense, 300, "Housing", fixedNow)

	reply := newTestAssistant(store).Interpret(context.Background(), "How much did I spend on Food?", "u1")

	if !strings.Contains(reply.Text, "Food & Dining: $120.00") {
		t.Fatalf("reply missing category total: %s", reply.Text)
	}
	if strings.Contains(reply.Text, "Housing") {
		t.Fatalf("reply should be narrowed to the matched category: %s", reply.Text)
	}
	if !strings.Contains(reply.Text, "Total: $120.00") {
		t.Fatalf("grand total should equal the per-category sum: %s", reply.Text)
	}
}

func TestCategoryBreakdownTotalsMatch(t *testing.T) {
	store := &fakeStore{}
	seed(store, "u1", models.TypeExpense, 30, "Housing", fixedNow)
	seed(store, "u1", models.TypeExpense, 45, "Entertainment", fixedNow)
	seed(store, "u1", models.TypeExpense, 25, "Entertainment", fixedNow)

	reply := newTestAssistant(store).Interpret(context.Background(), "What did I spend money on?", "u1")

	if !strings.Contains(reply.Text, "Entertainment: $70.00") || !strings.Contains(reply.Text, "Housing: $30.00") {
		t.Fatalf("breakdown missing categories: %s", reply.Text)
	}
	if !strings.Contains(reply.Text, "Total: $100.00") {
		t.Fatalf("grand total must equal the sum of per-category totals: %s", reply.Text)
	}
}

func TestCategorySpendingEmptyResult(t *testing.T) {
	store := &fakeStore{}
	reply := newTestAssistant(store).Interpret(context.Background(), "How much did I spend on Food?", "u1")

	if !strings.Contains(reply.Text, "No transactions found") {
		t.Fatalf("empty result should be descriptive, not an error: %s", reply.Text)
	}
}

func TestTransactionListingTruncatesAtFive(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 7; i++ {
		seed(store, "u1", models.TypeExpense, float64(10+i), "Shopping", fixedNow.Add(-time.Duration(i)*time.Hour))
	}

	reply := newTestAssistant(store).Interpret(context.Background(), "show my recent transactions", "u1")

	if !strings.Contains(reply.Text, "...and 2 more transactions") {
		t.Fatalf("expected truncation suffix: %s", reply.Text)
	}
	if !strings.Contains(reply.Text, "📊 Summary:") {
		t.Fatalf("expected window summary: %s", reply.Text)
	}
}

func TestTransactionListingLastMonthExcluded(t *testing.T) {
	store := &fakeStore{}
	seed(store, "u1", models.TypeExpense, 10, "Shopping", fixedNow.AddDate(0, 0, -45))

	reply := newTestAssistant(store).Interpret(context.Background(), "show my recent transactions", "u1")

	if !strings.Contains(reply.Text, "No transactions found between") {
		t.Fatalf("out-of-window transactions must be filtered: %s", reply.Text)
	}
}

func TestSavingsTipsHighExpenseWarning(t *testing.T) {
	store := &fakeStore{}
	seed(store, "u1", models.TypeIncome, 1000, "salary", fixedNow)
	seed(store, "u1", models.TypeExpense, 900, "Shopping", fixedNow)

	reply := newTestAssistant(store).Interpret(context.Background(), "give me savings tips", "u1")

	if !strings.Contains(reply.Text, "High Expense Alert") {
		t.Fatalf("expected warning when expenses exceed 80%% of income: %s", reply.Text)
	}
	if !strings.Contains(reply.Text, "50/30/20") {
		t.Fatalf("expected the budgeting template: %s", reply.Text)
	}
}

func TestSavingsTipsNoWarningUnderThreshold(t *testing.T) {
	store := &fakeStore{}
	seed(store, "u1", models.TypeIncome, 1000, "salary", fixedNow)
	seed(store, "u1", models.TypeExpense, 100, "Shopping", fixedNow)

	reply := newTestAssistant(store).Interpret(context.Background(), "give me savings tips", "u1")

	if strings.Contains(reply.Text, "High Expense Alert") {
		t.Fatalf("warning should be absent below the threshold: %s", reply.Text)
	}
}

func TestHelpQuery(t *testing.T) {
	store := &fakeStore{}
	reply := newTestAssistant(store).Interpret(context.Background(), "how to create an entry", "u1")

	if !strings.Contains(reply.Text, "How to Add Transactions") {
		t.Fatalf("expected add-specific help: %s", reply.Text)
	}
}

func TestHelpQueryGeneric(t *testing.T) {
	store := &fakeStore{}
	reply := newTestAssistant(store).Interpret(context.Background(), "what can you do?", "u1")

	if !strings.Contains(reply.Text, "Finance Assistant Help") {
		t.Fatalf("expected general help menu: %s", reply.Text)
	}
	if reply.Mutation.Kind != MutationNone {
		t.Fatalf("help must not mutate")
	}
}

func TestFallbackMenu(t *testing.T) {
	store := &fakeStore{}
	reply := newTestAssistant(store).Interpret(context.Background(), "asdkjh random text", "u1")

	if reply.Mutation.Kind != MutationNone {
		t.Fatalf("fallback must not mutate, got %v", reply.Mutation.Kind)
	}
	if !strings.Contains(reply.Text, "I'm not sure how to help with that") {
		t.Fatalf("expected the menu reply: %s", reply.Text)
	}
}

func TestStoreFailureBecomesApology(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	reply := newTestAssistant(store).Interpret(context.Background(), "What's my balance?", "u1")

	if !strings.Contains(reply.Text, "Sorry") {
		t.Fatalf("store failure must surface as an apology, got: %s", reply.Text)
	}
	if reply.Mutation.Kind != MutationNone {
		t.Fatalf("failed query must not carry a mutation")
	}
}

func TestAddIntentWinsOverDelete(t *testing.T) {
	// "add" and "transaction" also satisfy the delete word list's noun check;
	// the router must hit add first.
	store := &fakeStore{}
	reply := newTestAssistant(store).Interpret(context.Background(), "add a transaction of $5 for bus fare", "u1")

	if reply.Mutation.Kind != MutationAdd {
		t.Fatalf("expected add intent, got %v (text: %s)", reply.Mutation.Kind, reply.Text)
	}
	if reply.Mutation.Transaction.Category != "Transportation" {
		t.Fatalf("category = %q, want Transportation", reply.Mutation.Transaction.Category)
	}
}
