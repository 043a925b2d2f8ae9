package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-be/internal/assistant"
	"github.com/fintrackhq/fintrack-be/internal/auth"
	"github.com/fintrackhq/fintrack-be/internal/middleware"
	"github.com/fintrackhq/fintrack-be/internal/models"
)

type chatStore struct {
	transactions []models.Transaction
	nextID       int
}

func (s *chatStore) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *chatStore) CreateTransaction(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	s.nextID++
	tx.ID = fmt.Sprintf("tx-%d", s.nextID)
	s.transactions = append([]models.Transaction{tx}, s.transactions...)
	return tx, nil
}

func (s *chatStore) DeleteTransaction(_ context.Context, id string) error {
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			break
		}
	}
	return nil
}

func newChatServer(t *testing.T, store *chatStore) (*httptest.Server, string) {
	t.Helper()

	tokens := auth.NewTokenManager("test-secret", "fintrack-test", time.Hour)
	token, err := tokens.Generate(models.User{ID: "u1", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	mux := http.NewServeMux()
	NewChatHandler(assistant.New(store)).Register(mux)
	srv := httptest.NewServer(middleware.Authenticate(tokens, mux))
	t.Cleanup(srv.Close)
	return srv, token
}

func postChat(t *testing.T, srv *httptest.Server, token, message string) *http.Response {
	t.Helper()

	body := strings.NewReader(fmt.Sprintf(`{"message": %q}`, message))
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/chat", body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

type chatEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Text   string          `json:"text"`
		Action string          `json:"action,omitempty"`
		Data   json.RawMessage `json:"data,omitempty"`
	} `json:"data"`
}

func decodeChat(t *testing.T, resp *http.Response) chatEnvelope {
	t.Helper()
	defer resp.Body.Close()
	var env chatEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestChatRequiresAuth(t *testing.T) {
	srv, _ := newChatServer(t, &chatStore{})

	resp := postChat(t, srv, "", "What's my balance?")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	srv, token := newChatServer(t, &chatStore{})

	resp := postChat(t, srv, token, "   ")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestChatBalanceQuery(t *testing.T) {
	store := &chatStore{}
	store.CreateTransaction(context.Background(), models.Transaction{
		UserID: "u1", Type: models.TypeIncome, Amount: 500, Date: time.Now(),
	})
	srv, token := newChatServer(t, store)

	resp := postChat(t, srv, token, "What's my balance?")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeChat(t, resp)
	if !strings.Contains(env.Data.Text, "Current Balance: $500.00") {
		t.Fatalf("unexpected reply text: %s", env.Data.Text)
	}
	if env.Data.Action != "" {
		t.Fatalf("query reply must not carry an action, got %q", env.Data.Action)
	}
}

func TestChatAddActionPayload(t *testing.T) {
	store := &chatStore{}
	srv, token := newChatServer(t, store)

	resp := postChat(t, srv, token, "Add expense of $50 for groceries")
	env := decodeChat(t, resp)

	if env.Data.Action != "add" {
		t.Fatalf("action = %q, want add", env.Data.Action)
	}
	var tx models.Transaction
	if err := json.Unmarshal(env.Data.Data, &tx); err != nil {
		t.Fatalf("decode transaction payload: %v", err)
	}
	if tx.Amount != 50 || tx.Category != "Food & Dining" || tx.UserID != "u1" {
		t.Fatalf("payload = %+v", tx)
	}
	if len(store.transactions) != 1 {
		t.Fatalf("store has %d transactions, want 1", len(store.transactions))
	}
}

func TestChatDeleteActionPayload(t *testing.T) {
	store := &chatStore{}
	created, _ := store.CreateTransaction(context.Background(), models.Transaction{
		UserID: "u1", Type: models.TypeExpense, Amount: 25, Date: time.Now(),
	})
	srv, token := newChatServer(t, store)

	resp := postChat(t, srv, token, "delete last transaction")
	env := decodeChat(t, resp)

	if env.Data.Action != "delete" {
		t.Fatalf("action = %q, want delete", env.Data.Action)
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data.Data, &payload); err != nil {
		t.Fatalf("decode delete payload: %v", err)
	}
	if payload.ID != created.ID {
		t.Fatalf("deleted id = %q, want %q", payload.ID, created.ID)
	}
	if len(store.transactions) != 0 {
		t.Fatalf("store has %d transactions, want 0", len(store.transactions))
	}
}

func TestChatMethodNotAllowed(t *testing.T) {
	srv, token := newChatServer(t, &chatStore{})

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/chat", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}
