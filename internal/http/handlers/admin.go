package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/fintrackhq/fintrack-be/internal/http/respond"
	"github.com/fintrackhq/fintrack-be/internal/models/dto"
	"github.com/fintrackhq/fintrack-be/internal/storage"
)

// AdminHandler owns the user-management endpoints. Routes registered here
// must sit behind the admin middleware.
type AdminHandler struct {
	store storage.Store
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(store storage.Store) *AdminHandler {
	return &AdminHandler{store: store}
}

// Register attaches admin routes to the mux.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/admin/users", h.handleUsers)
	mux.HandleFunc("/admin/users/", h.handleUser)
}

func (h *AdminHandler) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("admin: list users: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for _, user := range users {
		transactions, err := h.store.ListTransactions(r.Context(), user.ID)
		if err != nil {
			log.Printf("admin: count transactions for %s: %v", user.ID, err)
			respond.Error(w, http.StatusInternalServerError, "failed to list users")
			return
		}
		summaries = append(summaries, dto.UserSummary{User: user, TransactionCount: len(transactions)})
	}
	respond.JSON(w, http.StatusOK, "ok", summaries)
}

// handleUser serves /admin/users/{id} and /admin/users/{id}/transactions.
func (h *AdminHandler) handleUser(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/users/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		respond.Error(w, http.StatusNotFound, "not found")
		return
	}

	switch {
	case sub == "transactions" && r.Method == http.MethodGet:
		h.handleUserTransactions(w, r, id)
	case sub == "" && r.Method == http.MethodDelete:
		h.handleDeleteUser(w, r, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AdminHandler) handleUserTransactions(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.GetUser(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	transactions, err := h.store.ListTransactions(r.Context(), id)
	if err != nil {
		log.Printf("admin: list transactions for %s: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", transactions)
}

func (h *AdminHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if user.IsAdmin() {
		respond.Error(w, http.StatusForbidden, "cannot delete the admin account")
		return
	}
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		log.Printf("admin: delete user %s: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	respond.JSON(w, http.StatusOK, "user deleted", map[string]string{"id": id})
}
