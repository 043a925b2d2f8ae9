package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fintrackhq/fintrack-be/internal/assistant"
	"github.com/fintrackhq/fintrack-be/internal/http/respond"
	"github.com/fintrackhq/fintrack-be/internal/middleware"
	"github.com/fintrackhq/fintrack-be/internal/models/dto"
)

// ChatHandler exposes the chat assistant over the API.
type ChatHandler struct {
	assistant *assistant.Assistant
}

// NewChatHandler constructs the handler.
func NewChatHandler(a *assistant.Assistant) *ChatHandler {
	return &ChatHandler{assistant: a}
}

// Register attaches the chat route to the mux.
func (h *ChatHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/chat", h.handleChat)
}

func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	reply := h.assistant.Interpret(r.Context(), req.Message, userID)
	respond.JSON(w, http.StatusOK, "ok", toChatResponse(reply))
}

// toChatResponse flattens the reply's tagged mutation into the wire format's
// optional action/data pair.
func toChatResponse(reply assistant.Reply) dto.ChatResponse {
	out := dto.ChatResponse{Text: reply.Text}
	switch reply.Mutation.Kind {
	case assistant.MutationAdd:
		out.Action = "add"
		out.Data = reply.Mutation.Transaction
	case assistant.MutationDelete:
		out.Action = "delete"
		out.Data = dto.DeletedTransaction{ID: reply.Mutation.DeletedID}
	}
	return out
}
