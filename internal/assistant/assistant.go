// Package assistant implements the rule-based chat assistant: it classifies a
// free-text prompt into an intent, runs the matching financial query or
// mutation against the transaction store, and renders a human-readable reply.
package assistant

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

// Store is the slice of persistence the assistant needs. List order must be
// created-at descending; "delete last transaction" takes the first element.
type Store interface {
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// MutationKind tags the side effect a reply asks the caller to apply.
type MutationKind int

const (
	MutationNone MutationKind = iota
	MutationAdd
	MutationDelete
)

// Mutation is the narrow side channel next to the reply text: either nothing,
// a created transaction, or the id of a deleted one.
type Mutation struct {
	Kind        MutationKind
	Transaction *models.Transaction // set for MutationAdd
	DeletedID   string              // set for MutationDelete
}

// Reply is what the assistant produces for a single prompt. It is never
// persisted; the caller applies the mutation and discards it.
type Reply struct {
	Text     string
	Mutation Mutation
}

// Assistant interprets prompts against a transaction store.
type Assistant struct {
	store Store
	now   func() time.Time
}

// New creates an assistant backed by the given store.
func New(store Store) *Assistant {
	return &Assistant{store: store, now: time.Now}
}

// NewWithClock creates an assistant with a fixed clock, used by tests.
func NewWithClock(store Store, now func() time.Time) *Assistant {
	return &Assistant{store: store, now: now}
}

// Intent patterns, tested in order against the lower-cased prompt. The order
// matters: a prompt like "add a transaction" matches both the add and delete
// word lists, and the first hit wins.
var (
	reBalance     = regexp.MustCompile(`balance|how much.*have`)
	reListing     = regexp.MustCompile(`recent|show|list|view.*transactions`)
	reCategory    = regexp.MustCompile(`spend.*on|spent.*on|expenses.*for`)
	reAddVerb     = regexp.MustCompile(`add|new|create|record`)
	reAddNoun     = regexp.MustCompile(`transaction|expense|income|spent|earned|paid|received`)
	reDeleteVerb  = regexp.MustCompile(`delete|remove|cancel`)
	reSavingsTips = regexp.MustCompile(`saving|save money|tips|advice|help.*save`)
	reHelp        = regexp.MustCompile(`help|how to|what can you do|features`)
)

// Interpret classifies the prompt and dispatches to the matching handler. It
// never returns an error: store failures are logged and converted into an
// apology reply, and an unrecognized prompt falls through to the menu.
func (a *Assistant) Interpret(ctx context.Context, prompt, userID string) Reply {
	lower := strings.ToLower(prompt)

	var reply Reply
	var err error

	switch {
	case reBalance.MatchString(lower):
		reply, err = a.handleBalance(ctx, userID)
	case reListing.MatchString(lower):
		reply, err = a.handleListing(ctx, userID, lower)
	case reCategory.MatchString(lower):
		reply, err = a.handleCategorySpending(ctx, userID, lower)
	case reAddVerb.MatchString(lower) && reAddNoun.MatchString(lower):
		reply, err = a.handleAdd(ctx, userID, prompt)
	case reDeleteVerb.MatchString(lower) && strings.Contains(lower, "transaction"):
		reply, err = a.handleDelete(ctx, userID, lower)
	case reSavingsTips.MatchString(lower):
		reply, err = a.handleSavingsTips(ctx, userID)
	case reHelp.MatchString(lower):
		return a.handleHelp(lower)
	default:
		return fallbackReply()
	}

	if err != nil {
		log.Printf("assistant: %v", err)
		return Reply{Text: "❌ Sorry, something went wrong while looking at your finances. Please try again."}
	}
	return reply
}

func fallbackReply() Reply {
	return Reply{Text: "I'm not sure how to help with that. Here's what you can ask me about:\n\n" +
		"📊 Financial Overview:\n" +
		"• 'What's my current balance?'\n" +
		"• 'Show my recent transactions'\n" +
		"• 'How much did I spend on groceries?'\n\n" +
		"💰 Transaction Management:\n" +
		"• 'Add new expense of $50 for groceries'\n" +
		"• 'Record income of $1000 for salary'\n" +
		"• 'Delete last transaction'\n\n" +
		"💡 Insights & Help:\n" +
		"• 'Give me savings tips'\n" +
		"• 'How do I use this app?'\n" +
		"• 'What features are available?'"}
}
