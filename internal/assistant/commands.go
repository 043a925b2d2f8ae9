package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

func (a *Assistant) handleAdd(ctx context.Context, userID, prompt string) (Reply, error) {
	cmd, ok := extractCommand(prompt)
	if !ok {
		return Reply{Text: "I couldn't understand the amount. Please specify it clearly, like:\n" +
			"• 'Add expense of $50 for groceries'\n" +
			"• 'New income of $1000 from salary'"}, nil
	}

	description := cmd.Description
	if description == "" {
		description = "Unspecified"
	}

	now := a.now()
	created, err := a.store.CreateTransaction(ctx, models.Transaction{
		UserID:      userID,
		Type:        cmd.Type,
		Amount:      cmd.Amount,
		Description: description,
		Category:    cmd.Category,
		// The chat path always stamps the current time; backdating is only
		// available through the transaction form.
		Date: now,
	})
	if err != nil {
		log.Printf("assistant: add transaction: %v", err)
		return Reply{Text: "❌ Sorry, I couldn't add the transaction. Please try again or add it manually."}, nil
	}

	text := fmt.Sprintf("✅ Successfully added %s:\n", created.Type) +
		fmt.Sprintf("💰 Amount: %s\n", formatCurrency(created.Amount)) +
		fmt.Sprintf("📝 Description: %s\n", created.Description) +
		fmt.Sprintf("🏷️ Category: %s", created.Category)

	return Reply{
		Text:     text,
		Mutation: Mutation{Kind: MutationAdd, Transaction: &created},
	}, nil
}

func (a *Assistant) handleDelete(ctx context.Context, userID, prompt string) (Reply, error) {
	if !strings.Contains(prompt, "last") {
		// Deliberately narrow command surface: only the most recent
		// transaction can be deleted through chat.
		return Reply{Text: "Please specify which transaction to delete. You can:\n" +
			"• Say 'delete last transaction'\n" +
			"• Use the delete button in the transaction list"}, nil
	}

	transactions, err := a.store.ListTransactions(ctx, userID)
	if err != nil {
		return Reply{}, fmt.Errorf("delete transaction: %w", err)
	}
	if len(transactions) == 0 {
		return Reply{Text: "❌ No transactions found to delete."}, nil
	}

	// The store lists newest-created first, so "last" is the head element.
	last := transactions[0]
	if err := a.store.DeleteTransaction(ctx, last.ID); err != nil {
		return Reply{}, fmt.Errorf("delete transaction %s: %w", last.ID, err)
	}

	text := "✅ Deleted last transaction:\n" +
		fmt.Sprintf("💰 Amount: %s\n", formatCurrency(last.Amount)) +
		fmt.Sprintf("📝 Description: %s\n", last.Description) +
		fmt.Sprintf("🏷️ Category: %s", last.Category)

	return Reply{
		Text:     text,
		Mutation: Mutation{Kind: MutationDelete, DeletedID: last.ID},
	}, nil
}
