package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bloom/internal/cli"
	"github.com/Veraticus/bloom/internal/model"
	"github.com/Veraticus/bloom/internal/service"
	"github.com/Veraticus/bloom/internal/validation"
)

type knowledgeInput struct {
	Query string `name:"query" validate:"required"`
}

type purchasesInput struct {
	UserID int64 `name:"user" validate:"gt=0"`
	Limit  int   `name:"limit" validate:"gte=1,lte=200"`
}

func knowledgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "knowledge <query>",
		Short: "Search the flower knowledge base",
		Long: `Find flowers whose name, occasions, keywords or meaning mention any
word of the query.`,
		Example: `  bloom knowledge hoa hồng
  bloom knowledge valentine --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := knowledgeInput{Query: strings.TrimSpace(strings.Join(args, " "))}
			if err := validation.Struct(&input); err != nil {
				return err
			}

			return withStorage(cmd.Context(), func(store service.Storage) error {
				entries, err := store.SearchKnowledgeBase(cmd.Context(), input.Query)
				if err != nil {
					return fmt.Errorf("failed to search knowledge base: %w", err)
				}
				if entries == nil {
					entries = []model.FlowerKnowledge{}
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), entries)
				}
				return cli.WriteKnowledge(cmd.OutOrStdout(), entries)
			})
		},
	}
}

func purchasesCmd() *cobra.Command {
	var input purchasesInput

	cmd := &cobra.Command{
		Use:   "purchases",
		Short: "Show a customer's purchase history",
		Long: `List the products a customer has ordered, most recent purchase first.
Cancelled orders are not counted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.Struct(&input); err != nil {
				return err
			}

			return withStorage(cmd.Context(), func(store service.Storage) error {
				rows, err := store.GetUserPurchaseHistory(cmd.Context(), input.UserID, input.Limit)
				if err != nil {
					return fmt.Errorf("failed to get purchase history: %w", err)
				}
				if rows == nil {
					rows = []model.PurchasedProduct{}
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), rows)
				}
				return cli.WritePurchases(cmd.OutOrStdout(), rows)
			})
		},
	}

	cmd.Flags().Int64Var(&input.UserID, "user", 0, "customer id")
	cmd.Flags().IntVar(&input.Limit, "limit", 20, "maximum number of products")

	return cmd
}
