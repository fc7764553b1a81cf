package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bloom/internal/cli"
	"github.com/Veraticus/bloom/internal/common"
	"github.com/Veraticus/bloom/internal/service"
	"github.com/Veraticus/bloom/internal/validation"
)

type recommendInput struct {
	SessionID string `name:"session" validate:"required"`
	UserID    int64  `name:"user" validate:"gte=0"`
	Limit     int    `name:"limit" validate:"gte=0,lte=100"`
}

type similarInput struct {
	ProductID int64 `name:"product-id" validate:"gt=0"`
	Limit     int   `name:"limit" validate:"gte=0,lte=100"`
}

type trackViewInput struct {
	SessionID string `name:"session" validate:"required"`
	ProductID int64  `name:"product" validate:"gt=0"`
	UserID    int64  `name:"user" validate:"gte=0"`
}

func recommendCmd() *cobra.Command {
	var input recommendInput

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show personalized product recommendations",
		Long: `Rank products for a customer from their purchases, views and wishlist,
topped up with the shop's best sellers.

A session id is required; pass --user 0 for an anonymous visitor.`,
		Example: `  bloom recommend --user 12 --session 4f1c...
  bloom recommend --session 4f1c... --limit 4 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.Struct(&input); err != nil {
				return err
			}
			limit := limitOrDefault(input.Limit, settings.Recommend.Limit)

			return withStorage(cmd.Context(), func(store service.Storage) error {
				recs, err := newEngine(store).RecommendFor(cmd.Context(), input.UserID, input.SessionID, limit)
				if err != nil {
					return fmt.Errorf("failed to get recommendations: %w", err)
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), recs)
				}
				return cli.WriteRecommendations(cmd.OutOrStdout(), recs)
			})
		},
	}

	cmd.Flags().Int64Var(&input.UserID, "user", 0, "customer id (0 for anonymous)")
	cmd.Flags().StringVar(&input.SessionID, "session", "", "browsing session id")
	cmd.Flags().IntVar(&input.Limit, "limit", 0, "number of products (default from config)")

	return cmd
}

func similarCmd() *cobra.Command {
	var input similarInput

	cmd := &cobra.Command{
		Use:   "similar <product-id>",
		Short: "Show products similar to a given product",
		Long: `List products from the same category in a similar price range,
closest price first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", args[0], err)
			}
			input.ProductID = id
			if err := validation.Struct(&input); err != nil {
				return err
			}
			limit := limitOrDefault(input.Limit, settings.Recommend.SimilarLimit)

			return withStorage(cmd.Context(), func(store service.Storage) error {
				recs, err := newEngine(store).Similar(cmd.Context(), input.ProductID, limit)
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("Product %d not found", input.ProductID), err)
				}
				if err != nil {
					return fmt.Errorf("failed to find similar products: %w", err)
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), recs)
				}
				return cli.WriteRecommendations(cmd.OutOrStdout(), recs)
			})
		},
	}

	cmd.Flags().IntVar(&input.Limit, "limit", 0, "number of products (default from config)")

	return cmd
}

func trackViewCmd() *cobra.Command {
	var input trackViewInput

	cmd := &cobra.Command{
		Use:   "track-view",
		Short: "Record a product page view",
		Long: `Record that a visitor viewed a product. Views feed the recently
viewed signal of the recommendation engine.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.Struct(&input); err != nil {
				return err
			}

			return withStorage(cmd.Context(), func(store service.Storage) error {
				if err := store.TrackView(cmd.Context(), input.UserID, input.SessionID, input.ProductID); err != nil {
					return fmt.Errorf("failed to track view: %w", err)
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), map[string]bool{"success": true})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("View recorded."))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&input.UserID, "user", 0, "customer id (0 for anonymous)")
	cmd.Flags().StringVar(&input.SessionID, "session", "", "browsing session id")
	cmd.Flags().Int64Var(&input.ProductID, "product", 0, "viewed product id")

	return cmd
}
