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

type preferenceInput struct {
	Type       string  `name:"type" validate:"required"`
	Value      string  `name:"value" validate:"required"`
	UserID     int64   `name:"user" validate:"gt=0"`
	Confidence float64 `name:"confidence" validate:"gte=0,lte=1"`
}

func preferencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preferences",
		Short: "Manage customer preferences",
		Long: `Store and list what a customer likes, such as favorite colors or
flower types.`,
	}

	cmd.AddCommand(preferencesGetCmd())
	cmd.AddCommand(preferencesSetCmd())

	return cmd
}

func preferencesGetCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "get",
		Short: "List a customer's preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := struct {
				UserID int64 `name:"user" validate:"gt=0"`
			}{UserID: userID}
			if err := validation.Struct(&input); err != nil {
				return err
			}

			return withStorage(cmd.Context(), func(store service.Storage) error {
				prefs, err := store.GetUserPreferences(cmd.Context(), userID)
				if err != nil {
					return fmt.Errorf("failed to get preferences: %w", err)
				}
				if prefs == nil {
					prefs = []model.UserPreference{}
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), prefs)
				}
				return cli.WritePreferences(cmd.OutOrStdout(), prefs)
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "customer id")

	return cmd
}

func preferencesSetCmd() *cobra.Command {
	var input preferenceInput

	cmd := &cobra.Command{
		Use:     "set <type> <value>",
		Short:   "Save a customer preference",
		Long:    `Save or replace one preference. Confidence defaults to 1.0.`,
		Example: `  bloom preferences set color "hồng pastel" --user 12`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Type = strings.TrimSpace(args[0])
			input.Value = strings.TrimSpace(args[1])
			if err := validation.Struct(&input); err != nil {
				return err
			}

			return withStorage(cmd.Context(), func(store service.Storage) error {
				pref := &model.UserPreference{
					UserID:     input.UserID,
					Type:       input.Type,
					Value:      input.Value,
					Confidence: input.Confidence,
				}
				if err := store.SaveUserPreference(cmd.Context(), pref); err != nil {
					return fmt.Errorf("failed to save preference: %w", err)
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), pref)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved %s = %s", pref.Type, pref.Value)))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&input.UserID, "user", 0, "customer id")
	cmd.Flags().Float64Var(&input.Confidence, "confidence", 1.0, "how sure we are, 0 to 1")

	return cmd
}
