package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailydose/dailydose/internal/domain"
)

func newFavoritesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite quotes",
		Long:  `List, add and remove the favorites kept in the configured store.`,
	}

	cmd.AddCommand(
		newFavoritesListCmd(opts),
		newFavoritesAddCmd(opts),
		newFavoritesRemoveCmd(opts),
	)

	return cmd
}

func newFavoritesListCmd(opts *options) *cobra.Command {
	var (
		after string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites ordered by uuid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return domain.NewValidationErrorWithValue("limit", "must not be negative", limit)
			}

			return withRuntime(cmd.Context(), opts, func(rt *runtime) error {
				return printJSON(cmd.OutOrStdout(), rt.favorites.ListFavorites(cmd.Context(), after, limit))
			})
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "start after this uuid")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of favorites, 0 for all")

	return cmd
}

func newFavoritesAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <uuid>...",
		Short: "Fetch quotes from the API and add them to favorites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(rt *runtime) error {
				added, err := rt.quotes.AddFavoritesByUUID(cmd.Context(), args)
				if err != nil {
					return fmt.Errorf("adding favorites: %w", err)
				}

				return printJSON(cmd.OutOrStdout(), added)
			})
		},
	}
}

func newFavoritesRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <uuid>...",
		Aliases: []string{"rm"},
		Short:   "Remove favorites by uuid",
		Long:    `Removes each uuid from favorites. Unknown uuids are ignored.`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(rt *runtime) error {
				for _, uuid := range args {
					if err := rt.favorites.RemoveFavorite(cmd.Context(), uuid); err != nil {
						return fmt.Errorf("removing favorite %s: %w", uuid, err)
					}
				}

				fmt.Fprintf(cmd.OutOrStdout(), "removed %d favorite(s)\n", len(args))

				return nil
			})
		},
	}
}
