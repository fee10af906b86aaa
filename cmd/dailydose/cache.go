package main

import (
	"github.com/spf13/cobra"

	"github.com/dailydose/dailydose/internal/domain"
)

func newCacheCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the offline quote cache",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "quotes",
			Short: "Print the recently seen quotes, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withRuntime(cmd.Context(), opts, func(rt *runtime) error {
					quotes, ok := rt.cache.GetCachedQuotes(cmd.Context())
					if !ok {
						quotes = []domain.Quote{}
					}

					return printJSON(cmd.OutOrStdout(), quotes)
				})
			},
		},
		&cobra.Command{
			Use:   "qotd",
			Short: "Print today's cached quote of the day",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withRuntime(cmd.Context(), opts, func(rt *runtime) error {
					q, ok := rt.cache.GetCachedQOTD(cmd.Context())
					if !ok {
						return domain.NewNotFoundError("cached quote of the day", "today")
					}

					return printJSON(cmd.OutOrStdout(), q)
				})
			},
		},
	)

	return cmd
}
