package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newQOTDCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "qotd",
		Short: "Fetch the quote of the day",
		Long: `Fetches the quote of the day from the API and caches it. When the API
is unreachable, today's cached copy is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), opts, func(rt *runtime) error {
				q, err := rt.quotes.QuoteOfTheDay(cmd.Context())
				if err != nil {
					return fmt.Errorf("quote of the day: %w", err)
				}

				if asJSON {
					return printJSON(cmd.OutOrStdout(), q)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%q\n  - %s\n", q.Text, q.Author)

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the quote as JSON")

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
