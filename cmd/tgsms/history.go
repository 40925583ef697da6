package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

// createHistoryCommand creates the history command.
func createHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent send attempts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return fmt.Errorf("failed to get limit flag: %w", err)
			}

			env, err := openEnvironment(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			if env.journal == nil {
				return errors.New("send history database is unavailable")
			}

			records, err := env.journal.Recent(env.ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, "No messages sent yet.")
				return nil
			}
			for _, rec := range records {
				status := "FAIL"
				if rec.OK {
					status = "OK"
				}
				_, _ = fmt.Fprintf(out, "%s  %-4s  %s  %s\n",
					rec.CreatedAt.Format(time.RFC3339), status, rec.ChatID, rec.Detail)
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Number of entries to show")
	return cmd
}
