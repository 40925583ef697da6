package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/tgsms/internal/constants"
	"github.com/wizzomafizzo/tgsms/internal/menu"
	"github.com/wizzomafizzo/tgsms/internal/prompt"
	"github.com/wizzomafizzo/tgsms/internal/sender"
)

// createNewRootCommand creates the root command, which runs the interactive menu.
func createNewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tgsms",
		Short:        "Send Telegram messages to saved contacts from an interactive menu",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			p := newPrompter(cmd)
			defer func() { _ = p.Close() }()

			var opts []menu.Option
			if env.journal != nil {
				opts = append(opts, menu.WithJournal(env.journal))
			}

			ctrl := menu.New(env.store, sender.New(sender.Options{}), p, cmd.OutOrStdout(), opts...)
			if err := ctrl.Run(env.ctx); err != nil {
				return fmt.Errorf("menu stopped: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", envOr(constants.EnvConfigPath, constants.ConfigFilename),
		"Path to config file")
	rootCmd.PersistentFlags().String("log-level", envOr(constants.EnvLogLevel, "info"),
		"Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		createShowCommand(),
		createHistoryCommand(),
	)

	return rootCmd
}

// newPrompter uses a line editor on a real terminal and plain line reads otherwise
func newPrompter(cmd *cobra.Command) prompt.Prompter {
	if in, ok := cmd.InOrStdin().(*os.File); ok {
		return prompt.New(in, cmd.OutOrStdout())
	}
	return prompt.NewReaderPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
