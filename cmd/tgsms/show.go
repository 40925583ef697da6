package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type configView struct {
	Path        string   `yaml:"path"`
	Token       string   `yaml:"token"`
	PhoneNumber string   `yaml:"phone_number,omitempty"`
	Message     string   `yaml:"message,omitempty"`
	Proxy       string   `yaml:"proxy,omitempty"`
	HTTPProxy   string   `yaml:"http_proxy,omitempty"`
	Contacts    []string `yaml:"contacts"`
}

// createShowCommand creates the show command.
func createShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored configuration",
		Long:  "Print the stored configuration as YAML. The bot token is masked.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			cfg := env.store.Load(env.ctx)
			view := configView{
				Path:        env.store.Path(),
				Token:       maskToken(cfg.Token),
				PhoneNumber: cfg.PhoneNumber,
				Message:     cfg.Message,
				Proxy:       cfg.Proxy,
				HTTPProxy:   cfg.HTTPProxy,
				Contacts:    cfg.Contacts,
			}
			if view.Contacts == nil {
				view.Contacts = []string{}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(view); err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			if err := enc.Close(); err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			return nil
		},
	}
}

// maskToken keeps the last four characters visible
func maskToken(token string) string {
	if token == "" {
		return "Not configured"
	}
	const visible = 4
	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-visible) + token[len(token)-visible:]
}
