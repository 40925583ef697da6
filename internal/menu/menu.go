// Package menu implements the interactive text menu of tgsms. Menus are
// states of a single loop; every action reloads the configuration from disk
// and hands back the next state.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/wizzomafizzo/tgsms/internal/config"
	"github.com/wizzomafizzo/tgsms/internal/history"
	"github.com/wizzomafizzo/tgsms/internal/logging"
	"github.com/wizzomafizzo/tgsms/internal/prompt"
	"github.com/wizzomafizzo/tgsms/internal/sender"
)

const notConfigured = "Not configured"

// MessageSender delivers messages and owns the bot client handle
type MessageSender interface {
	Send(ctx context.Context, chatID, text, token, webhookURL string) sender.Result
	UseNetworkProxy(proxy string)
	Reset()
}

// Journal records send attempts
type Journal interface {
	Record(ctx context.Context, rec history.Record) (history.Record, error)
}

// Controller runs the menu loop
type Controller struct {
	store    *config.Store
	sender   MessageSender
	journal  Journal
	prompter prompt.Prompter
	out      io.Writer
	state    State
}

// Option customizes a Controller
type Option func(*Controller)

// WithJournal records every send attempt in j
func WithJournal(j Journal) Option {
	return func(c *Controller) {
		c.journal = j
	}
}

// New creates a controller starting at the main menu
func New(store *config.Store, s MessageSender, p prompt.Prompter, out io.Writer, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		sender:   s,
		prompter: p,
		out:      out,
		state:    MainMenu,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the menu that will be shown next
func (c *Controller) State() State {
	return c.state
}

// Run shows menus until the user exits or input ends. Only a failure to read
// input is returned as an error.
func (c *Controller) Run(ctx context.Context) error {
	logger := logging.Get(ctx)

	for c.state != Exit {
		next, err := c.step(ctx)
		if errors.Is(err, prompt.ErrCancelled) {
			logger.Debug().Str("state", c.state.String()).Msg("input closed")
			next = Exit
		} else if err != nil {
			return err
		}

		if next != c.state {
			logger.Debug().Str("from", c.state.String()).Str("to", next.String()).Msg("menu transition")
		}
		c.state = next
	}

	c.println("Goodbye!")
	return nil
}

func (c *Controller) step(ctx context.Context) (State, error) {
	s := screens[c.state]

	if s.header != "" {
		c.println(s.header)
	}
	choices := make([]string, len(s.items))
	for i, it := range s.items {
		choices[i] = strconv.Itoa(i + 1)
		c.printf("%d. %s\n", i+1, it.label)
	}

	choice, err := c.input(fmt.Sprintf("Enter your choice (%s):", strings.Join(choices, "/")))
	if err != nil {
		return c.state, err
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(s.items) {
		c.warn("Invalid choice. Please try again.")
		return c.state, nil
	}

	return s.items[n-1].run(c, ctx)
}

func (c *Controller) configureToken(ctx context.Context) (State, error) {
	token, err := c.input("Enter your Telegram Bot Token:")
	if err != nil {
		return c.state, err
	}

	cfg := c.store.Load(ctx)
	cfg.Token = token
	if err := c.store.Save(ctx, cfg); err != nil {
		c.fail("Failed to save configuration: " + err.Error())
		return LoggedInMenu, nil
	}

	c.succeed("Telegram Bot Token configured successfully!")
	return LoggedInMenu, nil
}

func (c *Controller) viewConfiguration(ctx context.Context) (State, error) {
	cfg := c.store.Load(ctx)

	c.println("Current Configuration:")
	c.printf("Telegram Bot Token: %s\n", orNotConfigured(cfg.Token))
	c.printf("Phone Number: %s\n", orNotConfigured(cfg.PhoneNumber))
	c.printf("Default Message: %s\n", orNotConfigured(cfg.Message))
	c.printf("Proxy URL: %s\n", orNotConfigured(cfg.Proxy))
	c.printf("Network Proxy: %s\n", orNotConfigured(cfg.HTTPProxy))
	c.println("")

	return LoggedInMenu, nil
}

func (c *Controller) sendTestMessage(ctx context.Context) (State, error) {
	cfg := c.store.Load(ctx)
	if !cfg.HasToken() {
		c.fail("Error: Telegram Bot Token is not configured. Please configure it first.")
		return LoggedInMenu, nil
	}

	chatID, err := c.input("Enter the phone number:")
	if err != nil {
		return c.state, err
	}
	text, err := c.input("Enter the test message:")
	if err != nil {
		return c.state, err
	}
	webhook, err := c.input("Enter the proxy URL (if any):")
	if err != nil {
		return c.state, err
	}

	c.sender.UseNetworkProxy(cfg.HTTPProxy)
	res := c.sender.Send(ctx, chatID, text, cfg.Token, webhook)
	if res.Sent {
		c.succeed(res.String())
	} else {
		c.fail(res.String())
	}

	c.record(ctx, chatID, webhook, res)
	return LoggedInMenu, nil
}

func (c *Controller) record(ctx context.Context, chatID, webhook string, res sender.Result) {
	if c.journal == nil {
		return
	}
	_, err := c.journal.Record(ctx, history.Record{
		ChatID:  chatID,
		Webhook: webhook,
		OK:      res.Sent,
		Detail:  res.String(),
	})
	if err != nil {
		logging.Get(ctx).Warn().Err(err).Msg("failed to record send")
	}
}

func (c *Controller) logout(ctx context.Context) (State, error) {
	c.sender.Reset()
	logging.Get(ctx).Info().Msg("bot client released")
	return MainMenu, nil
}

func (c *Controller) viewContacts(ctx context.Context) (State, error) {
	c.printContacts(c.store.Load(ctx))
	return ContactsMenu, nil
}

func (c *Controller) printContacts(cfg *config.Configuration) {
	if len(cfg.Contacts) == 0 {
		c.println("No contacts found.")
	} else {
		c.println("Contacts:")
		for i, contact := range cfg.Contacts {
			c.printf("%d. %s\n", i, contact)
		}
	}
	c.println("")
}

func (c *Controller) addContact(ctx context.Context) (State, error) {
	contact, err := c.input("Enter the phone number to add:")
	if err != nil {
		return c.state, err
	}
	if contact == "" {
		c.warn("Contact cannot be empty.")
		return ContactsMenu, nil
	}

	cfg := c.store.Load(ctx)
	cfg.AddContact(contact)
	if err := c.store.Save(ctx, cfg); err != nil {
		c.fail("Failed to save configuration: " + err.Error())
		return ContactsMenu, nil
	}

	c.succeed("Contact added successfully!")
	return ContactsMenu, nil
}

func (c *Controller) removeContact(ctx context.Context) (State, error) {
	cfg := c.store.Load(ctx)
	if len(cfg.Contacts) == 0 {
		c.warn("No contacts found.")
		return ContactsMenu, nil
	}

	c.printContacts(cfg)

	answer, err := c.input("Enter the index of the contact to remove:")
	if err != nil {
		return c.state, err
	}

	index, err := strconv.Atoi(answer)
	if err != nil {
		c.warn("Invalid index.")
		return ContactsMenu, nil
	}
	if err := cfg.RemoveContact(index); err != nil {
		c.warn("Invalid index.")
		return ContactsMenu, nil
	}

	if err := c.store.Save(ctx, cfg); err != nil {
		c.fail("Failed to save configuration: " + err.Error())
		return ContactsMenu, nil
	}

	c.succeed("Contact removed successfully!")
	return ContactsMenu, nil
}

func (c *Controller) input(label string) (string, error) {
	answer, err := prompt.TextInputWithPrompter(c.prompter, label)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return "", prompt.ErrCancelled
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return answer, nil
}

func (c *Controller) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *Controller) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Controller) succeed(s string) {
	_, _ = color.New(color.FgGreen).Fprintln(c.out, s)
}

func (c *Controller) warn(s string) {
	_, _ = color.New(color.FgYellow).Fprintln(c.out, s)
}

func (c *Controller) fail(s string) {
	_, _ = color.New(color.FgRed).Fprintln(c.out, s)
}

func orNotConfigured(s string) string {
	if s == "" {
		return notConfigured
	}
	return s
}
