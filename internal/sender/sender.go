// Package sender delivers text messages through the Telegram Bot API.
package sender

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wizzomafizzo/tgsms/internal/logging"
)

const (
	successText = "Message sent successfully!"
	failureText = "Error sending message: "
)

// ErrNoToken is reported when a send is attempted without a bot token.
var ErrNoToken = errors.New("bot token is not configured")

// Options configure how the Bot API is reached
type Options struct {
	// HTTPClient overrides the client used for API calls
	HTTPClient *http.Client
	// APIEndpoint is a format string taking the token and method name.
	// Defaults to the public Bot API.
	APIEndpoint string
}

// Result is the outcome of one send
type Result struct {
	Err  error
	Sent bool
}

// String returns the message shown to the user
func (r Result) String() string {
	if r.Sent {
		return successText
	}
	if r.Err == nil {
		return failureText + "unknown error"
	}
	return failureText + r.Err.Error()
}

// Sender owns the bot client handle. The handle is created from the token on
// the first send and reused until the token changes or Reset is called.
type Sender struct {
	client       *tgbotapi.BotAPI
	validate     *validator.Validate
	opts         Options
	networkProxy string
}

// New creates a sender
func New(opts Options) *Sender {
	if opts.APIEndpoint == "" {
		opts.APIEndpoint = tgbotapi.APIEndpoint
	}
	return &Sender{
		opts:     opts,
		validate: validator.New(),
	}
}

// Connected reports whether a bot client is currently held
func (s *Sender) Connected() bool {
	return s.client != nil
}

// Reset drops the bot client
func (s *Sender) Reset() {
	s.client = nil
}

// UseNetworkProxy routes later API calls through an HTTP proxy. An empty
// value means a direct connection. Changing it drops the current client.
// Ignored when Options.HTTPClient is set.
func (s *Sender) UseNetworkProxy(proxy string) {
	if proxy != s.networkProxy {
		s.networkProxy = proxy
		s.client = nil
	}
}

// Send registers webhookURL when it is set and then sends text to chatID.
// chatID and text are passed to the API as given.
func (s *Sender) Send(ctx context.Context, chatID, text, token, webhookURL string) Result {
	logger := logging.Get(ctx)

	if strings.TrimSpace(token) == "" {
		return Result{Err: ErrNoToken}
	}

	bot, err := s.botFor(token)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to create bot client")
		return Result{Err: err}
	}

	if webhookURL != "" {
		if err := s.setWebhook(bot, webhookURL); err != nil {
			logger.Warn().Err(err).Str("webhook", webhookURL).Msg("failed to set webhook")
			return Result{Err: err}
		}
		logger.Info().Str("webhook", webhookURL).Msg("webhook registered")
	}

	msg := tgbotapi.NewMessageToChannel(chatID, text)
	if _, err := bot.Send(msg); err != nil {
		logger.Warn().Err(err).Str("chat_id", chatID).Msg("send failed")
		return Result{Err: err}
	}

	logger.Info().Str("chat_id", chatID).Int("length", len(text)).Msg("message sent")
	return Result{Sent: true}
}

func (s *Sender) botFor(token string) (*tgbotapi.BotAPI, error) {
	if s.client != nil && s.client.Token == token {
		return s.client, nil
	}

	httpClient, err := s.httpClient()
	if err != nil {
		return nil, err
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, s.opts.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}

	s.client = bot
	return bot, nil
}

func (s *Sender) httpClient() (*http.Client, error) {
	if s.opts.HTTPClient != nil {
		return s.opts.HTTPClient, nil
	}
	if s.networkProxy == "" {
		return &http.Client{}, nil
	}

	if err := s.validate.Var(s.networkProxy, "url"); err != nil {
		return nil, fmt.Errorf("invalid network proxy %q: %w", s.networkProxy, err)
	}
	proxyURL, err := url.Parse(s.networkProxy)
	if err != nil {
		return nil, fmt.Errorf("invalid network proxy %q: %w", s.networkProxy, err)
	}

	return &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
	}, nil
}

func (s *Sender) setWebhook(bot *tgbotapi.BotAPI, webhookURL string) error {
	if err := s.validate.Var(webhookURL, "url"); err != nil {
		return fmt.Errorf("invalid webhook URL %q: %w", webhookURL, err)
	}

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook URL %q: %w", webhookURL, err)
	}

	if _, err := bot.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	return nil
}
