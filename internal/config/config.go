// Package config persists the tgsms configuration document: bot token,
// contacts and related settings, stored as a single JSON file.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/tgsms/internal/logging"
)

// ErrInvalidIndex is returned when a contact index is outside the list.
var ErrInvalidIndex = errors.New("invalid index")

// Configuration is the whole persisted state. Absent values are empty strings.
type Configuration struct {
	Token       string   `json:"token,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Message     string   `json:"message,omitempty"`
	Proxy       string   `json:"proxy,omitempty"`
	HTTPProxy   string   `json:"http_proxy,omitempty"`
	Contacts    []string `json:"contacts,omitempty"`
}

// HasToken reports whether a bot token is configured.
func (c *Configuration) HasToken() bool {
	return strings.TrimSpace(c.Token) != ""
}

// AddContact appends a contact to the end of the list.
func (c *Configuration) AddContact(contact string) {
	c.Contacts = append(c.Contacts, contact)
}

// RemoveContact deletes the contact at index and closes the gap so indices
// stay contiguous from zero. The list is left untouched on ErrInvalidIndex.
func (c *Configuration) RemoveContact(index int) error {
	if index < 0 || index >= len(c.Contacts) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	contacts := make([]string, 0, len(c.Contacts)-1)
	contacts = append(contacts, c.Contacts[:index]...)
	contacts = append(contacts, c.Contacts[index+1:]...)
	if len(contacts) == 0 {
		contacts = nil
	}
	c.Contacts = contacts
	return nil
}

// ContactMap returns the contacts keyed by their position.
func (c *Configuration) ContactMap() map[int]string {
	m := make(map[int]string, len(c.Contacts))
	for i, contact := range c.Contacts {
		m[i] = contact
	}
	return m
}

// Store reads and writes the configuration file
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a store for the file at path on fs
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration. A missing, unreadable or malformed file
// yields an empty configuration; the cause is only logged.
func (s *Store) Load(ctx context.Context) *Configuration {
	logger := logging.Get(ctx)

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Str("path", s.path).Msg("config file not found, using empty configuration")
		} else {
			logger.Warn().Err(err).Str("path", s.path).Msg("failed to read config file")
		}
		return &Configuration{}
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Warn().Err(err).Str("path", s.path).Msg("config file is not valid JSON, using empty configuration")
		return &Configuration{}
	}

	return &cfg
}

// Save overwrites the backing file with the full configuration as indented JSON
func (s *Store) Save(ctx context.Context, cfg *Configuration) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	data = append(data, '\n')

	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", s.path, err)
	}

	logging.Get(ctx).Debug().Str("path", s.path).Int("contacts", len(cfg.Contacts)).Msg("configuration saved")
	return nil
}
