package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DefaultTimezone is used when neither the TZ environment variable nor
// the config file names a zone.
const DefaultTimezone = "America/New_York"

// DefaultCalendarID is the Google Calendar dumped when the config file
// does not name one.
const DefaultCalendarID = "primary"

// Config holds the application configuration.
type Config struct {
	Timezone    string `json:"timezone"`
	CalendarID  string `json:"calendar_id"`
	Credentials []byte
	Token       []byte
}

// Loader defines methods to load configuration, credentials, and token.
type Loader interface {
	LoadConfig() (*Config, error)
	LoadCredentials() ([]byte, error)
	LoadToken() ([]byte, error)
	SaveToken(token []byte) error
}

// FileLoader implements Loader by reading from the filesystem.
type FileLoader struct {
	configDir string
}

// NewFileLoader initializes a FileLoader with the config directory path.
func NewFileLoader() (*FileLoader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("unable to find user home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".hobbes")
	return &FileLoader{configDir: configDir}, nil
}

// LoadConfig reads the config.json file. A missing file is not an
// error; defaults apply.
func (f *FileLoader) LoadConfig() (*Config, error) {
	configPath := filepath.Join(f.configDir, "config.json")
	b, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", configPath, err)
	}

	var config Config
	if err := json.Unmarshal(b, &config); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	return &config, nil
}

// Location resolves the local timezone, read once at startup. The TZ
// environment variable wins over the config file, which wins over
// DefaultTimezone.
func (c *Config) Location() (*time.Location, error) {
	name := os.Getenv("TZ")
	if name == "" {
		name = c.Timezone
	}
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s): %w", name, err)
	}
	return loc, nil
}

// Calendar returns the configured Google Calendar ID.
func (c *Config) Calendar() string {
	if c.CalendarID == "" {
		return DefaultCalendarID
	}
	return c.CalendarID
}

// LoadCredentials reads the credentials.json file.
func (f *FileLoader) LoadCredentials() ([]byte, error) {
	credentialsPath := filepath.Join(f.configDir, "credentials.json")
	bytes, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", credentialsPath, err)
	}
	return bytes, nil
}

// LoadToken reads the token.json file.
func (f *FileLoader) LoadToken() ([]byte, error) {
	tokenPath := filepath.Join(f.configDir, "token.json")
	bytes, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// SaveToken writes the token.json file.
func (f *FileLoader) SaveToken(token []byte) error {
	tokenPath := filepath.Join(f.configDir, "token.json")
	if err := os.MkdirAll(f.configDir, 0o700); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}
	if err := os.WriteFile(tokenPath, token, 0o600); err != nil {
		return fmt.Errorf("unable to save token: %w", err)
	}
	return nil
}
