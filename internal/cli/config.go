package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	Name         string
	DeviceID     string
	DeviceIDFile string
	Output       string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("GAMMON_SERVER", "http://localhost:3000"),
		Name:         os.Getenv("GAMMON_NAME"),
		DeviceID:     os.Getenv("GAMMON_DEVICE_ID"),
		DeviceIDFile: getEnvOrDefault("GAMMON_DEVICE_ID_FILE", defaultDeviceIDFile()),
		Output:       "text",
	}
}

// LoadDeviceID loads the persistent device id, generating and saving a
// fresh one on first use. This is the CLI's stand-in for the mobile
// app's device-identity cache: the same id is sent on every request so
// the server resolves the same player.
func (c *Config) LoadDeviceID() error {
	if c.DeviceID != "" {
		return nil
	}

	data, err := os.ReadFile(c.DeviceIDFile)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			c.DeviceID = id
			return nil
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	c.DeviceID = uuid.NewString()

	dir := filepath.Dir(c.DeviceIDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(c.DeviceIDFile, []byte(c.DeviceID), 0600)
}

func defaultDeviceIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gammon/device-id"
	}
	return filepath.Join(home, ".gammon", "device-id")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
