package users

import (
	"fmt"
	"os"
)

// Backend names accepted by Config.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendSheets = "sheets"
	BackendMemory = "memory"
)

// Config selects and configures the user store backend.
type Config struct {
	// Backend is one of "sqlite", "file", "sheets" or "memory".
	// Default: "sqlite".
	Backend string

	// FilePath is the JSON file used by the file backend.
	// Default: "users_info.json".
	FilePath string

	Sheet SheetConfig
}

// SheetConfig holds the spreadsheet backend settings.
type SheetConfig struct {
	SpreadsheetID   string
	Worksheet       string // Default: "users"
	CredentialsFile string // service-account JSON key
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendSQLite,
		FilePath: "users_info.json",
		Sheet: SheetConfig{
			Worksheet: "users",
		},
	}
}

// ConfigFromEnv builds a Config from CHEMIZ_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if b := os.Getenv("CHEMIZ_USERS_BACKEND"); b != "" {
		cfg.Backend = b
	}
	if p := os.Getenv("CHEMIZ_USERS_FILE"); p != "" {
		cfg.FilePath = p
	}
	if id := os.Getenv("CHEMIZ_SHEET_ID"); id != "" {
		cfg.Sheet.SpreadsheetID = id
	}
	if n := os.Getenv("CHEMIZ_SHEET_NAME"); n != "" {
		cfg.Sheet.Worksheet = n
	}
	if c := os.Getenv("CHEMIZ_SHEET_CREDENTIALS"); c != "" {
		cfg.Sheet.CredentialsFile = c
	}

	return cfg
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendMemory:
		// Nothing to configure.
	case BackendFile:
		if c.FilePath == "" {
			return fmt.Errorf("CHEMIZ_USERS_FILE is required for the file backend")
		}
	case BackendSheets:
		if c.Sheet.SpreadsheetID == "" {
			return fmt.Errorf("CHEMIZ_SHEET_ID is required for the sheets backend")
		}
		if c.Sheet.CredentialsFile == "" {
			return fmt.Errorf("CHEMIZ_SHEET_CREDENTIALS is required for the sheets backend")
		}
		if c.Sheet.Worksheet == "" {
			return fmt.Errorf("worksheet name must not be empty")
		}
	default:
		return fmt.Errorf("unknown users backend: %q", c.Backend)
	}
	return nil
}
