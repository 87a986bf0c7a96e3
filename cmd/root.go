package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/users"
	"github.com/abhisek/chemiz/internal/users/filerepo"
	"github.com/abhisek/chemiz/internal/users/sheetrepo"
)

var rootCmd = &cobra.Command{
	Use:   "chemiz",
	Short: "Periodic table quiz for the terminal",
	Long:  "Chemiz is a terminal quiz that drills element symbols, valencies and electron configurations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides CHEMIZ_DB env var)")
	pf.String("users-backend", "", "User store backend: sqlite, file, sheets or memory (overrides CHEMIZ_USERS_BACKEND)")
	pf.String("users-file", "", "JSON file for the file backend (overrides CHEMIZ_USERS_FILE)")
	pf.String("sheet-id", "", "Spreadsheet ID for the sheets backend (overrides CHEMIZ_SHEET_ID)")
	pf.String("sheet-name", "", "Worksheet name for the sheets backend (overrides CHEMIZ_SHEET_NAME)")
	pf.String("sheet-credentials", "", "Service-account key file for the sheets backend (overrides CHEMIZ_SHEET_CREDENTIALS)")
	pf.String("catalog", "", "Element catalog JSON file (default: built-in catalog)")
	pf.String("log-file", "", "Log file for the TUI (default: chemiz.log next to the database)")

	rootCmd.Flags().Bool("skip-splash", false, "Start on the login screen")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(elementCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CHEMIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// loadCatalog returns the catalog named by --catalog, or the built-in one.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		return catalog.LoadFile(p)
	}
	return catalog.Default()
}

// usersConfig reads the CHEMIZ_* environment and applies flag overrides.
func usersConfig(cmd *cobra.Command) users.Config {
	cfg := users.ConfigFromEnv()
	flags := cmd.Flags()
	if v, _ := flags.GetString("users-backend"); v != "" {
		cfg.Backend = v
	}
	if v, _ := flags.GetString("users-file"); v != "" {
		cfg.FilePath = v
	}
	if v, _ := flags.GetString("sheet-id"); v != "" {
		cfg.Sheet.SpreadsheetID = v
	}
	if v, _ := flags.GetString("sheet-name"); v != "" {
		cfg.Sheet.Worksheet = v
	}
	if v, _ := flags.GetString("sheet-credentials"); v != "" {
		cfg.Sheet.CredentialsFile = v
	}
	return cfg
}

// errNoDatabase is returned by openUsers for the sqlite backend when the
// database could not be opened.
var errNoDatabase = errors.New("database unavailable")

// openUsers builds the configured user repository. The sqlite backend
// shares st, which is nil when the database could not be opened.
func openUsers(ctx context.Context, cfg users.Config, st *store.Store, logger *slog.Logger) (users.Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("users config: %w", err)
	}
	switch cfg.Backend {
	case users.BackendFile:
		return filerepo.New(cfg.FilePath, logger), nil
	case users.BackendSheets:
		r, err := sheetrepo.NewRepo(ctx, cfg.Sheet, logger)
		if err != nil {
			return nil, err
		}
		return r, nil
	case users.BackendMemory:
		return users.NewMemory(), nil
	default:
		if st == nil {
			return nil, errNoDatabase
		}
		return st.UserRepo(), nil
	}
}

// openUsersCmd opens the store and the user repository for a CLI command.
// The caller closes the returned store.
func openUsersCmd(cmd *cobra.Command) (*store.Store, users.Repository, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	repo, err := openUsers(cmd.Context(), usersConfig(cmd), st, stderrLogger())
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, repo, nil
}

// stderrLogger is the logger of the one-shot CLI commands.
func stderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// fileLogger opens the TUI log file. The terminal belongs to the UI, so
// nothing is written to stderr while it runs.
func fileLogger(cmd *cobra.Command, dbPath string) (*slog.Logger, io.Closer, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		path = filepath.Join(filepath.Dir(dbPath), "chemiz.log")
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})), f, nil
}

// lookupUser fetches username and turns ErrNotFound into a readable error.
func lookupUser(ctx context.Context, repo users.Repository, username string) (*users.User, error) {
	u, err := repo.Get(ctx, username)
	if errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("no user named %q", username)
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}
