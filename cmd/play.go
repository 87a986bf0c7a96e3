package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/chemiz/internal/app"
	"github.com/abhisek/chemiz/internal/auth"
	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/llm"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/tutor"
	"github.com/abhisek/chemiz/internal/users"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("skip-splash", false, "Start on the login screen")
}

// runApp builds dependencies and launches the TUI. Only a catalog that
// fails to load stops it.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cat, err := loadCatalog(cmd)
	if err != nil {
		return fmt.Errorf("load element catalog: %w", err)
	}

	dbPath, pathErr := resolveDBPath(cmd)
	logger, logFile, err := fileLogger(cmd, dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: logging disabled:", err)
		logger, logFile = slog.New(slog.DiscardHandler), io.NopCloser(nil)
	}
	defer logFile.Close()
	if pathErr != nil {
		logger.Warn("database path unavailable", "path", dbPath, "error", pathErr)
	}

	env, closeEnv := buildEnv(ctx, cat, usersConfig(cmd), dbPath, os.Stderr, logger)
	defer closeEnv()
	logger.Info("catalog loaded", "version", cat.Version(), "elements", cat.Len())

	provider, err := llm.NewProviderFromEnv(ctx, env.Events, logger)
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Tutor explanations will be unavailable.")
	case provider != nil:
		env.Tutor = tutor.NewService(provider, tutor.DefaultConfig())
	}

	skip, _ := cmd.Flags().GetBool("skip-splash")
	return app.Run(ctx, app.Options{Env: env, SkipSplash: skip})
}

// buildEnv opens the event store and the user repository. Neither is
// required: a database that cannot be opened leaves Events nil, and a
// user store that cannot be opened leaves the app guest-only with
// UsersErr set. Warnings go to warn and the log.
func buildEnv(ctx context.Context, cat *catalog.Catalog, cfg users.Config, dbPath string, warn io.Writer, logger *slog.Logger) (*screen.Env, func()) {
	env := &screen.Env{Catalog: cat, Logger: logger}
	closeEnv := func() {}

	var st *store.Store
	var storeErr error
	if dbPath == "" {
		storeErr = errors.New("no database path")
	} else {
		st, storeErr = store.Open(dbPath)
	}
	if storeErr != nil {
		st = nil
		logger.Warn("event store unavailable", "path", dbPath, "error", storeErr)
		fmt.Fprintln(warn, "warning: database unavailable, history and gems are disabled:", storeErr)
	} else {
		env.Events = st.EventRepo()
		closeEnv = func() { st.Close() }
	}

	repo, err := openUsers(ctx, cfg, st, logger)
	if errors.Is(err, errNoDatabase) {
		err = &users.UnavailableError{Backend: users.BackendSQLite, Op: "open", Err: storeErr}
	}
	if err != nil {
		logger.Warn("user store unavailable", "backend", cfg.Backend, "error", err)
		fmt.Fprintln(warn, "warning: user store unavailable:", err)
		env.UsersErr = err
		return env, closeEnv
	}
	env.Users = repo
	env.Auth = auth.NewService(repo, auth.DefaultConfig(), logger)
	return env, closeEnv
}
