// Package filerepo stores user records in a single JSON file that is
// rewritten in full on every change.
package filerepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/abhisek/chemiz/internal/users"
)

const backendName = "file"

// entry is the on-disk shape of one user. Field names match the sheet
// header so files can be migrated between backends.
type entry struct {
	PasswordHash string      `json:"password_hash"`
	Email        string      `json:"email"`
	CreatedAt    string      `json:"created_at"`
	LastLogin    *string     `json:"last_login"`
	Role         string      `json:"role"`
	Stats        users.Stats `json:"stats"`
}

// Repo is a users.Repository backed by a JSON file.
type Repo struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// New returns a repository for the file at path. The file is created on
// the first Upsert.
func New(path string, logger *slog.Logger) *Repo {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repo{path: path, logger: logger}
}

// Path returns the backing file path.
func (r *Repo) Path() string { return r.path }

func (r *Repo) LoadAll(_ context.Context) (*users.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := r.read()
	if err != nil {
		return users.NewSnapshot(), err
	}
	return r.decode(raw), nil
}

func (r *Repo) Get(ctx context.Context, username string) (*users.User, error) {
	snap, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := snap.Users[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &u, nil
}

func (r *Repo) Upsert(_ context.Context, u users.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := r.read()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(toEntry(u))
	if err != nil {
		return fmt.Errorf("encode user %q: %w", u.Username, err)
	}
	raw[u.Username] = encoded

	return r.write(raw)
}

// EnsureSchema creates an empty document when the file does not exist.
func (r *Repo) EnsureSchema(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &users.UnavailableError{Backend: backendName, Op: "stat", Err: err}
	}
	return r.write(map[string]json.RawMessage{})
}

// read returns the document entries still encoded, so entries this
// version cannot decode survive a rewrite untouched.
func (r *Repo) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, &users.UnavailableError{Backend: backendName, Op: "read", Err: err}
	}

	raw := map[string]json.RawMessage{}
	if len(data) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &users.UnavailableError{Backend: backendName, Op: "decode", Err: err}
	}
	return raw, nil
}

func (r *Repo) decode(raw map[string]json.RawMessage) *users.Snapshot {
	snap := users.NewSnapshot()

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		u, err := fromEntry(name, raw[name])
		if err != nil {
			snap.Skipped++
			r.logger.Warn("skipping malformed user entry", "path", r.path, "username", name, "error", err)
			continue
		}
		snap.Users[name] = u
	}
	return snap
}

func (r *Repo) write(raw map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users file: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &users.UnavailableError{Backend: backendName, Op: "mkdir", Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return &users.UnavailableError{Backend: backendName, Op: "write", Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &users.UnavailableError{Backend: backendName, Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &users.UnavailableError{Backend: backendName, Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return &users.UnavailableError{Backend: backendName, Op: "rename", Err: err}
	}
	return nil
}

func toEntry(u users.User) entry {
	e := entry{
		PasswordHash: u.PasswordDigest,
		Email:        u.Email,
		CreatedAt:    users.FormatTime(u.CreatedAt),
		Role:         string(u.Role),
		Stats:        u.Stats,
	}
	if u.LastLoginAt != nil {
		s := users.FormatTime(*u.LastLoginAt)
		e.LastLogin = &s
	}
	return e
}

func fromEntry(username string, raw json.RawMessage) (users.User, error) {
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return users.User{}, err
	}

	u := users.User{
		Username:       username,
		PasswordDigest: e.PasswordHash,
		Email:          e.Email,
		Role:           users.Role(e.Role),
		Stats:          e.Stats,
	}

	var err error
	if u.CreatedAt, err = users.ParseTime(e.CreatedAt); err != nil {
		return users.User{}, fmt.Errorf("created_at: %w", err)
	}
	if e.LastLogin != nil && *e.LastLogin != "" {
		t, err := users.ParseTime(*e.LastLogin)
		if err != nil {
			return users.User{}, fmt.Errorf("last_login: %w", err)
		}
		u.LastLoginAt = &t
	}

	if err := u.Validate(); err != nil {
		return users.User{}, err
	}
	return u, nil
}
