// Package sheetrepo stores user records in a spreadsheet worksheet with a
// header row and one row per user. Every operation re-reads the whole
// table; concurrent editors follow last-writer-wins.
package sheetrepo

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/abhisek/chemiz/internal/users"
)

const backendName = "sheets"

// ErrWorksheetNotFound is returned by a Table whose worksheet does not exist.
var ErrWorksheetNotFound = errors.New("worksheet not found")

// Table is the narrow view of a worksheet the repository needs.
// Row numbers are 1-based and include the header row.
type Table interface {
	// Ensure creates the worksheet if it is missing.
	Ensure(ctx context.Context) error
	// Rows returns the worksheet rows in order, header included. Blank
	// rows inside the data range are empty slices.
	Rows(ctx context.Context) ([][]string, error)
	// UpdateRow overwrites row n with values starting at column A.
	UpdateRow(ctx context.Context, n int, values []string) error
	// AppendRow adds values after the last row.
	AppendRow(ctx context.Context, values []string) error
}

// Repo is a users.Repository over a Table.
type Repo struct {
	table  Table
	logger *slog.Logger
}

// New returns a repository over t.
func New(t Table, logger *slog.Logger) *Repo {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repo{table: t, logger: logger}
}

func (r *Repo) LoadAll(ctx context.Context) (*users.Snapshot, error) {
	rows, err := r.rows(ctx)
	if errors.Is(err, ErrWorksheetNotFound) {
		return users.NewSnapshot(), nil
	}
	if err != nil {
		return users.NewSnapshot(), err
	}

	snap := users.NewSnapshot()
	for _, row := range dataRows(rows) {
		u, err := users.DecodeRow(row)
		if err != nil {
			snap.Skipped++
			r.logger.Warn("skipping malformed sheet row", "username", row[0], "error", err)
			continue
		}
		if _, dup := snap.Users[u.Username]; dup {
			r.logger.Warn("ignoring duplicate sheet row", "username", u.Username)
			continue
		}
		snap.Users[u.Username] = u
	}
	return snap, nil
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

// Upsert overwrites the first row whose trimmed first cell equals u.Username, or
// appends a new row. The worksheet and header are created if absent.
func (r *Repo) Upsert(ctx context.Context, u users.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	rows, err := r.rows(ctx)
	if errors.Is(err, ErrWorksheetNotFound) {
		if err := r.EnsureSchema(ctx); err != nil {
			return err
		}
		rows, err = r.rows(ctx)
	}
	if err != nil {
		return err
	}

	values := users.EncodeRow(u)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 0 && strings.TrimSpace(row[0]) == u.Username {
			return r.wrap("update", r.table.UpdateRow(ctx, i+1, values))
		}
	}
	if len(rows) == 0 {
		if err := r.wrap("header", r.table.UpdateRow(ctx, 1, users.Header)); err != nil {
			return err
		}
	}
	return r.wrap("append", r.table.AppendRow(ctx, values))
}

// EnsureSchema creates the worksheet and writes the header row when the
// first row is empty.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if err := r.wrap("create worksheet", r.table.Ensure(ctx)); err != nil {
		return err
	}
	rows, err := r.rows(ctx)
	if err != nil {
		return err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		if !slices.Equal(rows[0], users.Header) {
			r.logger.Warn("worksheet header differs from expected columns", "got", rows[0])
		}
		return nil
	}
	r.logger.Info("writing worksheet header")
	return r.wrap("header", r.table.UpdateRow(ctx, 1, users.Header))
}

func (r *Repo) rows(ctx context.Context) ([][]string, error) {
	rows, err := r.table.Rows(ctx)
	return rows, r.wrap("read", err)
}

func (r *Repo) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &users.UnavailableError{Backend: backendName, Op: op, Err: err}
}

// dataRows drops the header and blank rows, keeping data row order.
func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}
