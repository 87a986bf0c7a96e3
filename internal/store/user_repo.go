package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/chemiz/internal/users"
)

var userColumns = []string{
	"username", "password_hash", "email", "created_at", "last_login",
	"role", "tests_completed", "correct_answers", "total_questions",
}

// UserRepo is the sqlite users.Repository. Upsert is a single
// INSERT ... ON CONFLICT(username) DO UPDATE, replacing every column.
type UserRepo struct {
	drv *entsql.Driver
}

var _ users.Repository = (*UserRepo)(nil)

func (r *UserRepo) LoadAll(ctx context.Context) (*users.Snapshot, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(userColumns...).
		From(entsql.Table(usersTableName)).
		OrderBy("username").
		Query()

	snap := users.NewSnapshot()
	err := r.scan(ctx, query, args, func(u users.User, err error) {
		if err != nil {
			snap.Skipped++
			return
		}
		snap.Users[u.Username] = u
	})
	if err != nil {
		return users.NewSnapshot(), &users.UnavailableError{Backend: users.BackendSQLite, Op: "load", Err: err}
	}
	return snap, nil
}

func (r *UserRepo) Get(ctx context.Context, username string) (*users.User, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(userColumns...).
		From(entsql.Table(usersTableName)).
		Where(entsql.EQ("username", username)).
		Query()

	var found *users.User
	var decodeErr error
	err := r.scan(ctx, query, args, func(u users.User, err error) {
		if err != nil {
			decodeErr = err
			return
		}
		found = &u
	})
	if err != nil {
		return nil, &users.UnavailableError{Backend: users.BackendSQLite, Op: "get", Err: err}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode user %q: %w", username, decodeErr)
	}
	if found == nil {
		return nil, users.ErrNotFound
	}
	return found, nil
}

func (r *UserRepo) Upsert(ctx context.Context, u users.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	var lastLogin any
	if u.LastLoginAt != nil {
		lastLogin = u.LastLoginAt.UTC()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(usersTableName).
		Columns(append(userColumns, "updated_at")...).
		Values(u.Username, u.PasswordDigest, u.Email, u.CreatedAt.UTC(), lastLogin,
			string(u.Role), u.Stats.TestsCompleted, u.Stats.CorrectAnswers, u.Stats.TotalQuestions,
			time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("username"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return &users.UnavailableError{Backend: users.BackendSQLite, Op: "upsert", Err: err}
	}
	return nil
}

// Delete removes a user. Deleting a missing user is not an error.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(usersTableName).
		Where(entsql.EQ("username", username)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return &users.UnavailableError{Backend: users.BackendSQLite, Op: "delete", Err: err}
	}
	return nil
}

// scan runs query and calls fn for every row; rows that fail to decode
// are passed with a non-nil error.
func (r *UserRepo) scan(ctx context.Context, query string, args []any, fn func(users.User, error)) error {
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			u         users.User
			role      string
			lastLogin sql.NullTime
		)
		if err := rows.Scan(&u.Username, &u.PasswordDigest, &u.Email, &u.CreatedAt, &lastLogin,
			&role, &u.Stats.TestsCompleted, &u.Stats.CorrectAnswers, &u.Stats.TotalQuestions); err != nil {
			fn(users.User{}, err)
			continue
		}
		u.Role = users.Role(role)
		u.CreatedAt = u.CreatedAt.Local()
		if lastLogin.Valid {
			t := lastLogin.Time.Local()
			u.LastLoginAt = &t
		}
		fn(u, u.Validate())
	}
	return rows.Err()
}
