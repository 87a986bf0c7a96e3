package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(answerEventsTable).
		Columns("sequence", "timestamp", "session_id", "username", "level",
			"symbol", "prompt", "choice", "correct_answer", "correct").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Username, data.Level,
			data.Symbol, data.Prompt, data.Choice, data.CorrectAnswer, data.Correct).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp", "session_id", "username", "level",
			"symbol", "prompt", "choice", "correct_answer", "correct").
		From(entsql.Table(answerEventsTable))
	if opts.Username != "" {
		sel = sel.Where(entsql.EQ("username", opts.Username))
	}
	query, args := applyQueryOpts(sel, opts).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var records []AnswerEventRecord
	for rows.Next() {
		var rec AnswerEventRecord
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Username,
			&rec.Level, &rec.Symbol, &rec.Prompt, &rec.Choice, &rec.CorrectAnswer, &rec.Correct); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) AnswerSummaryByUser(ctx context.Context, username string) ([]AnswerSummary, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("symbol", entsql.As(entsql.Count("*"), "attempts"), entsql.As(entsql.Sum("correct"), "hits")).
		From(entsql.Table(answerEventsTable)).
		Where(entsql.EQ("username", username)).
		GroupBy("symbol").
		OrderBy("symbol").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query answer summary: %w", err)
	}
	defer rows.Close()

	var out []AnswerSummary
	for rows.Next() {
		var s AnswerSummary
		var hits sql.NullInt64
		if err := rows.Scan(&s.Symbol, &s.Attempts, &hits); err != nil {
			return nil, fmt.Errorf("scan answer summary: %w", err)
		}
		s.Correct = int(hits.Int64)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answer summary: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ai := float64(out[i].Correct) / float64(out[i].Attempts)
		aj := float64(out[j].Correct) / float64(out[j].Attempts)
		if ai != aj {
			return ai < aj
		}
		return out[i].Attempts > out[j].Attempts
	})
	return out, nil
}

func (r *eventRepo) DeleteAnswers(ctx context.Context, username string) (int, error) {
	return r.deleteByUser(ctx, answerEventsTable, username)
}

// deleteByUser removes the rows of table owned by username.
func (r *eventRepo) deleteByUser(ctx context.Context, table, username string) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(table).
		Where(entsql.EQ("username", username)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return int(n), nil
}
