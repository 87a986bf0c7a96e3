package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendGemEvent(ctx context.Context, data GemEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(gemEventsTable).
		Columns("sequence", "timestamp", "session_id", "username", "gem_type", "rarity", "level", "reason").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Username, data.GemType,
			data.Rarity, data.Level, data.Reason).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save gem event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryGemEvents(ctx context.Context, opts QueryOpts) ([]GemEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp", "session_id", "username", "gem_type", "rarity", "level", "reason").
		From(entsql.Table(gemEventsTable))
	if opts.Username != "" {
		sel = sel.Where(entsql.EQ("username", opts.Username))
	}
	query, args := applyQueryOpts(sel, opts).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query gem events: %w", err)
	}
	defer rows.Close()

	var records []GemEventRecord
	for rows.Next() {
		var rec GemEventRecord
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Username,
			&rec.GemType, &rec.Rarity, &rec.Level, &rec.Reason); err != nil {
			return nil, fmt.Errorf("scan gem event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query gem events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) GemCounts(ctx context.Context, username string) (map[string]int, int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("gem_type", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(gemEventsTable)).
		Where(entsql.EQ("username", username)).
		GroupBy("gem_type").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, 0, fmt.Errorf("query gem counts: %w", err)
	}
	defer rows.Close()

	byType := make(map[string]int)
	total := 0
	for rows.Next() {
		var (
			gemType string
			n       int
		)
		if err := rows.Scan(&gemType, &n); err != nil {
			return nil, 0, fmt.Errorf("scan gem count: %w", err)
		}
		byType[gemType] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("query gem counts: %w", err)
	}
	return byType, total, nil
}

func (r *eventRepo) DeleteGemEvents(ctx context.Context, username string) (int, error) {
	return r.deleteByUser(ctx, gemEventsTable, username)
}
