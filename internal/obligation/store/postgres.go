package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"regent/internal/obligation"
)

// Postgres serves the obligation catalogue from a shared database so several
// instances see one centrally managed catalogue. Applicability filtering
// reuses the same Entry.Matches logic as the in-memory store; rows are
// fetched per bucket and filtered in process.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a catalogue store backed by the given pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Schema creates the catalogue tables when they do not exist yet.
const Schema = `
CREATE TABLE IF NOT EXISTS obligations (
	bucket      TEXT NOT NULL,
	id          TEXT NOT NULL,
	name        TEXT NOT NULL,
	summary     TEXT NOT NULL DEFAULT '',
	articles    TEXT[] NOT NULL DEFAULT '{}',
	priority    TEXT NOT NULL DEFAULT '',
	deadline    DATE,
	applies_to  TEXT[] NOT NULL DEFAULT '{}',
	category    TEXT NOT NULL DEFAULT '',
	tiers       TEXT[] NOT NULL DEFAULT '{}',
	requires    TEXT[] NOT NULL DEFAULT '{}',
	position    INT NOT NULL DEFAULT 0,
	PRIMARY KEY (bucket, id)
);

CREATE TABLE IF NOT EXISTS milestones (
	event    TEXT NOT NULL PRIMARY KEY,
	date     DATE NOT NULL,
	impact   TEXT NOT NULL DEFAULT ''
);
`

// EnsureSchema applies the catalogue schema.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure obligation schema: %w", err)
	}
	return nil
}

// Fetch returns the bucket's records matching the query, in catalogue order.
func (s *Postgres) Fetch(ctx context.Context, reg obligation.Regulation, q Query) ([]obligation.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, summary, articles, priority, deadline, applies_to, category, tiers, requires
		FROM obligations
		WHERE bucket = $1
		ORDER BY position, id`, string(reg))
	if err != nil {
		return nil, fmt.Errorf("fetch %s obligations: %w", reg, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			deadline *time.Time
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Summary, &e.Articles, &e.Priority,
			&deadline, &e.AppliesTo, &e.Category, &e.Tiers, &e.Requires); err != nil {
			return nil, fmt.Errorf("scan obligation row: %w", err)
		}
		e.Source = reg
		e.Deadline = deadline
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate obligation rows: %w", err)
	}
	return filter(entries, q), nil
}

// Milestones returns the regulation-wide milestone dates.
func (s *Postgres) Milestones(ctx context.Context) ([]obligation.Milestone, error) {
	rows, err := s.pool.Query(ctx, `SELECT event, date, impact FROM milestones ORDER BY date, event`)
	if err != nil {
		return nil, fmt.Errorf("fetch milestones: %w", err)
	}
	defer rows.Close()

	var milestones []obligation.Milestone
	for rows.Next() {
		var m obligation.Milestone
		if err := rows.Scan(&m.Event, &m.Date, &m.Impact); err != nil {
			return nil, fmt.Errorf("scan milestone row: %w", err)
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate milestone rows: %w", err)
	}
	return milestones, nil
}

// Replace overwrites the stored catalogue in one transaction. Used to sync
// the database from the YAML source of truth.
func (s *Postgres) Replace(ctx context.Context, buckets map[obligation.Regulation][]Entry, milestones []obligation.Milestone) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE obligations, milestones`); err != nil {
			return fmt.Errorf("truncate catalogue: %w", err)
		}
		for reg, entries := range buckets {
			for i, e := range entries {
				if _, err := tx.Exec(ctx, `
					INSERT INTO obligations
						(bucket, id, name, summary, articles, priority, deadline, applies_to, category, tiers, requires, position)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
					string(reg), e.ID, e.Name, e.Summary, orEmpty(e.Articles), string(e.Priority),
					e.Deadline, orEmpty(e.AppliesTo), e.Category, orEmpty(e.Tiers), orEmpty(e.Requires), i); err != nil {
					return fmt.Errorf("insert obligation %s/%s: %w", reg, e.ID, err)
				}
			}
		}
		for _, m := range milestones {
			if _, err := tx.Exec(ctx, `
				INSERT INTO milestones (event, date, impact) VALUES ($1, $2, $3)`,
				m.Event, m.Date, m.Impact); err != nil {
				return fmt.Errorf("insert milestone %q: %w", m.Event, err)
			}
		}
		return nil
	})
}

// orEmpty keeps NOT NULL array columns happy when a YAML entry omits a list.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
