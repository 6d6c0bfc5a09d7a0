package runlog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/milk9111/groggy/run"
	"github.com/milk9111/groggy/stats"
)

// Record is a stored run.
type Record struct {
	ID    int64
	Score int
	run.Statistics
}

// Repository stores finished runs. It satisfies run.Sink.
type Repository struct {
	pool *pgxpool.Pool
}

var _ run.Sink = (*Repository)(nil)

// Open connects to dsn and checks the connection.
func Open(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("runlog: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("runlog: ping: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() {
	r.pool.Close()
}

// Insert stores s and returns its id.
func (r *Repository) Insert(ctx context.Context, s run.Statistics) (int64, error) {
	const query = `
		INSERT INTO runs (playstyle, victory, duration_seconds, stage, room,
		                  enemies_defeated, perfect_guards, perfect_dodges, gold, score, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		s.Playstyle.String(), s.Victory, s.Duration, s.Stage, s.Room,
		s.EnemiesDefeated, s.PerfectGuards, s.PerfectDodges, s.Gold, s.Score(), s.EndedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("runlog: insert run: %w", err)
	}
	slog.Debug("run logged", "id", id, "score", s.Score())
	return id, nil
}

const selectColumns = `id, score, playstyle, victory, duration_seconds, stage, room,
	enemies_defeated, perfect_guards, perfect_dodges, gold, ended_at`

// Recent returns the latest limit runs, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM runs ORDER BY ended_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: query recent: %w", err)
	}
	return collect(rows)
}

// Best returns the highest scoring run of a playstyle. ok is false when
// none was logged.
func (r *Repository) Best(ctx context.Context, p stats.Playstyle) (rec Record, ok bool, err error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM runs WHERE playstyle = $1 ORDER BY score DESC, id ASC LIMIT 1`, p.String())
	if err != nil {
		return Record{}, false, fmt.Errorf("runlog: query best: %w", err)
	}
	records, err := collect(rows)
	if err != nil || len(records) == 0 {
		return Record{}, false, err
	}
	return records[0], true, nil
}

func collect(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var rec Record
		var playstyle string
		if err := rows.Scan(&rec.ID, &rec.Score, &playstyle, &rec.Victory, &rec.Duration,
			&rec.Stage, &rec.Room, &rec.EnemiesDefeated, &rec.PerfectGuards, &rec.PerfectDodges,
			&rec.Gold, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("runlog: scan run: %w", err)
		}
		p, err := stats.ParsePlaystyle(playstyle)
		if err != nil {
			slog.Warn("runlog: unknown playstyle", "playstyle", playstyle)
		}
		rec.Playstyle = p
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runlog: iterate runs: %w", err)
	}
	return out, nil
}
