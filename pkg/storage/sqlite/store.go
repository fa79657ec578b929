// Package sqlite keeps per-player high scores in a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/storage/sqlite/migrations"
	"github.com/qnkhuat/tetristerm/pkg/storage/sqlitemigrate"

	_ "modernc.org/sqlite"
)

// Store persists the best score of every player.
type Store struct {
	sqlDB *sql.DB
}

// Entry is one row of the leaderboard.
type Entry struct {
	Player    string
	Score     int
	UpdatedAt time.Time
}

// Open opens the database at path, creating it when missing, and applies the
// embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// HighScore returns the best score recorded for player, 0 when there is none.
func (s *Store) HighScore(ctx context.Context, player string) (int, error) {
	var score int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT score FROM high_scores WHERE player = ?`, player).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query high score of %s: %w", player, err)
	}

	return score, nil
}

// SaveHighScore records score for player when it beats the stored one.
func (s *Store) SaveHighScore(ctx context.Context, player string, score int) error {
	if player == "" {
		return errors.New("player is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO high_scores (player, score, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (player) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > high_scores.score`,
		player, score, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save high score of %s: %w", player, err)
	}

	return nil
}

// Top returns the best limit players, highest score first.
func (s *Store) Top(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT player, score, updated_at FROM high_scores ORDER BY score DESC, updated_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			updatedAt int64
		)
		if err := rows.Scan(&e.Player, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}

		e.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Player binds the store to one player so it can back an engine.
func (s *Store) Player(name string) *PlayerScores {
	return &PlayerScores{store: s, name: name}
}

// PlayerScores is a game.HighScoreStore for a single player.
type PlayerScores struct {
	store *Store
	name  string
}

var _ game.HighScoreStore = (*PlayerScores)(nil)

func (p *PlayerScores) LoadHighScore(ctx context.Context) (int, error) {
	return p.store.HighScore(ctx, p.name)
}

func (p *PlayerScores) SaveHighScore(ctx context.Context, score int) error {
	return p.store.SaveHighScore(ctx, p.name, score)
}
