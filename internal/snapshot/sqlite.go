// Package snapshot хранит локальный снимок клиентской сессии.
// Снимок — плоский JSON-объект под единственным ключом.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/services/session"

	// Драйвер SQLite
	_ "modernc.org/sqlite"
)

// Key — ключ, под которым хранится снимок сессии.
const Key = "session"

// SQLite хранит снимок в локальном файле SQLite.
type SQLite struct {
	db *sql.DB
}

// NewSQLite открывает (или создаёт) файл базы и таблицу для снимков.
func NewSQLite(path string) (*SQLite, error) {
	const op = "snapshot.NewSQLite"

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &SQLite{db: db}, nil
}

// Load возвращает сохранённый снимок или (nil, nil), если его нет.
// Неразборчивая запись возвращается как session.ErrCorruptSnapshot.
func (s *SQLite) Load(ctx context.Context) (*models.Session, error) {
	const op = "snapshot.SQLite.Load"

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, Key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, session.ErrCorruptSnapshot, err)
	}
	return &sess, nil
}

// Save перезаписывает снимок.
func (s *SQLite) Save(ctx context.Context, sess models.Session) error {
	const op = "snapshot.SQLite.Save"

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		Key, string(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет снимок. Отсутствие снимка ошибкой не считается.
func (s *SQLite) Delete(ctx context.Context) error {
	const op = "snapshot.SQLite.Delete"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, Key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает базу.
func (s *SQLite) Close() error {
	return s.db.Close()
}
