package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/cache"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/services/session"
)

// KV — хранилище JSON-значений по ключу (реализуется cache.Cache).
type KV interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Redis хранит снимок в Redis. Снимок не истекает.
type Redis struct {
	kv  KV
	key string
}

// ClientKey возвращает ключ снимка для клиента с идентификатором id.
// Каждый процесс клиента должен писать под своим ключом, общий Redis не делит сессии.
func ClientKey(id string) string {
	if id == "" {
		return Key
	}
	return Key + ":" + id
}

// NewRedis создаёт хранилище снимка поверх kv. Пустой key заменяется на Key.
func NewRedis(kv KV, key string) *Redis {
	if key == "" {
		key = Key
	}
	return &Redis{kv: kv, key: key}
}

// Load возвращает сохранённый снимок или (nil, nil), если его нет.
func (r *Redis) Load(ctx context.Context) (*models.Session, error) {
	const op = "snapshot.Redis.Load"

	var sess models.Session
	found, err := r.kv.Get(ctx, r.key, &sess)
	if errors.Is(err, cache.ErrDecode) {
		return nil, fmt.Errorf("%s: %w: %w", op, session.ErrCorruptSnapshot, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, nil
	}
	return &sess, nil
}

// Save перезаписывает снимок.
func (r *Redis) Save(ctx context.Context, sess models.Session) error {
	const op = "snapshot.Redis.Save"

	if err := r.kv.Set(ctx, r.key, sess, 0); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет снимок.
func (r *Redis) Delete(ctx context.Context) error {
	const op = "snapshot.Redis.Delete"

	if err := r.kv.Invalidate(ctx, r.key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
