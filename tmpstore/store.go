package tmpstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Drolfothesgnir/bbpost/util"
	"github.com/redis/go-redis/v9"
)

// Different key prefixes for different use cases
const (
	RenderPrefix = "render:"
)

// ErrCacheMiss is returned when the value is not cached or is expired.
var ErrCacheMiss = errors.New("cache miss")

// RenderKey identifies one rendition of the post. The rendition depends on the
// version of the post and on who is looking at it, since restricted blocks
// are shown to some readers only.
type RenderKey struct {
	PostID    int64
	UpdatedAt time.Time
	Format    string
	Role      string
	ViewerID  int64
}

// String builds the key as render:<post>:<updated_unix>:<format>:<role>:<viewer>.
func (k RenderKey) String() string {
	role := k.Role
	if role == "" {
		role = "guest"
	}

	return RenderPrefix + strings.Join([]string{
		strconv.FormatInt(k.PostID, 10),
		strconv.FormatInt(k.UpdatedAt.Unix(), 10),
		k.Format,
		role,
		strconv.FormatInt(k.ViewerID, 10),
	}, ":")
}

type Store interface {
	SaveRender(ctx context.Context, key RenderKey, data []byte, ttl time.Duration) error
	GetRender(ctx context.Context, key RenderKey) ([]byte, error)
	Close() error
}

type RedisStore struct {
	client *redis.Client
}

func NewStore(config *util.Config) Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress, //  default "localhost:6379"
		Password: "",                  // "" for no password, ok for now
		DB:       0,                   // 0 for default database
	})

	return &RedisStore{client: rdb}
}

// SaveRender caches the rendered post for the ttl.
func (store *RedisStore) SaveRender(ctx context.Context, key RenderKey, data []byte, ttl time.Duration) error {
	if err := store.client.Set(ctx, key.String(), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache rendered post: %w", err)
	}
	return nil
}

// GetRender returns the cached rendered post or ErrCacheMiss.
func (store *RedisStore) GetRender(ctx context.Context, key RenderKey) ([]byte, error) {
	data, err := store.client.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get rendered post: %w", err)
	}

	return data, nil
}

// Close releases the connections to Redis.
func (store *RedisStore) Close() error {
	return store.client.Close()
}
