package suite

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix mirrors the layout of the redis session repository, so
// tests can reach stored sessions directly.
const sessionKeyPrefix = "session:"

type Suite struct {
	*testing.T
	Logger *slog.Logger

	ctx     context.Context
	Storage *redis.Client
}

// New gives the test an empty redis behind the server's storage layer and a
// logger that writes into the test output.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	store := startRedis(ctx, t)

	if err := store.Connection.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		ctx:     ctx,
		Storage: store.Connection,
	}
}

// SeedSession stores raw JSON as session id, bypassing validation on write.
func (that *Suite) SeedSession(id, value string) {
	that.Helper()

	if err := that.Storage.Set(that.ctx, sessionKeyPrefix+id, value, 0).Err(); err != nil {
		that.Fatalf("could not seed session %s: %v", id, err)
	}
}

// SessionTTL reports how long session id has left before redis drops it.
func (that *Suite) SessionTTL(id string) time.Duration {
	that.Helper()

	ttl, err := that.Storage.TTL(that.ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		that.Fatalf("could not read ttl of session %s: %v", id, err)
	}

	return ttl
}

// SessionKeys lists the ids of every stored session.
func (that *Suite) SessionKeys() []string {
	that.Helper()

	keys, err := that.Storage.Keys(that.ctx, sessionKeyPrefix+"*").Result()
	if err != nil {
		that.Fatalf("could not list sessions: %v", err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, key[len(sessionKeyPrefix):])
	}

	return ids
}

type testWriter struct {
	t *testing.T
}

func (that testWriter) Write(p []byte) (int, error) {
	that.t.Log(string(p))
	return len(p), nil
}
