package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/spacecowboywalk/tictactoe/internal/repository/storage"
)

const (
	containerTTL = 120 // seconds
	startTimeout = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// startRedis runs a throwaway redis container and connects to it through the
// same storage layer the server uses. The container is purged when the test
// ends. Tests are skipped when no docker daemon is reachable.
func startRedis(ctx context.Context, t *testing.T) *storage.RedisStorage {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	// docker kills the container even if cleanup never runs
	_ = resource.Expire(containerTTL)

	pool.MaxWait = startTimeout

	var redis *storage.RedisStorage
	if err = pool.Retry(func() error {
		var connErr error
		redis, connErr = storage.NewRedisStorage(ctx, resource.GetHostPort(redisPort), "", 0)
		return connErr
	}); err != nil {
		t.Fatalf("redis container never became ready: %v", err)
	}

	t.Cleanup(func() {
		_ = redis.Close()
	})

	return redis
}
