package navdata

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	addr := startRedis(t)

	cache := NewRedisCache(addr)
	defer cache.Close()

	ctx := context.Background()
	require.NoError(t, cache.Ping(ctx))

	_, ok := cache.Get(ctx, "nav:1")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "nav:1", `{"meta":{}}`, time.Minute))
	v, ok := cache.Get(ctx, "nav:1")
	assert.True(t, ok)
	assert.Equal(t, `{"meta":{}}`, v)

	src := &stubSource{history: sampleHistory()}
	cached := NewCachedSource(src, cache, time.Minute, nil)
	_, err := cached.FetchHistory(ctx, 122639)
	require.NoError(t, err)
	_, err = cached.FetchHistory(ctx, 122639)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}
