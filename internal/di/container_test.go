package di

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/UserRegistry/internal/config"
	"github.com/GoArmGo/UserRegistry/internal/database/memory"
)

func TestBuildStorage_Memory(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.DriverMemory}

	store, closers, err := buildStorage(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, err)
	assert.Empty(t, closers)
	assert.IsType(t, &memory.UserStorage{}, store)
}

func TestBuildStorage_UnknownDriver(t *testing.T) {
	cfg := &config.Config{StoreDriver: "sqlite"}

	_, _, err := buildStorage(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Error(t, err)
}

func TestBuildApp_MemoryServer(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	a, err := BuildApp(context.Background(), "server")
	require.NoError(t, err)
	require.NotNil(t, a.LoggerIns())
	t.Cleanup(func() { _ = a.Shutdown() })
}

func TestBuildApp_WorkerWithoutRabbit(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	a, err := BuildApp(context.Background(), "worker")
	require.NoError(t, err)

	assert.Error(t, a.Run(context.Background(), "worker"))
}
