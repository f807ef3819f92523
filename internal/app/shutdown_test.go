//go:build unix

package app

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"jobboard-scraper/internal/observability"
)

func TestGracefulShutdownCancelsOnSignal(t *testing.T) {
	ctx, stop := GracefulShutdown(observability.NewNopLogger(), 5*time.Second)
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled after SIGTERM")
	}
}

func TestGracefulShutdownStop(t *testing.T) {
	ctx, stop := GracefulShutdown(observability.NewNopLogger(), time.Second)
	stop()
	stop()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("context was not cancelled by stop")
	}
}
