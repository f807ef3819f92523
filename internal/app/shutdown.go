package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"jobboard-scraper/internal/observability"
)

// GracefulShutdown запускает мониторинг OS сигналов и возвращает context для отмены.
// После сигнала у процесса есть shutdownTimeout на завершение, затем выход принудительный.
func GracefulShutdown(logger *observability.Logger, shutdownTimeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	// Канал для сигналов ОС
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	released := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(released)
		})
		cancel()
	}

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String(), "timeout", shutdownTimeout.String())
			cancel()
		case <-released:
			return
		}

		select {
		case <-released:
		case <-sigChan:
			logger.Error("Second signal received, forcing exit")
			os.Exit(1)
		case <-time.After(shutdownTimeout):
			logger.Error("Graceful shutdown timed out, forcing exit", "timeout", shutdownTimeout.String())
			os.Exit(1)
		}
	}()

	return ctx, stop
}
