package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Run starts srv and blocks until SIGINT/SIGTERM, then shuts it down within
// grace. A listen failure is returned immediately.
func Run(l *zap.Logger, srv *http.Server, grace time.Duration) error {
	errCh := make(chan error, 1)
	// 异步启动；失败立即返回
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		l.Info("shutdown signal received", zap.String("signal", sig.String()))
	}
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(ctx)
}
