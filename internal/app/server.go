package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
)

// Server HTTP 服务封装，负责启动与优雅退出
type Server struct {
	addr   string
	server *http.Server
}

// NewServer 创建 HTTP 服务
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		addr: addr,
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

// Run 启动监听，收到退出信号或服务出错后优雅关停
func (s *Server) Run(opts Options) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	opts = normalizeOptions(opts)

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	opts.Logger.Infow("http_start", "addr", s.addr)

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		runErr = err
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer stopCancel()
	if err := s.server.Shutdown(stopCtx); err != nil {
		opts.Logger.Errorw("http_shutdown_failed", "error", err)
	}
	opts.Logger.Infow("http_exit", "addr", s.addr)
	return runErr
}
