package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/fwojciec/furniq"
	furhttp "github.com/fwojciec/furniq/http"
	furslog "github.com/fwojciec/furniq/slog"
)

// Run executes the serve command. Unless deps already carries an analyzer,
// the server starts listening at once and the analyzer is loaded in the
// background; analysis routes answer 503 until it is ready.
func (c *ServeCmd) Run(deps *Dependencies) error {
	opts := []furhttp.Option{furhttp.WithLogger(deps.Logger)}
	if c.RPS > 0 {
		opts = append(opts, furhttp.WithLimiter(furhttp.NewClientLimiter(c.RPS, c.Burst)))
	}

	ctx, cancel := context.WithCancel(deps.Ctx)
	defer cancel()

	var (
		server  *furhttp.Server
		wg      sync.WaitGroup
		loadErr error
	)
	switch {
	case deps.Analyzer != nil:
		server = furhttp.NewServer(furslog.NewLoggingAnalyzer(deps.Analyzer, deps.Logger), opts...)
		c.startRefresh(ctx, deps.Logger, deps.Refresh)
	case deps.LoadAnalyzer != nil:
		server = furhttp.NewServer(nil, opts...)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.load(ctx, deps, server); err != nil {
				loadErr = err
				cancel()
			}
		}()
	default:
		return furniq.Errorf(furniq.EINTERNAL, "no analyzer configured")
	}

	ln := deps.Listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", fmt.Sprintf(":%d", c.Port))
		if err != nil {
			cancel()
			wg.Wait()
			return fmt.Errorf("failed to listen on port %d: %w", c.Port, err)
		}
	}

	fmt.Fprintf(deps.Stdout, "Furniture analyzer API listening on %s\n", ln.Addr())
	err := server.Serve(ctx, ln)

	cancel()
	wg.Wait()
	if loadErr != nil {
		return loadErr
	}
	return err
}

// load builds the analyzer and hands it to server. Cancellation while
// loading is not an error.
func (c *ServeCmd) load(ctx context.Context, deps *Dependencies, server *furhttp.Server) error {
	start := time.Now()
	a, refresh, err := deps.LoadAnalyzer(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to load analyzer: %w", err)
	}

	server.SetAnalyzer(furslog.NewLoggingAnalyzer(a, deps.Logger))
	deps.Logger.Info("analyzer ready", "duration", time.Since(start))
	c.startRefresh(ctx, deps.Logger, refresh)
	return nil
}

func (c *ServeCmd) startRefresh(ctx context.Context, logger *slog.Logger, refresh func(context.Context) error) {
	if c.Refresh > 0 && refresh != nil {
		go refreshLoop(ctx, logger, refresh, c.Refresh)
	}
}

// refreshLoop reloads catalog terms every interval until ctx is done.
// Failed reloads keep the previous terms.
func refreshLoop(ctx context.Context, logger *slog.Logger, refresh func(context.Context) error, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := refresh(ctx); err != nil {
				logger.Warn("term refresh failed", "err", err)
			}
		}
	}
}
