package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hupe1980/refget"
	"github.com/hupe1980/refget/httpapi"
	"github.com/hupe1980/refget/metric"
)

func (a *app) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cmd)
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().Bool("labels", false, "enable /faidx/{algorithm}/{id} endpoints")
	cmd.Flags().Bool("verify", false, "verify every checksum before serving")
	a.bind(cmd, map[string]string{
		"server.address":         "addr",
		"server.label-endpoints": "labels",
		"verify":                 "verify",
	})
	return cmd
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	collector := metric.NewPrometheusCollector()
	svc, err := openService(ctx, cfg, logger, refget.WithMetricsCollector(collector))
	if err != nil {
		return err
	}
	defer svc.Close()
	collector.WatchService(svc)

	httpOpts := []httpapi.Option{httpapi.WithObserver(collector)}
	if cfg.Server.Metrics {
		httpOpts = append(httpOpts, httpapi.WithMetricsHandler(collector.Handler()))
	}

	ln, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      httpapi.New(svc, httpOpts...),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	logger.Info("listening", "address", ln.Addr().String(), "sequences", svc.Stats().Sequences)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
