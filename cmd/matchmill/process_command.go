package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"matchmill/internal/config"
	"matchmill/internal/logging"
	"matchmill/internal/matchstore"
	"matchmill/internal/metrics"
	"matchmill/internal/notifications"
	"matchmill/internal/pipeline"
	"matchmill/internal/publish"
	"matchmill/internal/runlock"
	"matchmill/internal/sample"
)

type processOptions struct {
	noStore bool
	metrics bool
	json    bool
}

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var opts processOptions

	cmd := &cobra.Command{
		Use:   "process [file...]",
		Short: "Reconstruct matches from recognizer sample streams",
		Long: `Read newline-delimited JSON samples from the given files (or stdin when no
file or "-" is given), split them into matches and store each resolved match.
Files are read in order as one continuous stream.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, ctx, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noStore, "no-store", false, "Do not write matches to the match database")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Serve Prometheus metrics on the configured bind while processing")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print emitted matches as JSON")
	return cmd
}

func runProcess(cmd *cobra.Command, ctx *commandContext, args []string, opts processOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := ctx.newLogger()
	if err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	deps := pipeline.Dependencies{}

	if !opts.noStore {
		lock, err := runlock.Acquire(cfg.LockPath())
		if err != nil {
			return err
		}
		defer lock.Release()

		store, err := matchstore.Open(cfg)
		if err != nil {
			return fmt.Errorf("open match store: %w", err)
		}
		defer store.Close()
		deps.Store = store
	}

	publisher := publish.New(cfg)
	defer publisher.Close()
	deps.Publisher = publisher
	deps.Notifier = notifications.NewService(cfg)

	collector := metrics.New()
	deps.Metrics = collector
	if opts.metrics || cfg.Metrics.Enabled {
		stop, err := serveMetrics(cfg, collector, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	src, closeSources, err := openSources(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer closeSources()

	summary, runErr := pipeline.New(cfg, deps, logger).Run(signalCtx, src)
	if opts.json {
		if err := writeJSON(cmd, summary.Matches); err != nil {
			return err
		}
	} else {
		printProcessSummary(cmd.OutOrStdout(), summary)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("read samples: %w", runErr)
	}
	return runErr
}

// openSources opens every named file as one continuous sample stream. "-" or
// no arguments reads stdin.
func openSources(args []string, stdin io.Reader) (sample.Source, func(), error) {
	if len(args) == 0 {
		return sample.NewDecoder(stdin), func() {}, nil
	}
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	sources := make([]sample.Source, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			sources = append(sources, sample.NewDecoder(stdin))
			continue
		}
		path, err := config.ExpandPath(arg)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("resolve sample path %q: %w", arg, err)
		}
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open samples: %w", err)
		}
		files = append(files, f)
		sources = append(sources, sample.NewDecoder(f))
	}
	return sample.NewMultiSource(sources...), closeAll, nil
}

func serveMetrics(cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) (func(), error) {
	listener, err := net.Listen("tcp", cfg.Metrics.Bind)
	if err != nil {
		return nil, fmt.Errorf("listen for metrics on %s: %w", cfg.Metrics.Bind, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.WarnWithContext(logger, "metrics server stopped", "metrics_server_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "metrics unavailable for this run"),
			)
		}
	}()
	logger.Info("serving metrics", logging.String("address", listener.Addr().String()))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}, nil
}

func printProcessSummary(out io.Writer, summary pipeline.Summary) {
	if len(summary.Matches) > 0 {
		fmt.Fprintln(out, renderMatchTable(summary.Matches))
	}
	fmt.Fprintf(out, "Processed %d samples in %s: %d matches, %d failed, %d discarded\n",
		summary.Samples,
		summary.Elapsed.Round(time.Millisecond),
		len(summary.Matches),
		len(summary.Failures),
		summary.Rejected,
	)
	for _, err := range summary.Failures {
		fmt.Fprintf(out, "  failed: %v\n", err)
	}
}
