package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	log "go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanet-platform/termwatch/internal/app"
	"github.com/yanet-platform/termwatch/internal/monitoring/logger"
	"github.com/yanet-platform/termwatch/internal/monitoring/metrics/prometheus"
	"github.com/yanet-platform/termwatch/internal/shutdown"
)

const flushTimeout = 5 * time.Second

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:   path.Base(os.Args[0]),
		Short: "termwatch",
		Long:  "termwatch runs a drain-aware worker service under a graceful shutdown coordinator.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := exec(configPath); err != nil {
				fmt.Println(err.Error())
				os.Exit(1)
			}
		},
	}

	// Add a flag to specify the path to the config file.
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config file (required).")
	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic("Logic error: `config` flag not exists in the program")
	}

	if err := cmd.Execute(); err != nil {
		fmt.Printf("ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

func exec(configPath string) error {
	ctx := context.Background()

	config, err := app.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, flush, err := logger.New(ctx, config.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		_ = flush(ctx)
	}()
	zlog = zlog.With(log.String("instance", uuid.NewString()))

	zlog.Info(
		"starting termwatch",
		log.String("model", config.Coordinator.Model),
		log.String("mode", config.Coordinator.Mode),
		log.Duration("poll_interval", config.Coordinator.PollInterval),
		log.String("http_addr", config.Server.HTTPAddr),
	)

	provider := prometheus.NewProvider(zlog)

	// Create an error group with a derived context for managing goroutines.
	// Under the tasks model the shutdown listener is one of them.
	wg, ctx := errgroup.WithContext(ctx)

	model, err := config.Coordinator.NewModel(ctx, wg)
	if err != nil {
		return err
	}
	opts, err := config.Coordinator.Options()
	if err != nil {
		return err
	}
	opts = append(opts, shutdown.WithMetrics(provider))
	coordinator := shutdown.New(model, shutdown.OSSource(), zlog, opts...)

	// The state stays a nil interface in immediate mode: the application then
	// runs until the redelivered signal ends the process.
	var state app.State
	var listener *shutdown.Listener
	if config.Coordinator.Immediate() {
		listener, err = coordinator.StartImmediate()
	} else {
		var coordinated *shutdown.State
		listener, coordinated, err = coordinator.Start()
		if err == nil {
			state = coordinated
		}
	}
	if err != nil {
		return err
	}

	termwatch := app.New(config, state, provider, zlog)
	wg.Go(func() error {
		return termwatch.Run(ctx)
	})

	if err := wg.Wait(); err != nil {
		return fmt.Errorf("termwatch failed: %w", err)
	}

	// The application has marked itself finished; let the listener observe
	// it before tearing down the metrics it reports to.
	if err := listener.Wait(); err != nil {
		zlog.Error("shutdown listener failed", log.Error(err))
	}

	if err := provider.Shutdown(context.Background()); err != nil {
		zlog.Warn("failed to shut down metrics", log.Error(err))
	}
	zlog.Info("termwatch stopped")

	return nil
}
