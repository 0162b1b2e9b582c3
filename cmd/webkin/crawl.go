package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kstoykov/webkin/internal/api"
	"github.com/kstoykov/webkin/internal/config"
	"github.com/kstoykov/webkin/internal/crawler"
	"github.com/kstoykov/webkin/internal/fetcher"
	"github.com/kstoykov/webkin/internal/hostrel"
	"github.com/kstoykov/webkin/internal/htmldoc"
	"github.com/kstoykov/webkin/internal/logging"
	"github.com/kstoykov/webkin/internal/metrics"
	"github.com/kstoykov/webkin/internal/progress"
	"github.com/kstoykov/webkin/internal/progress/sinks"
)

func newCrawlCmd() *cobra.Command {
	var opsEnabled bool

	cmd := &cobra.Command{
		Use:   "crawl [host ...]",
		Short: "Crawl the given hosts (or the configured seeds)",
		Long: `Starts a crawl from the given seed hosts. Each host is crawled to
exhaustion; related hosts discovered along the way become new crawl
targets. The command returns once no crawl target has work left.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrawlCommand(cmd, args, cmd.Flags().Changed("ops"), opsEnabled)
		},
	}
	cmd.Flags().BoolVar(&opsEnabled, "ops", false, "serve the ops HTTP endpoints during the crawl")
	return cmd
}

func runCrawlCommand(cmd *cobra.Command, args []string, opsSet, opsEnabled bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if opsSet {
		cfg.Ops.Enabled = opsEnabled
	}

	logger, err := logging.New(logging.Config{
		Development: cfg.Logging.Development,
		File:        cfg.Logging.File,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	seeds, err := parseSeeds(args, cfg.Crawler.Seeds)
	if err != nil {
		return err
	}

	client, err := fetcher.New(fetcher.Config{
		UserAgent: cfg.Crawler.UserAgent,
		Timeout:   cfg.HTTPTimeout(),
	})
	if err != nil {
		return fmt.Errorf("init web client: %w", err)
	}

	store := sinks.NewStore()
	hub := progress.NewHub(
		progress.Config{Logger: logger},
		sinks.NewLogSink(logger),
		sinks.NewPrometheusSink(),
		store,
	)

	engine, err := crawler.New(
		crawler.Config{ChannelBuffer: cfg.Crawler.ChannelBuffer},
		client,
		htmldoc.New(),
		logger,
		hub,
		seeds...,
	)
	if err != nil {
		return fmt.Errorf("init crawler: %w", err)
	}

	ctx := cmd.Context()
	group, groupCtx := errgroup.WithContext(ctx)
	opsCtx, stopOps := context.WithCancel(groupCtx)
	defer stopOps()

	if cfg.Ops.Enabled {
		server := api.NewServer(store, logger)
		addr := fmt.Sprintf(":%d", cfg.Ops.Port)
		logger.Info("ops server listening", zap.String("addr", addr))
		group.Go(func() error {
			return server.ListenAndServe(opsCtx, addr)
		})
	}

	group.Go(func() error {
		engine.Crawl(groupCtx)
		metrics.ProgressDropped(hub.Dropped())
		if err := hub.Close(context.Background()); err != nil {
			logger.Warn("progress hub close failed", zap.Error(err))
		}
		stopOps()
		return nil
	})

	return group.Wait()
}

func parseSeeds(args, configured []string) ([]crawler.CrawlTarget, error) {
	raw := args
	if len(raw) == 0 {
		raw = configured
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no seed hosts: pass them as arguments or set crawler.seeds")
	}

	seeds := make([]crawler.CrawlTarget, 0, len(raw))
	for _, s := range raw {
		host, err := hostrel.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", s, err)
		}
		seeds = append(seeds, crawler.NewTarget(host))
	}
	return seeds, nil
}
