// Command hdlbot runs the support bot and its maintenance tools.
//
// Subcommands:
//
//	serve    run the Telegram bot (long polling or webhook)
//	search   query the file index from the command line
//	index    crawl the documentation drive and rebuild the index
//	version  print the build version
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iotsystems/hdlbot/internal/ai"
	"github.com/iotsystems/hdlbot/internal/bot"
	"github.com/iotsystems/hdlbot/internal/config"
	"github.com/iotsystems/hdlbot/internal/disk"
	"github.com/iotsystems/hdlbot/internal/index"
	"github.com/iotsystems/hdlbot/internal/indexer"
	"github.com/iotsystems/hdlbot/internal/search"
	"github.com/iotsystems/hdlbot/internal/server"
	"github.com/iotsystems/hdlbot/internal/watcher"
	"github.com/iotsystems/hdlbot/pkg/utils"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "index":
		err = runIndex(os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <serve|search|index|version> [flags]\n", os.Args[0])
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is not configured")
	}

	engine := search.NewEngine(search.Options{
		IndexPath: cfg.Search.IndexPath,
		Limit:     cfg.Search.Limit,
	}, logger)

	api := bot.NewAPI(cfg.Telegram.APIBaseURL, cfg.Telegram.Token, nil)
	assistant := ai.NewClient(cfg.AI, logger)
	drive := disk.NewClient(cfg.Disk, nil)
	b := bot.New(api, engine, assistant, drive, cfg.Telegram, cfg.Search.Limit, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reload the index when the crawler rewrites it.
	if w, err := watcher.New(cfg.Search.IndexPath, engine.ReloadIndex, logger); err != nil {
		logger.Warn("index watching disabled", zap.Error(err))
	} else {
		go w.Run(ctx)
	}

	if cfg.Telegram.Webhook.BaseURL != "" {
		return serveWebhook(ctx, cfg, api, b, logger)
	}
	return servePolling(ctx, api, b, logger)
}

func servePolling(ctx context.Context, api *bot.API, b *bot.Bot, logger *zap.Logger) error {
	// A leftover webhook blocks getUpdates.
	if err := api.DeleteWebhook(ctx); err != nil {
		logger.Warn("delete webhook failed", zap.Error(err))
	}
	logger.Info("running in long-polling mode")
	return b.Run(ctx)
}

func serveWebhook(ctx context.Context, cfg *config.Config, api *bot.API, b *bot.Bot, logger *zap.Logger) error {
	webhookURL, err := url.JoinPath(cfg.Telegram.Webhook.BaseURL, "webhook")
	if err != nil {
		return fmt.Errorf("bad webhook base url: %w", err)
	}
	if err := api.SetWebhook(ctx, webhookURL); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	logger.Info("running in webhook mode", zap.String("url", webhookURL))

	srv := server.New(cfg.Telegram.Webhook.Host, cfg.Telegram.Webhook.Port, b, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := api.DeleteWebhook(shutdownCtx); err != nil {
		logger.Warn("delete webhook failed", zap.Error(err))
	}
	return srv.Stop(shutdownCtx)
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	limit := fs.Int("limit", 0, "max results (0 = config default)")
	fs.Parse(args)

	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search: query is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	engine := search.NewEngine(search.Options{
		IndexPath: cfg.Search.IndexPath,
		Limit:     cfg.Search.Limit,
	}, logger)

	results := engine.HybridSearch(query, *limit)
	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}
	for i, r := range results {
		if r.IsFolderLink {
			fmt.Printf("%d. %s\n   %s\n", i+1, r.Name, r.FolderLink)
			continue
		}
		fmt.Printf("%d. %s (%.1f)\n   %s\n", i+1, r.Name, r.Relevance, r.Path)
	}
	return nil
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	extractText := fs.Bool("extract-text", false, "download PDFs and store text snippets")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Disk.Token == "" {
		return fmt.Errorf("disk token is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	drive := disk.NewClient(cfg.Disk, nil)
	builder := indexer.NewBuilder(drive, search.NewNormalizer(nil), *extractText, logger)

	start := time.Now()
	records, err := builder.Build(ctx, cfg.Disk.BaseFolder)
	if err != nil {
		return fmt.Errorf("crawl: %w", err)
	}
	if err := index.Save(cfg.Search.IndexPath, records); err != nil {
		return err
	}
	logger.Info("index written",
		zap.String("path", cfg.Search.IndexPath),
		zap.Int("documents", len(records)),
		zap.Duration("took", time.Since(start)))
	return nil
}
