package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/app"
	proofconfig "github.com/goodnatureofminers/blockinsight7000-proof/internal/config"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/indexer"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/repository/clickhouse"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Network       model.Network `long:"network" env:"BLOCK_INDEXER_NETWORK" description:"bitcoin network" default:"mainnet"`
	Config        string        `long:"config" env:"BLOCK_INDEXER_CONFIG" description:"path to the YAML source profiles" default:"proof.yaml"`
	From          uint64        `long:"from" env:"BLOCK_INDEXER_FROM" description:"first block height"`
	To            uint64        `long:"to" env:"BLOCK_INDEXER_TO" description:"last block height" required:"true"`
	Resume        bool          `long:"resume" env:"BLOCK_INDEXER_RESUME" description:"continue after the highest indexed block"`
	FlushBlocks   int           `long:"flush-blocks" env:"BLOCK_INDEXER_FLUSH_BLOCKS" description:"blocks per insert" default:"20"`
	FlushInterval time.Duration `long:"flush-interval" env:"BLOCK_INDEXER_FLUSH_INTERVAL" description:"max delay before a partial insert" default:"5s"`
	FlushRPS      int           `long:"flush-rps" env:"BLOCK_INDEXER_FLUSH_RPS" description:"max inserts per second, zero is unlimited"`
	MetricsAddr   string        `long:"metrics-addr" env:"BLOCK_INDEXER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("block indexer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	profiles, err := proofconfig.Load(cfg.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	profile, err := profiles.Profile(cfg.Network)
	if err != nil {
		return err
	}

	repo, err := clickhouse.NewRepository(profile.ClickhouseDSN, cfg.Network, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	client, err := app.NewNodeClient(profile.Node)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		client.Shutdown()
		client.WaitForShutdown()
	}()
	node := bitcoin.NewNodeSource(bitcoin.NewRPCClient(client, metrics.NewDataSource("node", cfg.Network)))

	idx, err := indexer.New(node, repo, indexer.Config{
		Network:       cfg.Network,
		From:          cfg.From,
		To:            cfg.To,
		Resume:        cfg.Resume,
		FlushBlocks:   cfg.FlushBlocks,
		FlushInterval: cfg.FlushInterval,
		FlushRPS:      cfg.FlushRPS,
	}, logger)
	if err != nil {
		return err
	}

	_, err = idx.Run(ctx)
	return err
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
