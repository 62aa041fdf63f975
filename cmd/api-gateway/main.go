package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/app"
	proofconfig "github.com/goodnatureofminers/blockinsight7000-proof/internal/config"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var config struct {
	RestAddr     string        `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"rest addr" default:":8001"`
	Network      model.Network `long:"network" env:"API_GATEWAY_NETWORK" description:"bitcoin network" default:"mainnet"`
	Config       string        `long:"config" env:"API_GATEWAY_CONFIG" description:"path to the YAML source profiles" default:"proof.yaml"`
	Transactions string        `long:"tx-backend" env:"API_GATEWAY_TX_BACKEND" description:"transaction source" default:"esplora" choice:"esplora" choice:"blockcypher" choice:"node"`
	TxIDs        string        `long:"txids-backend" env:"API_GATEWAY_TXIDS_BACKEND" description:"block tx id source" default:"esplora" choice:"esplora" choice:"blockcypher" choice:"node" choice:"clickhouse"`
	Headers      string        `long:"header-backend" env:"API_GATEWAY_HEADER_BACKEND" description:"block header source" default:"esplora" choice:"esplora" choice:"blockcypher" choice:"node"`
	Release      bool          `long:"release" env:"API_GATEWAY_RELEASE" description:"run gin in release mode"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}
	if config.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := proofconfig.Load(config.Config)
	if err != nil {
		logger.Fatal("Load config", zap.Error(err))
	}
	built, err := app.BuildAssembler(cfg, config.Network, app.Backends{
		Transactions: app.Backend(config.Transactions),
		TxIDs:        app.Backend(config.TxIDs),
		Headers:      app.Backend(config.Headers),
	}, logger)
	if err != nil {
		logger.Fatal("Build assembler", zap.Error(err))
	}
	defer built.Close()

	handler := transport.NewProofHandler(built.Assembler, config.Network, logger)

	mux := http.NewServeMux()
	mux.Handle("/", transport.NewRouter(handler, logger))
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// Large blocks take many tx id pages.
		WriteTimeout:   2 * time.Minute,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.RestAddr), zap.String("network", string(config.Network)))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
