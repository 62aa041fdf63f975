package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/app"
	proofconfig "github.com/goodnatureofminers/blockinsight7000-proof/internal/config"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/assembler"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/transport"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	TxID              string        `long:"txid" env:"PROOF_TXID" description:"display-order transaction id" required:"true"`
	SecondChainHeight uint64        `long:"second-chain-height" env:"PROOF_SECOND_CHAIN_HEIGHT" description:"pin the second chain block; zero locates it"`
	Network           model.Network `long:"network" env:"PROOF_NETWORK" description:"bitcoin network" default:"mainnet"`
	Config            string        `long:"config" env:"PROOF_CONFIG" description:"path to the YAML source profiles" default:"proof.yaml"`
	Transactions      string        `long:"tx-backend" env:"PROOF_TX_BACKEND" description:"transaction source" default:"esplora" choice:"esplora" choice:"blockcypher" choice:"node"`
	TxIDs             string        `long:"txids-backend" env:"PROOF_TXIDS_BACKEND" description:"block tx id source" default:"esplora" choice:"esplora" choice:"blockcypher" choice:"node" choice:"clickhouse"`
	Headers           string        `long:"header-backend" env:"PROOF_HEADER_BACKEND" description:"block header source" default:"esplora" choice:"esplora" choice:"blockcypher" choice:"node"`
	FetchTimeout      time.Duration `long:"fetch-timeout" env:"PROOF_FETCH_TIMEOUT" description:"timeout of a single remote fetch; overrides the config file"`
	Timeout           time.Duration `long:"timeout" env:"PROOF_TIMEOUT" description:"overall deadline" default:"5m"`
	Verbose           bool          `long:"verbose" short:"v" description:"log debug output to stderr"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic("can't initialize zap logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if assembler.KindOf(err) == assembler.KindInvalidRequest {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	profiles, err := proofconfig.Load(cfg.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.FetchTimeout != 0 {
		profiles.Assembly.FetchTimeout = cfg.FetchTimeout
	}

	built, err := app.BuildAssembler(profiles, cfg.Network, app.Backends{
		Transactions: app.Backend(cfg.Transactions),
		TxIDs:        app.Backend(cfg.TxIDs),
		Headers:      app.Backend(cfg.Headers),
	}, logger)
	if err != nil {
		return fmt.Errorf("build assembler: %w", err)
	}
	defer built.Close()

	packet, err := built.Assembler.Assemble(ctx, assembler.Request{
		TxID:              cfg.TxID,
		SecondChainHeight: cfg.SecondChainHeight,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(transport.NewPacketResponse(packet, cfg.Network))
}
