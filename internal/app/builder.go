// Package app wires configured data sources into an assembler for the command binaries.
package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/config"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/assembler"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/source/blockcypher"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/source/esplora"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/source/restclient"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/source/stacks"
	"go.uber.org/zap"
)

// Backend names a Bitcoin data source.
type Backend string

const (
	BackendEsplora     Backend = "esplora"
	BackendBlockcypher Backend = "blockcypher"
	BackendNode        Backend = "node"
	// BackendClickhouse only serves block transaction id lists.
	BackendClickhouse Backend = "clickhouse"
)

const (
	blockcypherTokenParam = "token"
	hiroAPIKeyHeader      = "x-api-key"
)

// Backends selects the source of each Bitcoin read.
type Backends struct {
	Transactions Backend
	TxIDs        Backend
	Headers      Backend
}

// DefaultBackends reads everything from esplora.
func DefaultBackends() Backends {
	return Backends{
		Transactions: BackendEsplora,
		TxIDs:        BackendEsplora,
		Headers:      BackendEsplora,
	}
}

// Validate rejects unknown names and clickhouse outside the tx id role.
func (b Backends) Validate() error {
	for role, backend := range map[string]Backend{
		"transactions": b.Transactions,
		"headers":      b.Headers,
	} {
		switch backend {
		case BackendEsplora, BackendBlockcypher, BackendNode:
		case BackendClickhouse:
			return fmt.Errorf("%s backend %q only serves tx ids", role, backend)
		default:
			return fmt.Errorf("unknown %s backend %q", role, backend)
		}
	}
	switch b.TxIDs {
	case BackendEsplora, BackendBlockcypher, BackendNode, BackendClickhouse:
	default:
		return fmt.Errorf("unknown txids backend %q", b.TxIDs)
	}
	return nil
}

// Built is an assembler plus the connections it holds.
type Built struct {
	Assembler *assembler.Assembler
	closers   []func()
}

// Close releases node and ClickHouse connections.
func (b *Built) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

// BuildAssembler builds the sources backends selects from the network profile in cfg.
func BuildAssembler(cfg *config.Config, network model.Network, backends Backends, logger *zap.Logger) (*Built, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := backends.Validate(); err != nil {
		return nil, err
	}
	profile, err := cfg.Profile(network)
	if err != nil {
		return nil, err
	}

	b := &builder{profile: profile, network: network, logger: logger}
	built := &Built{}
	fail := func(err error) (*Built, error) {
		built.closers = b.closers
		built.Close()
		return nil, err
	}

	txSource, err := b.bitcoinSource(backends.Transactions)
	if err != nil {
		return fail(err)
	}
	headerSource, err := b.bitcoinSource(backends.Headers)
	if err != nil {
		return fail(err)
	}
	var txIDSource assembler.TxIDSource
	if backends.TxIDs == BackendClickhouse {
		txIDSource, err = b.clickhouseRepository()
	} else {
		txIDSource, err = b.bitcoinSource(backends.TxIDs)
	}
	if err != nil {
		return fail(err)
	}
	secondChain, err := b.stacksSource()
	if err != nil {
		return fail(err)
	}

	a, err := assembler.New(
		assembler.Sources{
			Transactions: txSource,
			TxIDs:        txIDSource,
			Headers:      headerSource,
			SecondChain:  secondChain,
		},
		assembler.Config{
			Network:         network,
			TxIDPageSize:    cfg.Assembly.TxIDPageSize,
			PageWorkers:     cfg.Assembly.PageWorkers,
			FetchTimeout:    cfg.Assembly.FetchTimeout,
			LocatorPageSize: cfg.Assembly.LocatorPageSize,
			LocatorMaxPages: cfg.Assembly.LocatorMaxPages,
		},
		metrics.NewAssembler(network),
		logger,
	)
	if err != nil {
		return fail(err)
	}

	built.Assembler = a
	built.closers = b.closers
	logger.Info("assembler ready",
		zap.String("network", string(network)),
		zap.String("transactions", string(backends.Transactions)),
		zap.String("txids", string(backends.TxIDs)),
		zap.String("headers", string(backends.Headers)),
	)
	return built, nil
}

// bitcoinSource serves transactions, tx ids and headers.
type bitcoinSource interface {
	assembler.TransactionSource
	assembler.TxIDSource
	assembler.HeaderSource
}

// builder creates each backend once and remembers how to close it.
type builder struct {
	profile *config.NetworkProfile
	network model.Network
	logger  *zap.Logger

	esplora     *esplora.Source
	blockcypher *blockcypher.Source
	node        *bitcoin.NodeSource
	repo        *clickhouse.Repository
	closers     []func()
}

func (b *builder) bitcoinSource(backend Backend) (bitcoinSource, error) {
	switch backend {
	case BackendEsplora:
		if b.esplora == nil {
			client, err := b.restClient(string(BackendEsplora), b.profile.Esplora)
			if err != nil {
				return nil, err
			}
			b.esplora = esplora.New(client)
		}
		return b.esplora, nil
	case BackendBlockcypher:
		if b.blockcypher == nil {
			client, err := b.restClient(string(BackendBlockcypher), b.profile.Blockcypher,
				restclient.WithQueryParam(blockcypherTokenParam, b.profile.Blockcypher.Token))
			if err != nil {
				return nil, err
			}
			b.blockcypher = blockcypher.New(client)
		}
		return b.blockcypher, nil
	case BackendNode:
		if b.node == nil {
			client, err := NewNodeClient(b.profile.Node)
			if err != nil {
				return nil, err
			}
			b.closers = append(b.closers, func() {
				client.Shutdown()
				client.WaitForShutdown()
			})
			b.node = bitcoin.NewNodeSource(bitcoin.NewRPCClient(client, metrics.NewDataSource(string(BackendNode), b.network)))
		}
		return b.node, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func (b *builder) clickhouseRepository() (*clickhouse.Repository, error) {
	if b.repo == nil {
		repo, err := clickhouse.NewRepository(b.profile.ClickhouseDSN, b.network, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		b.closers = append(b.closers, func() {
			if err := repo.Close(); err != nil {
				b.logger.Warn("close clickhouse repository", zap.Error(err))
			}
		})
		b.repo = repo
	}
	return b.repo, nil
}

func (b *builder) stacksSource() (*stacks.Source, error) {
	client, err := b.restClient("stacks", b.profile.Stacks, restclient.WithHeader(hiroAPIKeyHeader, b.profile.Stacks.Token))
	if err != nil {
		return nil, err
	}
	return stacks.New(client), nil
}

func (b *builder) restClient(name string, src config.HTTPSource, opts ...restclient.Option) (*restclient.Client, error) {
	if src.URL == "" {
		return nil, fmt.Errorf("%s url is not configured for %s", name, b.network)
	}
	opts = append([]restclient.Option{restclient.WithRateLimit(src.RPS)}, opts...)
	return restclient.New(src.URL, metrics.NewDataSource(name, b.network), opts...), nil
}

// NewNodeClient opens an HTTP POST mode JSON-RPC client. Host may be host:port or a URL.
func NewNodeClient(node config.NodeConfig) (*rpcclient.Client, error) {
	host := node.Host
	if host == "" {
		return nil, errors.New("node host is not configured")
	}
	disableTLS := node.DisableTLS
	if strings.Contains(host, "://") {
		parsed, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("parse node url: %w", err)
		}
		switch parsed.Scheme {
		case "http":
			disableTLS = true
		case "https":
		default:
			return nil, fmt.Errorf("node url scheme %q not supported, use http or https", parsed.Scheme)
		}
		if parsed.Host == "" {
			return nil, errors.New("node url missing host")
		}
		host = parsed.Host
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         host,
		User:         node.User,
		Pass:         node.Pass,
		HTTPPostMode: true,
		DisableTLS:   disableTLS,
	}, nil)
}
