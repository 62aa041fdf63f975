// Package config loads per-network data source profiles from YAML, with environment overrides
// for secrets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"gopkg.in/yaml.v3"
)

// Config holds every known network profile and the assembly tunables shared by all networks.
type Config struct {
	Networks map[model.Network]*NetworkProfile `yaml:"networks"`
	Assembly AssemblyConfig                    `yaml:"assembly"`
}

// AssemblyConfig tunes the pipeline. Zero values fall back to the pipeline defaults.
type AssemblyConfig struct {
	TxIDPageSize    int           `yaml:"txid_page_size"`
	PageWorkers     int           `yaml:"page_workers"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	LocatorPageSize int           `yaml:"locator_page_size"`
	LocatorMaxPages int           `yaml:"locator_max_pages"`
}

// NetworkProfile lists the data sources available for one Bitcoin network.
type NetworkProfile struct {
	Esplora       HTTPSource `yaml:"esplora"`
	Blockcypher   HTTPSource `yaml:"blockcypher"`
	Stacks        HTTPSource `yaml:"stacks"`
	Node          NodeConfig `yaml:"node"`
	ClickhouseDSN string     `yaml:"clickhouse_dsn"`
}

// HTTPSource is a remote indexer API.
type HTTPSource struct {
	URL   string `yaml:"url"`
	RPS   int    `yaml:"rps"`
	Token string `yaml:"token"`
}

// NodeConfig is a bitcoind JSON-RPC endpoint.
type NodeConfig struct {
	Host       string `yaml:"host"`
	User       string `yaml:"user"`
	Pass       string `yaml:"pass"`
	DisableTLS bool   `yaml:"disable_tls"`
}

// Default returns the public endpoints for mainnet and testnet.
func Default() *Config {
	return &Config{
		Networks: map[model.Network]*NetworkProfile{
			model.Mainnet: {
				Esplora:     HTTPSource{URL: "https://blockstream.info/api", RPS: 10},
				Blockcypher: HTTPSource{URL: "https://api.blockcypher.com/v1/btc/main", RPS: 3},
				Stacks:      HTTPSource{URL: "https://api.hiro.so", RPS: 10},
			},
			model.Testnet: {
				Esplora:     HTTPSource{URL: "https://blockstream.info/testnet/api", RPS: 10},
				Blockcypher: HTTPSource{URL: "https://api.blockcypher.com/v1/btc/test3", RPS: 3},
				Stacks:      HTTPSource{URL: "https://api.testnet.hiro.so", RPS: 10},
			},
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A missing file is not
// an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := cfg.merge(data); err != nil {
			return nil, err
		}
	}

	cfg.loadEnv()
	return cfg, nil
}

// Profile returns the profile for network.
func (c *Config) Profile(network model.Network) (*NetworkProfile, error) {
	profile, ok := c.Networks[network]
	if !ok || profile == nil {
		return nil, fmt.Errorf("no profile for network %q", network)
	}
	return profile, nil
}

// merge decodes data onto the defaults. Profiles in the file are layered over the default
// profile of the same network, so a file may override a single field.
func (c *Config) merge(data []byte) error {
	var file struct {
		Networks map[model.Network]yaml.Node `yaml:"networks"`
		Assembly AssemblyConfig              `yaml:"assembly"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	for network, node := range file.Networks {
		profile, ok := c.Networks[network]
		if !ok || profile == nil {
			profile = &NetworkProfile{}
			c.Networks[network] = profile
		}
		if err := node.Decode(profile); err != nil {
			return fmt.Errorf("parse %s profile: %w", network, err)
		}
	}
	c.Assembly = file.Assembly
	return nil
}

func (c *Config) loadEnv() {
	for network, profile := range c.Networks {
		prefix := "PROOF_" + strings.ToUpper(string(network)) + "_"

		loadSourceEnv(&profile.Esplora, prefix+"ESPLORA")
		loadSourceEnv(&profile.Blockcypher, prefix+"BLOCKCYPHER")
		loadSourceEnv(&profile.Stacks, prefix+"STACKS")

		if dsn := os.Getenv(prefix + "CLICKHOUSE_DSN"); dsn != "" {
			profile.ClickhouseDSN = dsn
		}
		if host := os.Getenv(prefix + "NODE_HOST"); host != "" {
			profile.Node.Host = host
		}
		if user := os.Getenv(prefix + "NODE_USER"); user != "" {
			profile.Node.User = user
		}
		if pass := os.Getenv(prefix + "NODE_PASS"); pass != "" {
			profile.Node.Pass = pass
		}
		if disableTLS := os.Getenv(prefix + "NODE_DISABLE_TLS"); disableTLS != "" {
			profile.Node.DisableTLS = disableTLS == "true" || disableTLS == "1"
		}
	}
}

func loadSourceEnv(source *HTTPSource, prefix string) {
	if url := os.Getenv(prefix + "_URL"); url != "" {
		source.URL = url
	}
	if token := os.Getenv(prefix + "_TOKEN"); token != "" {
		source.Token = token
	}
	if rps := os.Getenv(prefix + "_RPS"); rps != "" {
		if v, err := strconv.Atoi(rps); err == nil {
			source.RPS = v
		}
	}
}
