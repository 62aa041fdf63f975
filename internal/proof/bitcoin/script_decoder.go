package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
)

// PubScriptFromAddress returns the output script that pays to address on network.
func PubScriptFromAddress(address string, network model.Network) ([]byte, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return nil, fmt.Errorf("decode address %q: %w", address, err)
	}
	if !addr.IsForNet(params) {
		return nil, fmt.Errorf("address %q is not for %s", address, network)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, fmt.Errorf("script for address %q: %w", address, err)
	}
	return script, nil
}

// AddressesFromPubScript extracts the addresses an output script pays to. Non-standard and
// data-carrier scripts yield no addresses.
func AddressesFromPubScript(script []byte, network model.Network) ([]string, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, params)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result, nil
}

// ScriptClass names the standard template of an output script.
func ScriptClass(script []byte) string {
	return txscript.GetScriptClass(script).String()
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
