// Package model defines the value types flowing through proof assembly.
package model

// Network names the Bitcoin network the data sources target.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)
