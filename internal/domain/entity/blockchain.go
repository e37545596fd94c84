package entity

import (
	"fmt"
	"strings"
)

// Blockchain identifies a chain the wallet UI knows how to rank.
type Blockchain int

const (
	// UnknownBlockchain is any chain without a known identifier.
	UnknownBlockchain Blockchain = iota
	Osmosis
	Ethereum
	Arbitrum
	Zilliqa
	Neo
)

var blockchainNames = map[Blockchain]string{ //nolint:gochecknoglobals
	Osmosis:  "osmosis",
	Ethereum: "ethereum",
	Arbitrum: "arbitrum",
	Zilliqa:  "zilliqa",
	Neo:      "neo",
}

// ParseBlockchain maps a blockchain identifier to its Blockchain value.
// Matching ignores case and surrounding whitespace.
func ParseBlockchain(s string) Blockchain {
	name := strings.ToLower(strings.TrimSpace(s))
	for chain, n := range blockchainNames {
		if n == name {
			return chain
		}
	}
	return UnknownBlockchain
}

// String returns the lower-case identifier of the chain.
func (b Blockchain) String() string {
	if name, ok := blockchainNames[b]; ok {
		return name
	}
	return "unknown"
}

// PriorityTable ranks supported chains; a higher priority sorts first.
type PriorityTable map[Blockchain]int

// DefaultPriorityTable returns the built-in chain ranking.
func DefaultPriorityTable() PriorityTable {
	return PriorityTable{
		Osmosis:  100,
		Ethereum: 50,
		Arbitrum: 30,
		Zilliqa:  20,
		Neo:      20,
	}
}

// Lookup returns the priority of chain. UnknownBlockchain is never ranked.
func (t PriorityTable) Lookup(chain Blockchain) (int, bool) {
	if chain == UnknownBlockchain {
		return 0, false
	}
	p, ok := t[chain]
	return p, ok
}

// PriorityTableFromNames builds a table from identifier keys, as found in
// configuration files.
func PriorityTableFromNames(names map[string]int) (PriorityTable, error) {
	table := make(PriorityTable, len(names))
	for name, priority := range names {
		chain := ParseBlockchain(name)
		if chain == UnknownBlockchain {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBlockchain, name)
		}
		table[chain] = priority
	}
	return table, nil
}
