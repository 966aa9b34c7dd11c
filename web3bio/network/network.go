// Package network maps EVM chain ids to the network keys used by the metadata API.
package network

// Network is a chain key.
type Network string

const (
	Arbitrum  Network = "arbitrum"
	Avalanche Network = "avalanche"
	Base      Network = "base"
	BSC       Network = "bsc"
	Ethereum  Network = "ethereum"
	Fantom    Network = "fantom"
	Gnosis    Network = "gnosis"
	Linea     Network = "linea"
	Mantle    Network = "mantle"
	Optimism  Network = "optimism"
	Polygon   Network = "polygon"
	Scroll    Network = "scroll"
	Unichain  Network = "unichain"
	ZkSyncEra Network = "zksync_era"
	Zora      Network = "zora"
)

// Meta describes an EVM network.
type Meta struct {
	Key        Network
	ChainID    int
	Label      string
	ScanPrefix string
}

var catalog = []Meta{
	{Key: Ethereum, ChainID: 1, Label: "Ethereum", ScanPrefix: "https://etherscan.io/"},
	{Key: Optimism, ChainID: 10, Label: "Optimism", ScanPrefix: "https://optimistic.etherscan.io/"},
	{Key: BSC, ChainID: 56, Label: "BNB Smart Chain", ScanPrefix: "https://bscscan.com/"},
	{Key: Gnosis, ChainID: 100, Label: "Gnosis", ScanPrefix: "https://gnosisscan.io/"},
	{Key: Unichain, ChainID: 130, Label: "Unichain", ScanPrefix: "https://uniscan.xyz/"},
	{Key: Polygon, ChainID: 137, Label: "Polygon", ScanPrefix: "https://polygonscan.com/"},
	{Key: Fantom, ChainID: 250, Label: "Fantom", ScanPrefix: "https://ftmscan.com/"},
	{Key: ZkSyncEra, ChainID: 324, Label: "zkSync Era", ScanPrefix: "https://era.zksync.network/"},
	{Key: Mantle, ChainID: 5000, Label: "Mantle", ScanPrefix: "https://mantlescan.xyz/"},
	{Key: Base, ChainID: 8453, Label: "Base", ScanPrefix: "https://basescan.org/"},
	{Key: Arbitrum, ChainID: 42161, Label: "Arbitrum One", ScanPrefix: "https://arbiscan.io/"},
	{Key: Avalanche, ChainID: 43114, Label: "Avalanche", ScanPrefix: "https://snowtrace.io/"},
	{Key: Linea, ChainID: 59144, Label: "Linea", ScanPrefix: "https://lineascan.build/"},
	{Key: Scroll, ChainID: 534352, Label: "Scroll", ScanPrefix: "https://scrollscan.com/"},
	{Key: Zora, ChainID: 7777777, Label: "Zora", ScanPrefix: "https://explorer.zora.energy/"},
}

var byChain = func() map[int]Meta {
	m := make(map[int]Meta, len(catalog))
	for _, meta := range catalog {
		m[meta.ChainID] = meta
	}
	return m
}()

// ByChainID returns the network for an EVM chain id.
func ByChainID(id int) (Meta, bool) {
	meta, ok := byChain[id]
	return meta, ok
}

// Lookup returns the network metadata for key.
func Lookup(key Network) (Meta, bool) {
	for _, meta := range catalog {
		if meta.Key == key {
			return meta, true
		}
	}
	return Meta{}, false
}
