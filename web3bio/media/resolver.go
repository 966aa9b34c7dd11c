package media

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/liuran001/Web3Bio-Go/web3bio"
	"github.com/liuran001/Web3Bio-Go/web3bio/logger"
	"github.com/liuran001/Web3Bio-Go/web3bio/network"
)

// reEIPAsset matches CAIP-style NFT references such as
// eip155:1/erc721:0xb47e3cd837dDF8e4c57F05d70Ab865de6e193BBB/1.
var reEIPAsset = regexp.MustCompile(`(?i)^eip155:(\d+)/(erc1155|erc721):(.+)/(.+)$`)

// JSONGetter fetches and decodes a JSON document.
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// Resolver turns NFT avatar references into image URLs via the metadata API.
type Resolver struct {
	getter      JSONGetter
	metadataURL string
	logger      web3bio.Logger
}

// NewResolver creates a Resolver using metadataURL as the API root.
func NewResolver(getter JSONGetter, metadataURL string, log web3bio.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		getter:      getter,
		metadataURL: strings.TrimRight(metadataURL, "/"),
		logger:      log.With("component", "media"),
	}
}

type nftMetadata struct {
	ImageURL string `json:"image_url"`
}

// ResolveEIPAsset returns the image URL behind an eip155 asset reference.
// Sources that are not asset references, or name an unknown chain, go
// through ResolveMediaURL instead. An empty result means the asset has no image.
func (r *Resolver) ResolveEIPAsset(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", nil
	}
	m := reEIPAsset.FindStringSubmatch(source)
	if m == nil {
		return ResolveMediaURL(source), nil
	}
	contract, token := m[3], m[4]

	chainID, err := strconv.Atoi(m[1])
	if err != nil {
		return ResolveMediaURL(source), nil
	}
	chain, ok := network.ByChainID(chainID)
	if !ok {
		return ResolveMediaURL(source), nil
	}

	target := fmt.Sprintf("%s/api/nft/nft/%s.%s.%s", r.metadataURL, chain.Key, contract, token)
	var meta nftMetadata
	if err := r.getter.GetJSON(ctx, target, &meta); err != nil {
		r.logger.Debug("nft metadata lookup failed", "network", chain.Key, "contract", contract, "token", token, "error", err)
		return "", fmt.Errorf("resolve %s asset: %w", chain.Key, err)
	}
	return meta.ImageURL, nil
}
