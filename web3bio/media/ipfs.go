// Package media rewrites avatar and header URLs into fetchable HTTPS URLs.
package media

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	// IPFSGateway serves rewritten IPFS content.
	IPFSGateway = "https://ipfs.io"
	// ArweaveGateway serves ar:// content.
	ArweaveGateway = "https://arweave.net/"

	corsHost   = "https://cors-next.r2d2.to"
	cfIPFSHost = "https://cloudflare-ipfs.com"
)

const cidPattern = `Qm[1-9A-HJ-NP-Za-km-z]{44,}|b[2-7A-Za-z]{58,}|B[2-7A-Z]{58,}|z[1-9A-HJ-NP-Za-km-z]{48,}|F[\dA-F]{50,}`

var (
	reCID           = regexp.MustCompile(cidPattern)
	reCIDAtStart    = regexp.MustCompile(`^https://(?:` + cidPattern + `)`)
	reCIDAndPath    = regexp.MustCompile(`(?:` + cidPattern + `)(?:/.*)?`)
	reIPFSDataURL   = regexp.MustCompile(`ipfs/(data:.*)$`)
	ipfsProxyPrefix = []string{corsHost, cfIPFSHost}
)

// IsIPFS reports whether s contains an IPFS CID.
func IsIPFS(s string) bool {
	return reCID.MatchString(s)
}

// ResolveIPFSCID returns the first CID in s, or "".
func ResolveIPFSCID(s string) string {
	return reCID.FindString(s)
}

// ResolveIPFSURL rewrites a CID, ipfs:// URL or proxied IPFS URL onto the public gateway.
// Anything else is returned with its query stripped.
func ResolveIPFSURL(cidOrURL string) string {
	if cidOrURL == "" {
		return ""
	}

	normalized := cidOrURL
	if i := strings.IndexByte(normalized, '?'); i >= 0 {
		normalized = normalized[:i]
	}
	if decoded, err := url.PathUnescape(normalized); err == nil {
		normalized = decoded
	}

	for _, prefix := range ipfsProxyPrefix {
		if strings.HasPrefix(normalized, prefix) {
			normalized = strings.TrimPrefix(normalized, prefix)
			break
		}
	}

	if strings.HasPrefix(normalized, IPFSGateway) {
		if m := reIPFSDataURL.FindStringSubmatch(normalized); m != nil && m[1] != "" {
			if decoded, err := url.PathUnescape(m[1]); err == nil {
				return decoded
			}
			return m[1]
		}
		return normalized
	}

	if !strings.Contains(normalized, "ipfs:") && !IsIPFS(normalized) {
		return normalized
	}

	normalized = strings.TrimPrefix(normalized, "ipfs://")

	// subdomain gateways: https://<cid>.ipfs.example/path
	if reCIDAtStart.MatchString(normalized) {
		if u, err := url.Parse(normalized); err == nil {
			if cid := ResolveIPFSCID(normalized); cid != "" {
				path := u.Path
				if path == "/" {
					path = ""
				}
				return IPFSGateway + "/ipfs/" + cid + path
			}
		}
	}

	if m := reCIDAndPath.FindString(normalized); m != "" {
		return IPFSGateway + "/ipfs/" + m
	}
	return normalized
}

// ResolveMediaURL maps a media reference onto an HTTPS URL.
// data: and https: URLs pass through unchanged.
func ResolveMediaURL(raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "data:"), strings.HasPrefix(raw, "https:"):
		return raw
	case strings.HasPrefix(raw, "ar://"):
		return strings.Replace(raw, "ar://", ArweaveGateway, 1)
	case IsIPFS(raw), strings.Contains(raw, "ipfs:"):
		return ResolveIPFSURL(raw)
	}
	return raw
}
