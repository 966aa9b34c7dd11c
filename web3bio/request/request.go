package request

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/liuran001/Web3Bio-Go/web3bio/platform"
)

// Endpoint is an API path segment.
type Endpoint string

const (
	EndpointNS         Endpoint = "ns"
	EndpointProfile    Endpoint = "profile"
	EndpointDomain     Endpoint = "domain"
	EndpointCredential Endpoint = "credential"
)

// Valid reports whether e is one of the known endpoints.
func (e Endpoint) Valid() bool {
	switch e {
	case EndpointNS, EndpointProfile, EndpointDomain, EndpointCredential:
		return true
	}
	return false
}

// Identity is a single raw token or an ordered batch of raw tokens.
type Identity struct {
	tokens []string
	batch  bool
}

// One wraps a single token.
func One(token string) Identity {
	return Identity{tokens: []string{token}}
}

// Many wraps a batch; order is preserved on the wire and in the response.
func Many(tokens ...string) Identity {
	cp := make([]string, len(tokens))
	copy(cp, tokens)
	return Identity{tokens: cp, batch: true}
}

// IsBatch reports whether the identity addresses the batch endpoint.
func (i Identity) IsBatch() bool {
	return i.batch
}

// Tokens returns a copy of the raw tokens.
func (i Identity) Tokens() []string {
	cp := make([]string, len(i.tokens))
	copy(cp, i.tokens)
	return cp
}

// Empty reports whether there is nothing to query.
func (i Identity) Empty() bool {
	if i.batch {
		return len(i.tokens) == 0
	}
	return len(i.tokens) == 0 || i.tokens[0] == ""
}

// String is the single token, or the JSON array for a batch.
func (i Identity) String() string {
	if !i.batch {
		if len(i.tokens) == 0 {
			return ""
		}
		return i.tokens[0]
	}
	return marshalTokens(i.tokens)
}

func marshalTokens(tokens []string) string {
	if tokens == nil {
		tokens = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tokens); err != nil {
		return "[]"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// segmentEscaper keeps commas and dots literal; only characters that would
// end or corrupt the path are escaped.
var segmentEscaper = strings.NewReplacer("%", "%25", "#", "%23", "?", "%3F", " ", "%20")

// componentUnescaper restores the marks encodeURIComponent leaves literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent matches encodeURIComponent.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// BuildURL maps an identity onto a request URL.
//
// Batch identities send the raw JSON array, universal lookups send the raw
// token, and platform-qualified lookups are normalized first. Returns false
// when a platform-qualified identity does not normalize; no request should be made.
func BuildURL(base string, id Identity, endpoint Endpoint, universal bool) (string, bool) {
	if id.Empty() {
		return "", false
	}
	base = strings.TrimRight(base, "/")
	prefix := base + "/" + string(endpoint) + "/"

	if id.IsBatch() {
		return prefix + "batch/" + encodeComponent(marshalTokens(id.tokens)), true
	}

	raw := id.tokens[0]
	if universal {
		return prefix + segmentEscaper.Replace(raw), true
	}

	canonical, ok := platform.Resolve(raw)
	if !ok {
		return "", false
	}
	if endpoint == EndpointDomain {
		return prefix + segmentEscaper.Replace(canonical.String()), true
	}
	return prefix + segmentEscaper.Replace(string(canonical.Platform)) + "/" + segmentEscaper.Replace(canonical.ID), true
}

// Key builds the structural cache key of a request. Identical logical requests
// yield identical keys; batches compare by value.
func Key(endpoint Endpoint, universal bool, id Identity, apiKey string) string {
	parts := []string{
		"web3bio",
		string(endpoint),
		"u=" + strconv.FormatBool(universal),
		"b=" + strconv.FormatBool(id.IsBatch()),
		"id=" + id.String(),
	}
	if apiKey != "" {
		parts = append(parts, "k="+fingerprint(apiKey))
	}
	return strings.Join(parts, "|")
}

func fingerprint(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:4])
}
