package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://api.web3.bio"

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name      string
		id        Identity
		endpoint  Endpoint
		universal bool
		want      string
		wantOK    bool
	}{
		{"profile splits platform", One("vitalik.eth"), EndpointProfile, false, base + "/profile/ens/vitalik.eth", true},
		{"ns splits platform", One("stani.lens"), EndpointNS, false, base + "/ns/lens/stani.lens", true},
		{"domain keeps comma", One("vitalik.eth"), EndpointDomain, false, base + "/domain/ens,vitalik.eth", true},
		{"credential splits platform", One("dwr.farcaster"), EndpointCredential, false, base + "/credential/farcaster/dwr", true},
		{"normalizes short form", One("184.linea"), EndpointProfile, false, base + "/profile/linea/184.linea.eth", true},
		{"universal raw token", One("Vitalik.eth"), EndpointProfile, true, base + "/profile/Vitalik.eth", true},
		{"universal fid escaped", One("farcaster,#3"), EndpointNS, true, base + "/ns/farcaster,%233", true},
		{"qualified fid escaped", One("farcaster,#3"), EndpointNS, false, base + "/ns/farcaster/%233", true},
		{"batch", Many("vitalik.eth", "lens,stani"), EndpointProfile, false,
			base + "/profile/batch/%5B%22vitalik.eth%22%2C%22lens%2Cstani%22%5D", true},
		{"batch ignores universal", Many("a.eth"), EndpointNS, true, base + "/ns/batch/%5B%22a.eth%22%5D", true},
		{"empty single", One(""), EndpointProfile, false, "", false},
		{"empty batch", Many(), EndpointProfile, false, "", false},
		{"invalid identity", One("ens,a,b"), EndpointProfile, false, "", false},
		{"unsupported platform", One("space_id,alice.bnb"), EndpointDomain, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BuildURL(base, tt.id, tt.endpoint, tt.universal)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildURLTrimsBase(t *testing.T) {
	got, ok := BuildURL(base+"/", One("vitalik.eth"), EndpointDomain, false)
	require.True(t, ok)
	assert.Equal(t, base+"/domain/ens,vitalik.eth", got)
}

func TestBatchSkipsHTMLEscaping(t *testing.T) {
	got, ok := BuildURL(base, Many("<a>&b"), EndpointProfile, false)
	require.True(t, ok)
	assert.Equal(t, base+"/profile/batch/%5B%22%3Ca%3E%26b%22%5D", got)
}

func TestBatchKeepsURIComponentMarks(t *testing.T) {
	got, ok := BuildURL(base, Many("a!b", "it's (x)*~", "a b+c"), EndpointNS, false)
	require.True(t, ok)
	assert.Equal(t, base+"/ns/batch/%5B%22a!b%22%2C%22it's%20(x)*~%22%2C%22a%20b%2Bc%22%5D", got)
}

func TestKey(t *testing.T) {
	a := Key(EndpointProfile, false, Many("a.eth", "b.eth"), "")
	b := Key(EndpointProfile, false, Many("a.eth", "b.eth"), "")
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, Key(EndpointProfile, false, Many("b.eth", "a.eth"), ""))
	assert.NotEqual(t, a, Key(EndpointNS, false, Many("a.eth", "b.eth"), ""))
	assert.NotEqual(t, Key(EndpointProfile, false, One("a.eth"), ""), Key(EndpointProfile, true, One("a.eth"), ""))
	assert.NotEqual(t, a, Key(EndpointProfile, false, Many("a.eth", "b.eth"), "secret"))
}

func TestKeyHidesAPIKey(t *testing.T) {
	key := Key(EndpointProfile, false, One("vitalik.eth"), "super-secret-key")
	assert.NotContains(t, key, "super-secret-key")
	assert.Contains(t, key, "k=")
}

func TestIdentity(t *testing.T) {
	tokens := []string{"a", "b"}
	id := Many(tokens...)
	tokens[0] = "z"
	assert.Equal(t, []string{"a", "b"}, id.Tokens())
	assert.True(t, id.IsBatch())
	assert.Equal(t, `["a","b"]`, id.String())

	single := One("vitalik.eth")
	assert.False(t, single.IsBatch())
	assert.Equal(t, "vitalik.eth", single.String())
	assert.True(t, One("").Empty())
}

func TestEndpointValid(t *testing.T) {
	assert.True(t, EndpointNS.Valid())
	assert.True(t, EndpointDomain.Valid())
	assert.True(t, EndpointCredential.Valid())
	assert.False(t, Endpoint("batch").Valid())
}
